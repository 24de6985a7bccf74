package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newArticleRouter(d ArticleDeps) http.Handler {
	r := chi.NewRouter()
	RegisterArticle(r, d)
	return r
}

func TestArticleDetailIsRelayedVerbatim(t *testing.T) {
	detail := `{"articleDetail":{"articleNo":"987","articleName":"역삼자이 101동","unmapped":{"deep":[1,2,3]}}}`
	var gotComplexNo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/articles/987" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotComplexNo = r.URL.Query().Get("complexNo")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(detail))
	}))
	t.Cleanup(srv.Close)

	req := httptest.NewRequest(http.MethodGet, "/articles/987?complexNo=109208", nil)
	rec := httptest.NewRecorder()
	newArticleRouter(ArticleDeps{Naver: testClient(srv.URL)}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// byte-for-byte relay, no remodeling of the detail payload
	if rec.Body.String() != detail {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if gotComplexNo != "109208" {
		t.Fatalf("complexNo hint = %q", gotComplexNo)
	}
}

func TestArticleDetailUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	req := httptest.NewRequest(http.MethodGet, "/articles/1", nil)
	rec := httptest.NewRecorder()
	newArticleRouter(ArticleDeps{Naver: testClient(srv.URL)}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "upstream_error") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
