package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/land-api/internal/estatefilter"
	"github.com/yourorg/land-api/internal/hydrator"
	"github.com/yourorg/land-api/internal/paginate"
	"github.com/yourorg/land-api/naverland"
)

type ComplexesDeps struct {
	Naver    *naverland.Client
	Hydrator *hydrator.Hydrator
	// SearchDelay is the courtesy pause between upstream pages; default 200ms.
	SearchDelay time.Duration
	// MaxPages bounds a single aggregation; default 100.
	MaxPages int
}

func (d ComplexesDeps) delay() time.Duration {
	if d.SearchDelay > 0 {
		return d.SearchDelay
	}
	return 200 * time.Millisecond
}

func (d ComplexesDeps) maxPages() int {
	if d.MaxPages > 0 {
		return d.MaxPages
	}
	return 100
}

type complexSearchRequest struct {
	GuName       string `json:"guName,omitempty"`
	DongName     string `json:"dongName,omitempty"`
	NameKeyword  string `json:"nameKeyword,omitempty"`
	PropertyType string `json:"propertyType,omitempty"`
}

func RegisterComplexes(r chi.Router, d ComplexesDeps) {
	// region search: guName + dongName
	r.Get("/complexes", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		body := complexSearchRequest{
			GuName:       q.Get("guName"),
			DongName:     q.Get("dongName"),
			PropertyType: q.Get("propertyType"),
		}
		handleRegionSearch(w, req, d, body)
	})
	r.Post("/complexes", func(w http.ResponseWriter, req *http.Request) {
		var body complexSearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleRegionSearch(w, req, d, body)
	})

	// free-text complex-name search
	r.Get("/complexes/search-by-name", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		body := complexSearchRequest{
			NameKeyword:  q.Get("nameKeyword"),
			PropertyType: q.Get("propertyType"),
		}
		handleNameSearch(w, req, d, body)
	})
	r.Post("/complexes/search-by-name", func(w http.ResponseWriter, req *http.Request) {
		var body complexSearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleNameSearch(w, req, d, body)
	})
}

func handleRegionSearch(w http.ResponseWriter, req *http.Request, d ComplexesDeps, body complexSearchRequest) {
	if body.GuName == "" || body.DongName == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "region_required", "detail": "guName and dongName are required"})
		return
	}
	keyword := body.GuName + " " + body.DongName
	serveComplexSearch(w, req, d, keyword, body.PropertyType)
}

func handleNameSearch(w http.ResponseWriter, req *http.Request, d ComplexesDeps, body complexSearchRequest) {
	keyword := strings.TrimSpace(body.NameKeyword)
	if len([]rune(keyword)) < 2 {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "keyword_too_short", "detail": "nameKeyword must be at least 2 characters"})
		return
	}
	serveComplexSearch(w, req, d, keyword, body.PropertyType)
}

func serveComplexSearch(w http.ResponseWriter, req *http.Request, d ComplexesDeps, keyword, typeFilter string) {
	raw, complexes, truncated, err := AggregateComplexes(req.Context(), d.Naver, keyword, d.delay(), d.maxPages())
	if err != nil {
		writeUpstreamError(w, req, err)
		return
	}

	if len(complexes) == 0 {
		render.JSON(w, req, map[string]any{"message": "해당 조건에 검색된 단지가 없습니다.", "complexes": []naverland.Complex{}})
		return
	}

	filtered := estatefilter.Complexes(complexes, typeFilter)
	if len(filtered) == 0 {
		render.JSON(w, req, map[string]any{"message": "해당 조건에 맞는 단지가 없습니다 (매물종류: " + typeFilter + ").", "complexes": []naverland.Complex{}})
		return
	}

	persistComplexes(req.Context(), d.Hydrator, "search", keyword, raw, filtered)

	resp := map[string]any{"complexes": filtered}
	if truncated {
		resp["truncated"] = true
	}
	render.JSON(w, req, resp)
}

// AggregateComplexes walks every page of the keyword search. raw is the
// final page payload (kept for the write-behind snapshot); truncated is set
// when the page ceiling cut the walk short.
func AggregateComplexes(ctx context.Context, client *naverland.Client, keyword string, delay time.Duration, maxPages int) (raw []byte, complexes []naverland.Complex, truncated bool, err error) {
	fetch := func(ctx context.Context, page int) (paginate.Page[naverland.Complex], error) {
		b, err := client.SearchComplexes(ctx, keyword, page)
		if err != nil {
			return paginate.Page[naverland.Complex]{}, err
		}
		raw = b
		items, more, err := naverland.ParseSearchPage(b)
		if err != nil {
			return paginate.Page[naverland.Complex]{}, err
		}
		return paginate.Page[naverland.Complex]{Items: items, HasMore: more}, nil
	}
	complexes, err = paginate.All(ctx, fetch, paginate.Options{Delay: delay, MaxPages: maxPages})
	if errors.Is(err, paginate.ErrTruncated) {
		return raw, complexes, true, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	return raw, complexes, false, nil
}

func writeUpstreamError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, naverland.ErrRateLimited) {
		render.Status(req, http.StatusTooManyRequests)
		render.JSON(w, req, map[string]any{"error": "provider_quota", "detail": "upstream rate limit reached"})
		return
	}
	render.Status(req, http.StatusBadGateway)
	render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
}
