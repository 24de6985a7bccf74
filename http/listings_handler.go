package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/land-api/internal/hydrator"
	"github.com/yourorg/land-api/internal/paginate"
	"github.com/yourorg/land-api/naverland"
)

type ListingsDeps struct {
	Naver    *naverland.Client
	Hydrator *hydrator.Hydrator
	// ArticleDelay is the courtesy pause between article pages; default 500ms.
	ArticleDelay time.Duration
	MaxPages     int
}

func (d ListingsDeps) delay() time.Duration {
	if d.ArticleDelay > 0 {
		return d.ArticleDelay
	}
	return 500 * time.Millisecond
}

func (d ListingsDeps) maxPages() int {
	if d.MaxPages > 0 {
		return d.MaxPages
	}
	return 100
}

func RegisterListings(r chi.Router, d ListingsDeps) {
	r.Get("/complexes/{complexNo}/articles", func(w http.ResponseWriter, req *http.Request) {
		handleListings(w, req, d, req.URL.Query())
	})
	r.Post("/complexes/{complexNo}/articles", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		caller := url.Values{}
		for k, v := range body {
			caller.Set(k, v)
		}
		handleListings(w, req, d, caller)
	})
}

func handleListings(w http.ResponseWriter, req *http.Request, d ListingsDeps, caller url.Values) {
	complexNo := chi.URLParam(req, "complexNo")
	if complexNo == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "complex_no_required"})
		return
	}

	// allow-listed params only; rent bounds pruned for rent-free trade types
	query := naverland.ArticleQuery(complexNo, caller)

	var raw []byte
	fetch := func(ctx context.Context, page int) (paginate.Page[naverland.Article], error) {
		b, err := d.Naver.ComplexArticles(ctx, complexNo, query, page)
		if err != nil {
			return paginate.Page[naverland.Article]{}, err
		}
		raw = b
		items, more, err := naverland.ParseArticlesPage(b)
		if err != nil {
			return paginate.Page[naverland.Article]{}, err
		}
		return paginate.Page[naverland.Article]{Items: items, HasMore: more}, nil
	}

	articles, err := paginate.All(req.Context(), fetch, paginate.Options{Delay: d.delay(), MaxPages: d.maxPages()})
	truncated := errors.Is(err, paginate.ErrTruncated)
	if err != nil && !truncated {
		writeUpstreamError(w, req, err)
		return
	}

	if len(articles) == 0 {
		render.JSON(w, req, map[string]any{"message": "해당 단지에 현재 조건에 맞는 매물이 없습니다.", "properties": []naverland.Article{}})
		return
	}

	persistArticles(req.Context(), d.Hydrator, "articles/complex", raw, articles)
	enrichArticles(articles)

	resp := map[string]any{"properties": articles}
	if truncated {
		resp["truncated"] = true
	}
	render.JSON(w, req, resp)
}
