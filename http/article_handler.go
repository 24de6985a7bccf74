package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/land-api/naverland"
)

type ArticleDeps struct {
	Naver *naverland.Client
}

func RegisterArticle(r chi.Router, d ArticleDeps) {
	// Detail payloads are relayed verbatim: the deck generator needs every
	// upstream field, modeled or not.
	r.Get("/articles/{articleNo}", func(w http.ResponseWriter, req *http.Request) {
		articleNo := chi.URLParam(req, "articleNo")
		if articleNo == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "article_no_required"})
			return
		}
		complexNo := req.URL.Query().Get("complexNo")

		raw, err := d.Naver.ArticleDetail(req.Context(), articleNo, complexNo)
		if err != nil {
			writeUpstreamError(w, req, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	})
}
