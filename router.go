package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	httpapi "github.com/yourorg/land-api/http"
	v1 "github.com/yourorg/land-api/http/v1"
	"github.com/yourorg/land-api/internal/logger"
)

type routerDeps struct {
	Complexes httpapi.ComplexesDeps
	Listings  httpapi.ListingsDeps
	Article   httpapi.ArticleDeps
	Deck      httpapi.DeckDeps
	V1Search  *v1.SearchDeps // nil when Redis is not configured
}

func buildRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.Middleware)
	r.Use(httprate.LimitByIP(120, time.Minute))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})

	httpapi.RegisterComplexes(r, d.Complexes)
	httpapi.RegisterListings(r, d.Listings)
	httpapi.RegisterArticle(r, d.Article)
	httpapi.RegisterDeck(r, d.Deck)
	if d.V1Search != nil {
		v1.RegisterSearch(r, *d.V1Search)
	}
	return r
}
