package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourorg/land-api/deck"
	httpapi "github.com/yourorg/land-api/http"
	v1 "github.com/yourorg/land-api/http/v1"
	"github.com/yourorg/land-api/internal/env"
	"github.com/yourorg/land-api/internal/events"
	"github.com/yourorg/land-api/internal/hydrator"
	"github.com/yourorg/land-api/internal/redisx"
	"github.com/yourorg/land-api/internal/refresh"
	"github.com/yourorg/land-api/internal/search"
	"github.com/yourorg/land-api/internal/store"
	"github.com/yourorg/land-api/naverland"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	naver := naverland.NewClient(env.Must("NAVER_TOKEN"), env.Must("NAVER_COOKIE"))

	pub := events.NewInMemory(256)
	go (&search.Indexer{Pub: pub}).Run(ctx)

	var hyd *hydrator.Hydrator
	if dsn := env.Get("PG_DSN", ""); dsn != "" {
		st, err := store.Open(dsn)
		if err != nil {
			log.Fatalf("[ERROR] postgres open: %v", err)
		}
		if err := st.Ping(ctx); err != nil {
			log.Fatalf("[ERROR] postgres ping: %v", err)
		}
		if err := st.Migrate(ctx); err != nil {
			log.Fatalf("[ERROR] postgres migrate: %v", err)
		}
		hyd = &hydrator.Hydrator{Store: st, Pub: pub}
		log.Printf("[INFO] hydration enabled")
	} else {
		log.Printf("[INFO] PG_DSN not set, hydration disabled")
	}

	searchDelay := env.GetDuration("SEARCH_PAGE_DELAY", 200*time.Millisecond)
	articleDelay := env.GetDuration("ARTICLE_PAGE_DELAY", 500*time.Millisecond)
	maxPages := env.GetInt("SEARCH_MAX_PAGES", 100)

	deps := routerDeps{
		Complexes: httpapi.ComplexesDeps{Naver: naver, Hydrator: hyd, SearchDelay: searchDelay, MaxPages: maxPages},
		Listings:  httpapi.ListingsDeps{Naver: naver, Hydrator: hyd, ArticleDelay: articleDelay, MaxPages: maxPages},
		Article:   httpapi.ArticleDeps{Naver: naver},
		Deck: httpapi.DeckDeps{
			Renderer: deck.NewClient(env.Get("DECK_RENDER_URL", "http://localhost:8080/api/generate")),
			Maps:     deck.StaticMap{BaseURL: env.Get("STATIC_MAP_URL", ""), Key: env.Get("STATIC_MAP_KEY", "")},
		},
	}

	if addr := env.Get("REDIS_ADDR", ""); addr != "" {
		rdb := redisx.New(addr, env.Get("REDIS_PASSWORD", ""), env.GetInt("REDIS_DB", 0))
		if err := rdb.Ping(ctx); err != nil {
			log.Fatalf("[ERROR] redis ping: %v", err)
		}
		sd := v1.SearchDeps{
			Redis:       rdb,
			Naver:       naver,
			CacheTTL:    env.GetDuration("SEARCH_CACHE_TTL", time.Hour),
			StaleAfter:  env.GetDuration("SEARCH_STALE_AFTER", 5*time.Minute),
			NegativeTTL: env.GetDuration("SEARCH_NEGATIVE_TTL", time.Minute),
			SearchDelay: searchDelay,
			MaxPages:    maxPages,
		}
		sd.Refresher = refresh.New(256, env.GetInt("REFRESH_WORKERS", 2), func(ctx context.Context, j refresh.Job) {
			if _, err := v1.FetchAndCache(ctx, sd, j.Keyword, j.TypeFilter); err != nil {
				log.Printf("[WARN] refresh %q: %v", j.Keyword, err)
			}
		})
		deps.V1Search = &sd
		log.Printf("[INFO] cached search enabled (redis %s)", addr)
	} else {
		log.Printf("[INFO] REDIS_ADDR not set, cached search disabled")
	}

	srv := &http.Server{
		Addr:              ":" + env.Get("PORT", "3000"),
		Handler:           buildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] land-api listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[ERROR] server: %v", err)
		os.Exit(1)
	}
}
