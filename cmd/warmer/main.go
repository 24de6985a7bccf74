// Command warmer re-ingests configured regions on a schedule so the
// Postgres snapshot tables stay current without user traffic.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourorg/land-api/internal/env"
	"github.com/yourorg/land-api/internal/events"
	"github.com/yourorg/land-api/internal/hydrator"
	"github.com/yourorg/land-api/internal/store"
	"github.com/yourorg/land-api/naverland"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(env.Must("PG_DSN"))
	if err != nil {
		log.Fatalf("[ERROR] postgres open: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("[ERROR] postgres migrate: %v", err)
	}

	regions := splitList(env.Must("WARM_REGIONS"))
	job := &hydrator.WarmJob{
		Client:   naverland.NewClient(env.Must("NAVER_TOKEN"), env.Must("NAVER_COOKIE")),
		Hydrator: &hydrator.Hydrator{Store: st, Pub: events.NewInMemory(64)},
		Logger:   log.New(os.Stderr, "[warmer] ", log.LstdFlags),
		Config: hydrator.WarmConfig{
			Regions:           regions,
			Interval:          env.GetDuration("WARM_INTERVAL", 6*time.Hour),
			PauseBetweenPages: env.GetDuration("WARM_PAGE_PAUSE", 200*time.Millisecond),
			MaxPagesPerRegion: env.GetInt("WARM_MAX_PAGES", 20),
			RequestTimeout:    env.GetDuration("WARM_REQUEST_TIMEOUT", 10*time.Second),
		},
	}

	if env.GetBool("WARM_ONCE", false) {
		job.Config.Interval = 0
	}
	if err := job.Run(ctx); err != nil {
		log.Fatalf("[ERROR] warm job: %v", err)
	}
}

// splitList parses "강남구 역삼동,서초구 서초동" into region keywords.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
