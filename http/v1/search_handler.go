// Package v1 carries the cached complex-search variant: Redis envelope,
// stale-while-revalidate, negative caching and a stampede lock. The plain
// endpoints under /complexes always hit the upstream; this one trades
// freshness for quota.
package v1

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	httpapi "github.com/yourorg/land-api/http"
	"github.com/yourorg/land-api/internal/estatefilter"
	"github.com/yourorg/land-api/internal/redisx"
	"github.com/yourorg/land-api/internal/refresh"
	"github.com/yourorg/land-api/naverland"
)

type SearchDeps struct {
	Redis     *redisx.Client
	Naver     *naverland.Client
	Refresher *refresh.Refresher
	// TTL and staleness tuning
	CacheTTL    time.Duration
	StaleAfter  time.Duration
	NegativeTTL time.Duration
	// Aggregation tuning, mirrored from the live endpoints
	SearchDelay time.Duration
	MaxPages    int
}

type searchRequest struct {
	Keyword      string `json:"keyword"`
	PropertyType string `json:"propertyType"`
}

type cachedEnvelope struct {
	Complexes []naverland.Complex `json:"complexes"`
	Meta      struct {
		LastFetch  time.Time `json:"last_fetch_at"`
		StaleAfter time.Time `json:"stale_after"`
		TTLSeconds int       `json:"ttl_seconds"`
	} `json:"meta"`
}

// CacheKey derives the Redis key for one keyword+filter search.
func CacheKey(keyword, typeFilter string) string {
	sum := sha256.Sum256([]byte(keyword + "|" + typeFilter))
	return "cpx:search:" + hex.EncodeToString(sum[:16])
}

func RegisterSearch(r chi.Router, d SearchDeps) {
	r.Route("/v1/complexes", func(r chi.Router) {
		r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
			var body searchRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				render.Status(req, http.StatusBadRequest)
				render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
				return
			}
			serveSearch(w, req, d, body)
		})
		r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
			q := req.URL.Query()
			serveSearch(w, req, d, searchRequest{
				Keyword:      q.Get("keyword"),
				PropertyType: q.Get("propertyType"),
			})
		})
	})
}

func serveSearch(w http.ResponseWriter, req *http.Request, d SearchDeps, body searchRequest) {
	keyword := strings.TrimSpace(body.Keyword)
	if len([]rune(keyword)) < 2 {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "keyword_too_short", "detail": "keyword must be at least 2 characters"})
		return
	}
	ctx := req.Context()
	key := CacheKey(keyword, body.PropertyType)
	missKey := "cpx:miss:" + key
	lockKey := "cpx:lock:" + key

	if ok, _ := d.Redis.Exists(ctx, missKey); ok {
		render.JSON(w, req, map[string]any{
			"message":             "해당 조건에 검색된 단지가 없습니다.",
			"complexes":           []naverland.Complex{},
			"cache_miss_cooldown": true,
		})
		return
	}

	if val, err := d.Redis.Get(ctx, key); err == nil && val != "" {
		var env cachedEnvelope
		if err := json.Unmarshal([]byte(val), &env); err == nil {
			stale := time.Now().After(env.Meta.StaleAfter)
			if stale && d.Refresher != nil {
				d.Refresher.Enqueue(refresh.Job{Keyword: keyword, TypeFilter: body.PropertyType})
			}
			render.JSON(w, req, map[string]any{
				"source":    "cache",
				"stale":     stale,
				"complexes": env.Complexes,
			})
			return
		}
	}

	// cache miss: take a short lock so concurrent misses do not stampede
	// the portal with duplicate multi-page walks
	if ok, _ := d.Redis.SetNX(ctx, lockKey, "1", 30*time.Second); !ok {
		render.Status(req, http.StatusAccepted)
		render.JSON(w, req, map[string]any{"in_progress": true})
		return
	}
	defer func() { _ = d.Redis.Del(context.WithoutCancel(ctx), lockKey) }()

	complexes, err := FetchAndCache(ctx, d, keyword, body.PropertyType)
	if err != nil {
		render.Status(req, http.StatusBadGateway)
		render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
		return
	}
	if len(complexes) == 0 {
		_ = d.Redis.Set(ctx, missKey, "1", defDur(d.NegativeTTL, time.Minute))
		render.JSON(w, req, map[string]any{"message": "해당 조건에 검색된 단지가 없습니다.", "complexes": []naverland.Complex{}})
		return
	}
	render.JSON(w, req, map[string]any{
		"source":    "fresh",
		"stale":     false,
		"complexes": complexes,
	})
}

// FetchAndCache runs a live aggregation and stores the filtered result
// under the search's cache key. Also used by the background refresher.
func FetchAndCache(ctx context.Context, d SearchDeps, keyword, typeFilter string) ([]naverland.Complex, error) {
	_, complexes, _, err := httpapi.AggregateComplexes(ctx, d.Naver, keyword, defDur(d.SearchDelay, 200*time.Millisecond), defInt(d.MaxPages, 100))
	if err != nil {
		return nil, err
	}
	filtered := estatefilter.Complexes(complexes, typeFilter)

	var env cachedEnvelope
	env.Complexes = filtered
	env.Meta.LastFetch = time.Now()
	env.Meta.StaleAfter = env.Meta.LastFetch.Add(defDur(d.StaleAfter, 5*time.Minute))
	env.Meta.TTLSeconds = int(defDur(d.CacheTTL, time.Hour).Seconds())
	if b, err := json.Marshal(env); err == nil {
		_ = d.Redis.Set(ctx, CacheKey(keyword, typeFilter), string(b), time.Duration(env.Meta.TTLSeconds)*time.Second)
	}
	return filtered, nil
}

func defDur(v, d time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return d
}

func defInt(v, d int) int {
	if v > 0 {
		return v
	}
	return d
}
