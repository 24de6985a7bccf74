package hydrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourorg/land-api/internal/paginate"
	"github.com/yourorg/land-api/naverland"
)

type WarmConfig struct {
	// Regions are search keywords, e.g. "강남구 역삼동".
	Regions           []string
	Interval          time.Duration
	PauseBetweenPages time.Duration
	MaxPagesPerRegion int
	RequestTimeout    time.Duration
	Endpoint          string
}

// WarmJob periodically re-ingests the configured regions so the snapshot
// tables track the portal without user traffic.
type WarmJob struct {
	Client   *naverland.Client
	Hydrator *Hydrator
	Logger   *log.Logger
	Config   WarmConfig
}

func (j *WarmJob) logf(format string, args ...any) {
	if j.Logger != nil {
		j.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (j *WarmJob) validate() error {
	if j == nil {
		return errors.New("nil warm job")
	}
	if j.Client == nil {
		return errors.New("warm job missing client")
	}
	if j.Hydrator == nil || j.Hydrator.Store == nil {
		return errors.New("warm job requires hydrator with store")
	}
	if len(j.Config.Regions) == 0 {
		return errors.New("warm job requires at least one region")
	}
	if j.Config.Endpoint == "" {
		j.Config.Endpoint = "search"
	}
	if j.Config.PauseBetweenPages <= 0 {
		j.Config.PauseBetweenPages = 200 * time.Millisecond
	}
	if j.Config.MaxPagesPerRegion <= 0 {
		j.Config.MaxPagesPerRegion = 20
	}
	if j.Config.RequestTimeout <= 0 {
		j.Config.RequestTimeout = 10 * time.Second
	}
	return nil
}

func (j *WarmJob) Run(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	interval := j.Config.Interval
	if interval <= 0 {
		return j.RunOnce(ctx)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	j.logf("warm job starting with interval %s (%d region(s))", interval, len(j.Config.Regions))
	if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		j.logf("warm job initial run error: %v", err)
	}
	for {
		select {
		case <-ctx.Done():
			j.logf("warm job stopping: %v", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				j.logf("warm job iteration error: %v", err)
			}
		}
	}
}

func (j *WarmJob) RunOnce(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	var joined error
	for _, rawRegion := range j.Config.Regions {
		region := strings.TrimSpace(rawRegion)
		if region == "" {
			continue
		}
		if err := j.ingestRegion(ctx, region); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, naverland.ErrRateLimited) {
				return err
			}
			joined = errors.Join(joined, err)
		}
	}
	return joined
}

func (j *WarmJob) ingestRegion(ctx context.Context, keyword string) error {
	var lastRaw []byte
	fetch := func(ctx context.Context, page int) (paginate.Page[naverland.Complex], error) {
		reqCtx, cancel := context.WithTimeout(ctx, j.Config.RequestTimeout)
		raw, err := j.Client.SearchComplexes(reqCtx, keyword, page)
		cancel()
		if err != nil {
			return paginate.Page[naverland.Complex]{}, fmt.Errorf("region %q page %d fetch: %w", keyword, page, err)
		}
		lastRaw = raw
		complexes, more, err := naverland.ParseSearchPage(raw)
		if err != nil {
			return paginate.Page[naverland.Complex]{}, fmt.Errorf("region %q page %d decode: %w", keyword, page, err)
		}
		return paginate.Page[naverland.Complex]{Items: complexes, HasMore: more}, nil
	}

	complexes, err := paginate.All(ctx, fetch, paginate.Options{
		Delay:    j.Config.PauseBetweenPages,
		MaxPages: j.Config.MaxPagesPerRegion,
	})
	if err != nil && !errors.Is(err, paginate.ErrTruncated) {
		return err
	}
	if errors.Is(err, paginate.ErrTruncated) {
		j.logf("warm job region %q truncated at %d pages", keyword, j.Config.MaxPagesPerRegion)
	}
	if len(complexes) == 0 {
		j.logf("warm job region %q returned 0 complexes", keyword)
		return nil
	}
	persisted := 0
	for _, c := range complexes {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := j.Hydrator.WriteComplex(ctx, j.Config.Endpoint, keyword, lastRaw, c); err != nil {
			j.logf("warm job region %q complex %s error: %v", keyword, c.ComplexNo, err)
			continue
		}
		persisted++
	}
	j.logf("warm job region %q persisted %d complexes", keyword, persisted)
	return nil
}
