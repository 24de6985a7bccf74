// Package paginate walks a page-numbered upstream API until it reports the
// end of its data, accumulating items in upstream order.
package paginate

import (
	"context"
	"errors"
	"time"
)

// ErrTruncated reports that aggregation stopped at MaxPages while the
// upstream still had more data. The partial result is returned with it.
var ErrTruncated = errors.New("aggregation truncated at page ceiling")

// Page is one upstream page. HasMore false (or an absent flag mapped to
// false) terminates the walk.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// FetchFunc performs one upstream fetch for a 1-based page number.
type FetchFunc[T any] func(ctx context.Context, page int) (Page[T], error)

type Options struct {
	// Delay is the courtesy pause between a page that reported more data
	// and the next fetch. Not applied after the final page.
	Delay time.Duration
	// MaxPages caps the walk; <= 0 means no ceiling.
	MaxPages int
}

// stubbed in tests
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// All fetches pages 1, 2, 3, ... until the upstream reports no more data,
// a fetch fails, or the ceiling is hit. On fetch error nothing accumulated
// is returned; on ErrTruncated the partial result is.
func All[T any](ctx context.Context, fetch FetchFunc[T], opts Options) ([]T, error) {
	var out []T
	for page := 1; ; page++ {
		p, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Items...)
		if !p.HasMore {
			return out, nil
		}
		if opts.MaxPages > 0 && page >= opts.MaxPages {
			return out, ErrTruncated
		}
		if err := sleep(ctx, opts.Delay); err != nil {
			return nil, err
		}
	}
}
