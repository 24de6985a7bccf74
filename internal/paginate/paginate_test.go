package paginate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func stubSleep(t *testing.T, count *int) {
	t.Helper()
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error {
		*count++
		return ctx.Err()
	}
	t.Cleanup(func() { sleep = orig })
}

func TestAllWalksPagesInOrder(t *testing.T) {
	var sleeps int
	stubSleep(t, &sleeps)

	pages := []Page[int]{
		{Items: []int{1, 2}, HasMore: true},
		{Items: []int{3, 4}, HasMore: true},
		{Items: []int{5, 6}, HasMore: false},
	}
	var fetched []int
	got, err := All(context.Background(), func(_ context.Context, page int) (Page[int], error) {
		fetched = append(fetched, page)
		return pages[page-1], nil
	}, Options{Delay: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	want := []int{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d = %d, want %d (order not preserved)", i, got[i], want[i])
		}
	}
	if len(fetched) != 3 || fetched[0] != 1 || fetched[1] != 2 || fetched[2] != 3 {
		t.Errorf("fetched pages %v, want [1 2 3]", fetched)
	}
	if sleeps != 2 {
		t.Errorf("slept %d times, want 2 (no delay after the final page)", sleeps)
	}
}

func TestAllAbortsOnFetchError(t *testing.T) {
	var sleeps int
	stubSleep(t, &sleeps)

	boom := errors.New("upstream 500")
	got, err := All(context.Background(), func(_ context.Context, page int) (Page[int], error) {
		if page == 2 {
			return Page[int]{}, boom
		}
		return Page[int]{Items: []int{1, 2, 3}, HasMore: true}, nil
	}, Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got != nil {
		t.Errorf("partial results leaked through an aborted aggregation: %v", got)
	}
}

func TestAllEmptyPageContinues(t *testing.T) {
	var sleeps int
	stubSleep(t, &sleeps)

	got, err := All(context.Background(), func(_ context.Context, page int) (Page[int], error) {
		if page == 2 {
			// page with no item collection contributes zero items
			return Page[int]{Items: nil, HasMore: true}, nil
		}
		return Page[int]{Items: []int{page}, HasMore: page < 3}, nil
	}, Options{})
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("got %v, want [1 3]", got)
	}
}

func TestAllStopsAtPageCeiling(t *testing.T) {
	var sleeps int
	stubSleep(t, &sleeps)

	got, err := All(context.Background(), func(_ context.Context, page int) (Page[int], error) {
		return Page[int]{Items: []int{page}, HasMore: true}, nil
	}, Options{MaxPages: 5})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
	if len(got) != 5 {
		t.Errorf("got %d items, want 5 (partial result kept on truncation)", len(got))
	}
}

func TestAllHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := All(ctx, func(_ context.Context, page int) (Page[int], error) {
		return Page[int]{Items: []int{page}, HasMore: true}, nil
	}, Options{Delay: time.Minute})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
