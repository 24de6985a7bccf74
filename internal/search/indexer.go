package search

import (
	"context"
	"log"
	"time"

	"github.com/yourorg/land-api/internal/events"
)

// Indexer is a stub that consumes complex.updated events and logs them.
// Swap this with a real OpenSearch client later.
type Indexer struct {
	Pub events.Publisher
}

func (i *Indexer) Run(ctx context.Context) {
	sub := i.Pub.SubscribeComplexUpdated()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			log.Printf("indexer: complex.updated no=%s keyword=%q at=%s", evt.ComplexNo, evt.Keyword, time.Now().Format(time.RFC3339))
		}
	}
}
