package events

import (
	"context"
)

type ComplexUpdated struct {
	ComplexNo string
	Keyword   string
}

type Publisher interface {
	PublishComplexUpdated(ctx context.Context, evt ComplexUpdated)
	SubscribeComplexUpdated() <-chan ComplexUpdated
}

type inMemory struct{ ch chan ComplexUpdated }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan ComplexUpdated, buffer)}
}

func (m *inMemory) PublishComplexUpdated(_ context.Context, evt ComplexUpdated) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeComplexUpdated() <-chan ComplexUpdated { return m.ch }
