package delivery

import (
	"context"

	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/render"
)

// Sink hands rendered documents to their readers
type Sink interface {
	Deliver(ctx context.Context, run *game.Run, docs []render.Document) error
}

type multiSink []Sink

// Multi delivers to each sink in order, stopping at the first failure
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Deliver(ctx context.Context, run *game.Run, docs []render.Document) error {
	for _, s := range m {
		if err := s.Deliver(ctx, run, docs); err != nil {
			return err
		}
	}
	return nil
}
