package events

import (
	"context"

	"github.com/axiomesh/hold-token/pkg/events"
)

// Publisher forwards sealed blocks to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, ev *events.ExecutedEvent) error

	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *events.ExecutedEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

// ChanPublisher delivers events to a buffered channel, events are dropped when it is full
type ChanPublisher struct {
	C chan *events.ExecutedEvent
}

func NewChanPublisher(size int) *ChanPublisher {
	return &ChanPublisher{C: make(chan *events.ExecutedEvent, size)}
}

func (p *ChanPublisher) Publish(ctx context.Context, ev *events.ExecutedEvent) error {
	select {
	case p.C <- ev:
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}

func (p *ChanPublisher) Close() error {
	return nil
}
