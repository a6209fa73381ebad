package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/pkg/events"
	"github.com/axiomesh/hold-token/pkg/types"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.Nil(t, p.Publish(context.Background(), events.NewExecutedEvent(&types.BlockHeader{}, nil)))
	require.Nil(t, p.Close())
}

func TestChanPublisher(t *testing.T) {
	p := NewChanPublisher(1)
	ev := events.NewExecutedEvent(&types.BlockHeader{Number: 1}, nil)
	require.Nil(t, p.Publish(context.Background(), ev))
	// full, dropped
	require.Nil(t, p.Publish(context.Background(), ev))
	require.Equal(t, ev, <-p.C)
	require.Len(t, p.C, 0)
}
