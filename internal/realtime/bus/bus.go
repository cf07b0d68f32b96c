package bus

import (
	"context"

	"github.com/yungbote/competence-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, ev realtime.EntityEvent) error
	Close() error
}

type noopBus struct{}

// NewNoopBus returns a bus that drops every event. Used when REDIS_ADDR is unset.
func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(context.Context, realtime.EntityEvent) error { return nil }
func (noopBus) Close() error                                      { return nil }
