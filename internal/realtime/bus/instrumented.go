package bus

import (
	"context"

	"github.com/yungbote/competence-backend/internal/realtime"
)

type Observer interface {
	ObserveEntityEvent(entity, action string, err error)
}

type instrumentedBus struct {
	next Bus
	obs  Observer
}

// Instrumented reports every publish attempt of next to obs.
func Instrumented(next Bus, obs Observer) Bus {
	if next == nil || obs == nil {
		return next
	}
	return &instrumentedBus{next: next, obs: obs}
}

func (b *instrumentedBus) Publish(ctx context.Context, ev realtime.EntityEvent) error {
	err := b.next.Publish(ctx, ev)
	b.obs.ObserveEntityEvent(ev.Entity, ev.Action, err)
	return err
}

func (b *instrumentedBus) Close() error { return b.next.Close() }
