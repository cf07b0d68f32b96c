package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
	"github.com/yungbote/competence-backend/internal/platform/apierr"
	"github.com/yungbote/competence-backend/internal/platform/ctxutil"
	"github.com/yungbote/competence-backend/internal/platform/logger"
	"github.com/yungbote/competence-backend/internal/realtime"
	"github.com/yungbote/competence-backend/internal/realtime/bus"
)

// checkNew rejects client-supplied identities on create.
func checkNew(entity string, bodyID int64) error {
	if bodyID != 0 {
		return apierr.Validation(entity, apierr.CodeIDExists, fmt.Sprintf("a new %s cannot already have an id", entity))
	}
	return nil
}

// checkIdentity enforces the update preconditions shared by full and partial
// updates: the body carries an id, it matches the path, and the row exists.
func checkIdentity(ctx context.Context, entity string, pathID, bodyID int64, exists func(context.Context, int64) (bool, error)) error {
	if bodyID == 0 {
		return apierr.Validation(entity, apierr.CodeIDNull, "invalid id")
	}
	if pathID != bodyID {
		return apierr.Validation(entity, apierr.CodeIDInvalid, "invalid id")
	}
	ok, err := exists(ctx, pathID)
	if err != nil {
		return fmt.Errorf("check %s %d exists: %w", entity, pathID, err)
	}
	if !ok {
		return apierr.Validation(entity, apierr.CodeIDNotFound, "entity not found")
	}
	return nil
}

// vanished maps a repo ErrNotFound seen after the existence check to a 404.
func vanished(entity string, id int64, err error) error {
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return apierr.NotFound(entity, fmt.Errorf("%s %d not found", entity, id))
	}
	return err
}

func publish(ctx context.Context, log *logger.Logger, events bus.Bus, entity, action string, id int64) {
	if events == nil {
		return
	}
	ev := realtime.EntityEvent{
		Entity: entity,
		Action: action,
		ID:     id,
		At:     time.Now().UTC(),
	}
	if td := ctxutil.GetTraceData(ctx); td != nil {
		ev.RequestID = td.RequestID
	}
	if err := events.Publish(ctx, ev); err != nil {
		log.Warn("entity event publish failed", "entity", entity, "action", action, "id", id, "error", err)
	}
}
