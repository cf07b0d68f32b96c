package realtime

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityEvent announces a committed write to one entity.
type EntityEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}
