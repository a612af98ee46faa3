package event

import (
	"time"

	"github.com/viant/taskmgr/internal/clock"
)

// Event is an envelope carrying a typed payload.
type Event[T any] struct {
	Type      string                 `json:"type"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event of eventType wrapping data.
func NewEvent[T any](eventType string, data T) *Event[T] {
	return &Event[T]{
		Type:      eventType,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
