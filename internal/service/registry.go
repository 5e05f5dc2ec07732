package service

import (
	"fmt"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
)

// HandlerRegistry maps event types to ordered handler lists. The set is
// built once at boot and read-only afterwards, so lookups need no locking.
type HandlerRegistry struct {
	handlers map[string][]ports.EventHandler
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string][]ports.EventHandler)}
}

// Register appends a handler for the event type. A nil handler is a boot
// configuration error, not something to discover when the first matching
// webhook arrives.
func (r *HandlerRegistry) Register(eventType string, handler ports.EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("register handler: empty event type")
	}
	if handler == nil {
		return fmt.Errorf("register handler for %s: nil handler", eventType)
	}
	r.handlers[eventType] = append(r.handlers[eventType], handler)
	return nil
}

// HandlersFor returns the handlers for the event type in registration
// order; the slice is empty for unregistered types.
func (r *HandlerRegistry) HandlersFor(eventType string) []ports.EventHandler {
	return r.handlers[eventType]
}
