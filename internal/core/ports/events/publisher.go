package events

import "context"

// Publisher emits domain events to an external stream. Publishing happens after the
// owning database transaction commits and is best-effort: failures are logged by the
// caller, never propagated back into the committed operation.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
