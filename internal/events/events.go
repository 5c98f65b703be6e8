// Package events distributes pipeline stage events.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is published whenever a pipeline run reaches a stage.
type Event struct {
	RunID         uuid.UUID  `json:"run_id" example:"0b3e8d07-4b4f-4a21-a2b0-7f2ad1a05c55"`
	Stage         string     `json:"stage" example:"persisted"`
	At            time.Time  `json:"at" example:"2025-02-24T19:28:44.491514Z"`
	TransactionID *uuid.UUID `json:"transaction_id,omitempty" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Error         string     `json:"error,omitempty" example:"could not parse message: no amount found"`
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Discard drops all events.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error {
	return nil
}

// Multi publishes every event to all of its publishers.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
