package history

import (
	"context"
	"fmt"
	"time"
)

// Emitter persists run lifecycle events and keeps a projection current.
// A nil store turns every emit into a no-op, so callers never need to
// check whether history is enabled.
type Emitter struct {
	store      Store
	projection *RunHistoryProjection
}

// NewEmitter creates an Emitter with the given store and projection.
// Either may be nil.
func NewEmitter(store Store, projection *RunHistoryProjection) *Emitter {
	return &Emitter{store: store, projection: projection}
}

// EmitEvent persists an event to the store and updates the projection.
// This is the canonical way to record run lifecycle events.
func (e *Emitter) EmitEvent(ctx context.Context, event Event) error {
	if e == nil || e.store == nil {
		return nil
	}

	if err := e.store.Append(ctx, event.RunID(), event.Type(), event.Payload(), event.Metadata()); err != nil {
		return fmt.Errorf("failed to persist event: %w", err)
	}

	if e.projection != nil {
		e.projection.Apply(event)
	}

	return nil
}

func (e *Emitter) EmitRunStarted(ctx context.Context, runID, source string, fileCount int) error {
	if e == nil || e.store == nil {
		return nil
	}
	event, err := NewRunStarted(runID, source, fileCount)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

func (e *Emitter) EmitFileConverted(ctx context.Context, runID, file, output string, duration time.Duration, skippedNodes int) error {
	if e == nil || e.store == nil {
		return nil
	}
	event, err := NewFileConverted(runID, file, output, duration, skippedNodes)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

func (e *Emitter) EmitFileFailed(ctx context.Context, runID, file, errorMsg string) error {
	if e == nil || e.store == nil {
		return nil
	}
	event, err := NewFileFailed(runID, file, errorMsg)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

func (e *Emitter) EmitDiagramFailed(ctx context.Context, runID, file, detail string) error {
	if e == nil || e.store == nil {
		return nil
	}
	event, err := NewDiagramFailed(runID, file, detail)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

func (e *Emitter) EmitRunCompleted(ctx context.Context, runID, status string, duration time.Duration, converted, failed int) error {
	if e == nil || e.store == nil {
		return nil
	}
	event, err := NewRunCompleted(runID, status, duration, converted, failed)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}
