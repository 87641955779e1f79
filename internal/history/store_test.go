package history

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestStoreAppendAndRetrieve(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	payload := []byte(`{"file": "docs/guide.md"}`)
	metadata := map[string]string{"host": "ci-1"}

	if err := store.Append(ctx, testRunID, "FileConverted", payload, metadata); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	events, err := store.GetByRunID(ctx, testRunID)
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	event := events[0]
	if event.RunID() != testRunID {
		t.Errorf("expected run_id %s, got %s", testRunID, event.RunID())
	}
	if event.Type() != "FileConverted" {
		t.Errorf("expected event_type FileConverted, got %s", event.Type())
	}
	if !bytes.Equal(event.Payload(), payload) {
		t.Errorf("expected payload %s, got %s", payload, event.Payload())
	}
	if event.Metadata()["host"] != "ci-1" {
		t.Errorf("expected metadata host=ci-1, got %v", event.Metadata())
	}
	if event.Timestamp().IsZero() {
		t.Error("expected a non-zero timestamp")
	}
}

func TestStoreRecentRunIDs(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()

	_ = store.Append(ctx, "run-1", "RunStarted", []byte("a"), nil)
	_ = store.Append(ctx, "run-2", "RunStarted", []byte("b"), nil)
	_ = store.Append(ctx, "run-1", "RunCompleted", []byte("c"), nil)

	ids, err := store.RecentRunIDs(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list recent runs: %v", err)
	}

	// run-1 wrote last, so it is the most recent.
	if len(ids) != 2 || ids[0] != "run-1" || ids[1] != "run-2" {
		t.Errorf("expected [run-1 run-2], got %v", ids)
	}

	ids, err = store.RecentRunIDs(ctx, 1)
	if err != nil {
		t.Fatalf("failed to list recent runs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "run-1" {
		t.Errorf("expected [run-1], got %v", ids)
	}
}

func TestStoreMultipleRuns(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()

	_ = store.Append(ctx, "run-1", "RunStarted", []byte("a"), nil)
	_ = store.Append(ctx, "run-2", "RunStarted", []byte("b"), nil)
	_ = store.Append(ctx, "run-1", "RunCompleted", []byte("c"), nil)

	events, err := store.GetByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for run-1, got %d", len(events))
	}
	if events[0].Type() != "RunStarted" || events[1].Type() != "RunCompleted" {
		t.Errorf("expected insertion order, got %s then %s", events[0].Type(), events[1].Type())
	}

	events, err = store.GetByRunID(ctx, "run-2")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event for run-2, got %d", len(events))
	}
}

func TestStoreReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Append(t.Context(), "run-1", "RunStarted", []byte("a"), nil); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	events, err := reopened.GetByRunID(t.Context(), "run-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after reopen, got %d", len(events))
	}
}
