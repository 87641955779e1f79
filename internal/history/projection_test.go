package history

import (
	"context"
	"testing"
	"time"
)

func TestRunHistoryProjection_ApplyEvents(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	projection := NewRunHistoryProjection(store, 10)

	runID := "run-123"
	startEvent, err := NewRunStarted(runID, "docs/", 3)
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	projection.Apply(startEvent)

	summary, exists := projection.GetRun(runID)
	if !exists {
		t.Fatal("Expected run to exist")
	}
	if summary.Status != "running" {
		t.Errorf("Expected status 'running', got %q", summary.Status)
	}
	if summary.Source != "docs/" {
		t.Errorf("Expected source 'docs/', got %q", summary.Source)
	}
	if summary.FileCount != 3 {
		t.Errorf("Expected file count 3, got %d", summary.FileCount)
	}

	convertEvent, err := NewFileConverted(runID, "docs/a.md", "out/a.docx", time.Second, 2)
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	projection.Apply(convertEvent)

	summary, _ = projection.GetRun(runID)
	if summary.Converted != 1 {
		t.Errorf("Expected converted count 1, got %d", summary.Converted)
	}
	if summary.SkippedNodes != 2 {
		t.Errorf("Expected skipped node count 2, got %d", summary.SkippedNodes)
	}

	diagramEvent, err := NewDiagramFailed(runID, "docs/b.md", "mmdc missing")
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	projection.Apply(diagramEvent)

	summary, _ = projection.GetRun(runID)
	if summary.DiagramFailures != 1 {
		t.Errorf("Expected 1 diagram failure, got %d", summary.DiagramFailures)
	}

	completeEvent, err := NewRunCompleted(runID, "completed", 5*time.Second, 3, 0)
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	projection.Apply(completeEvent)

	summary, _ = projection.GetRun(runID)
	if summary.Status != "completed" {
		t.Errorf("Expected status 'completed', got %q", summary.Status)
	}
	if summary.CompletedAt == nil {
		t.Error("Expected completed_at to be set")
	}

	history := projection.GetHistory()
	if len(history) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(history))
	}
	if history[0].RunID != runID {
		t.Errorf("Expected run ID %q, got %q", runID, history[0].RunID)
	}
}

func TestRunHistoryProjection_FileFailed(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	projection := NewRunHistoryProjection(store, 10)

	runID := "run-failed"
	startEvent, _ := NewRunStarted(runID, "docs/", 1)
	projection.Apply(startEvent)

	failEvent, _ := NewFileFailed(runID, "docs/broken.md", "markdown parse failed")
	projection.Apply(failEvent)

	completeEvent, _ := NewRunCompleted(runID, "failed", time.Second, 0, 1)
	projection.Apply(completeEvent)

	summary, exists := projection.GetRun(runID)
	if !exists {
		t.Fatal("Expected run to exist")
	}
	if summary.Status != "failed" {
		t.Errorf("Expected status 'failed', got %q", summary.Status)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected 1 failed file, got %d", summary.Failed)
	}
	if summary.LastError != "markdown parse failed" {
		t.Errorf("Expected last error 'markdown parse failed', got %q", summary.LastError)
	}
}

func TestRunHistoryProjection_Rebuild(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	runID := "run-rebuild-test"
	startEvent, _ := NewRunStarted(runID, "notes/", 2)
	if err := store.Append(ctx, runID, startEvent.Type(), startEvent.Payload(), nil); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	convertEvent, _ := NewFileConverted(runID, "notes/a.md", "out/a.docx", time.Second, 0)
	if err := store.Append(ctx, runID, convertEvent.Type(), convertEvent.Payload(), nil); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	completeEvent, _ := NewRunCompleted(runID, "completed", 3*time.Second, 2, 0)
	if err := store.Append(ctx, runID, completeEvent.Type(), completeEvent.Payload(), nil); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	projection := NewRunHistoryProjection(store, 10)
	if err := projection.Rebuild(ctx); err != nil {
		t.Fatalf("Failed to rebuild: %v", err)
	}

	summary, exists := projection.GetRun(runID)
	if !exists {
		t.Fatal("Expected run to exist after rebuild")
	}
	if summary.Status != "completed" {
		t.Errorf("Expected status 'completed', got %q", summary.Status)
	}
	if summary.Converted != 1 {
		t.Errorf("Expected converted count 1, got %d", summary.Converted)
	}

	history := projection.GetHistory()
	if len(history) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(history))
	}
}

func TestRunHistoryProjection_HistoryLimit(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	projection := NewRunHistoryProjection(store, 3)

	for i := 0; i < 5; i++ {
		runID := "run-" + string(rune('a'+i))
		startEvent, _ := NewRunStarted(runID, "docs/", 1)
		projection.Apply(startEvent)

		completeEvent, _ := NewRunCompleted(runID, "completed", time.Second, 1, 0)
		projection.Apply(completeEvent)
	}

	history := projection.GetHistory()
	if len(history) != 3 {
		t.Errorf("Expected history length 3, got %d", len(history))
	}
}

func TestEmitterPersistsAndProjects(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	projection := NewRunHistoryProjection(store, 10)
	emitter := NewEmitter(store, projection)

	if err := emitter.EmitRunStarted(ctx, "run-e", "docs/", 1); err != nil {
		t.Fatalf("emit start: %v", err)
	}
	if err := emitter.EmitFileConverted(ctx, "run-e", "docs/a.md", "out/a.docx", time.Second, 0); err != nil {
		t.Fatalf("emit converted: %v", err)
	}
	if err := emitter.EmitRunCompleted(ctx, "run-e", "completed", time.Second, 1, 0); err != nil {
		t.Fatalf("emit completed: %v", err)
	}

	events, err := store.GetByRunID(ctx, "run-e")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 persisted events, got %d", len(events))
	}

	summary, exists := projection.GetRun("run-e")
	if !exists {
		t.Fatal("Expected run in projection")
	}
	if summary.Converted != 1 {
		t.Errorf("Expected converted count 1, got %d", summary.Converted)
	}
}

func TestEmitterNilStoreIsNoop(t *testing.T) {
	emitter := NewEmitter(nil, nil)
	if err := emitter.EmitRunStarted(t.Context(), "run-x", "docs/", 1); err != nil {
		t.Fatalf("expected nil error from nil-store emitter, got %v", err)
	}
	var nilEmitter *Emitter
	if err := nilEmitter.EmitRunCompleted(t.Context(), "run-x", "completed", time.Second, 0, 0); err != nil {
		t.Fatalf("expected nil error from nil emitter, got %v", err)
	}
}
