package history

import (
	"encoding/json"
	"testing"
	"time"
)

const testRunID = "run-123"

func TestEventSerialization(t *testing.T) {
	runID := testRunID

	tests := []struct {
		name      string
		createFn  func() (Event, error)
		eventType string
	}{
		{
			name: "RunStarted",
			createFn: func() (Event, error) {
				return NewRunStarted(runID, "docs/", 12)
			},
			eventType: "RunStarted",
		},
		{
			name: "FileConverted",
			createFn: func() (Event, error) {
				return NewFileConverted(runID, "docs/guide.md", "out/guide.docx", 80*time.Millisecond, 0)
			},
			eventType: "FileConverted",
		},
		{
			name: "FileFailed",
			createFn: func() (Event, error) {
				return NewFileFailed(runID, "docs/broken.md", "output write failed")
			},
			eventType: "FileFailed",
		},
		{
			name: "DiagramFailed",
			createFn: func() (Event, error) {
				return NewDiagramFailed(runID, "docs/arch.md", "mmdc exited with status 1")
			},
			eventType: "DiagramFailed",
		},
		{
			name: "RunCompleted",
			createFn: func() (Event, error) {
				return NewRunCompleted(runID, "completed", 2*time.Second, 12, 0)
			},
			eventType: "RunCompleted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := tt.createFn()
			if err != nil {
				t.Fatalf("failed to create event: %v", err)
			}

			if event.RunID() != runID {
				t.Errorf("expected run_id %s, got %s", runID, event.RunID())
			}
			if event.Type() != tt.eventType {
				t.Errorf("expected event_type %s, got %s", tt.eventType, event.Type())
			}
			if event.Timestamp().IsZero() {
				t.Error("timestamp should not be zero")
			}

			payload := event.Payload()
			if len(payload) == 0 {
				t.Error("payload should not be empty")
			}

			var data map[string]any
			if err := json.Unmarshal(payload, &data); err != nil {
				t.Errorf("failed to unmarshal payload: %v", err)
			}
		})
	}
}

func TestFileConvertedFields(t *testing.T) {
	duration := 80 * time.Millisecond

	event, err := NewFileConverted(testRunID, "docs/guide.md", "out/guide.docx", duration, 2)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	if event.File != "docs/guide.md" {
		t.Errorf("expected file docs/guide.md, got %s", event.File)
	}
	if event.Output != "out/guide.docx" {
		t.Errorf("expected output out/guide.docx, got %s", event.Output)
	}
	if event.Duration != duration {
		t.Errorf("expected duration %v, got %v", duration, event.Duration)
	}
	if event.SkippedNodes != 2 {
		t.Errorf("expected 2 skipped nodes, got %d", event.SkippedNodes)
	}
}

func TestFileFailedFields(t *testing.T) {
	event, err := NewFileFailed(testRunID, "docs/broken.md", "markdown parse failed")
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	if event.File != "docs/broken.md" {
		t.Errorf("expected file docs/broken.md, got %s", event.File)
	}
	if event.Error != "markdown parse failed" {
		t.Errorf("expected error message, got %s", event.Error)
	}
}

func TestRunCompletedFields(t *testing.T) {
	event, err := NewRunCompleted(testRunID, "warning", 3*time.Second, 10, 2)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	if event.Status != "warning" {
		t.Errorf("expected status warning, got %s", event.Status)
	}
	if event.Converted != 10 {
		t.Errorf("expected 10 converted, got %d", event.Converted)
	}
	if event.Failed != 2 {
		t.Errorf("expected 2 failed, got %d", event.Failed)
	}
}
