package history

import (
	"encoding/json"
	"time"

	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
)

// RunStarted is emitted when a conversion run begins.
type RunStarted struct {
	BaseEvent
	Source    string `json:"source"`
	FileCount int    `json:"file_count"`
}

// NewRunStarted creates a RunStarted event.
func NewRunStarted(runID, source string, fileCount int) (*RunStarted, error) {
	payload, err := json.Marshal(map[string]any{
		"source":     source,
		"file_count": fileCount,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityError, "marshal RunStarted payload").
			WithContext("run_id", runID)
	}

	return &RunStarted{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      "RunStarted",
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		Source:    source,
		FileCount: fileCount,
	}, nil
}

// FileConverted is emitted when a markdown file is converted successfully.
type FileConverted struct {
	BaseEvent
	File         string        `json:"file"`
	Output       string        `json:"output"`
	Duration     time.Duration `json:"duration_ms"`
	SkippedNodes int           `json:"skipped_nodes"`
}

// NewFileConverted creates a FileConverted event.
func NewFileConverted(runID, file, output string, duration time.Duration, skippedNodes int) (*FileConverted, error) {
	payload, err := json.Marshal(map[string]any{
		"file":          file,
		"output":        output,
		"duration_ms":   duration.Milliseconds(),
		"skipped_nodes": skippedNodes,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityError, "marshal FileConverted payload").
			WithContext("run_id", runID).
			WithContext("file", file)
	}

	return &FileConverted{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      "FileConverted",
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		File:         file,
		Output:       output,
		Duration:     duration,
		SkippedNodes: skippedNodes,
	}, nil
}

// FileFailed is emitted when a markdown file cannot be converted.
type FileFailed struct {
	BaseEvent
	File  string `json:"file"`
	Error string `json:"error"`
}

// NewFileFailed creates a FileFailed event.
func NewFileFailed(runID, file, errorMsg string) (*FileFailed, error) {
	payload, err := json.Marshal(map[string]any{
		"file":  file,
		"error": errorMsg,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityError, "marshal FileFailed payload").
			WithContext("run_id", runID).
			WithContext("file", file)
	}

	return &FileFailed{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      "FileFailed",
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		File:  file,
		Error: errorMsg,
	}, nil
}

// DiagramFailed is emitted when a diagram block falls back to plain code.
type DiagramFailed struct {
	BaseEvent
	File   string `json:"file"`
	Detail string `json:"detail"`
}

// NewDiagramFailed creates a DiagramFailed event.
func NewDiagramFailed(runID, file, detail string) (*DiagramFailed, error) {
	payload, err := json.Marshal(map[string]any{
		"file":   file,
		"detail": detail,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityError, "marshal DiagramFailed payload").
			WithContext("run_id", runID).
			WithContext("file", file)
	}

	return &DiagramFailed{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      "DiagramFailed",
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		File:   file,
		Detail: detail,
	}, nil
}

// RunCompleted is emitted when a conversion run finishes, regardless of outcome.
type RunCompleted struct {
	BaseEvent
	Status    string        `json:"status"`
	Duration  time.Duration `json:"duration_ms"`
	Converted int           `json:"converted"`
	Failed    int           `json:"failed"`
}

// NewRunCompleted creates a RunCompleted event.
func NewRunCompleted(runID, status string, duration time.Duration, converted, failed int) (*RunCompleted, error) {
	payload, err := json.Marshal(map[string]any{
		"status":      status,
		"duration_ms": duration.Milliseconds(),
		"converted":   converted,
		"failed":      failed,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityError, "marshal RunCompleted payload").
			WithContext("run_id", runID)
	}

	return &RunCompleted{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      "RunCompleted",
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		Status:    status,
		Duration:  duration,
		Converted: converted,
		Failed:    failed,
	}, nil
}
