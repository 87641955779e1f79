// Package history records conversion runs as an append-only event log.
package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const (
	runStatusRunning   = "running"
	runStatusCompleted = "completed"
)

// RunSummary is a read model summarizing a completed or in-progress run.
type RunSummary struct {
	RunID           string        `json:"run_id"`
	Source          string        `json:"source,omitempty"`
	Status          string        `json:"status"` // "running", "completed", "warning", "failed"
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Duration        time.Duration `json:"duration,omitempty"`
	FileCount       int           `json:"file_count"`
	Converted       int           `json:"converted"`
	Failed          int           `json:"failed"`
	SkippedNodes    int           `json:"skipped_nodes"`
	DiagramFailures int           `json:"diagram_failures"`
	LastError       string        `json:"last_error,omitempty"`
}

// RunHistoryProjection maintains an in-memory view of run history,
// reconstructed from events stored in the event store.
type RunHistoryProjection struct {
	mu      sync.RWMutex
	store   Store
	runs    map[string]*RunSummary // runID -> summary
	history []*RunSummary          // ordered by start time, newest first
	maxSize int
}

// NewRunHistoryProjection creates a new projection backed by the given store.
func NewRunHistoryProjection(store Store, maxHistorySize int) *RunHistoryProjection {
	if maxHistorySize <= 0 {
		maxHistorySize = 100
	}
	return &RunHistoryProjection{
		store:   store,
		runs:    make(map[string]*RunSummary),
		history: make([]*RunSummary, 0, maxHistorySize),
		maxSize: maxHistorySize,
	}
}

// Rebuild reconstructs the projection from the most recent runs in the
// store. This is typically called at startup.
func (p *RunHistoryProjection) Rebuild(ctx context.Context) error {
	runIDs, err := p.store.RecentRunIDs(ctx, p.maxSize)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.runs = make(map[string]*RunSummary)
	p.history = make([]*RunSummary, 0, p.maxSize)

	// Replay oldest run first so completed runs land in history newest first.
	for i := len(runIDs) - 1; i >= 0; i-- {
		events, err := p.store.GetByRunID(ctx, runIDs[i])
		if err != nil {
			return err
		}
		for _, event := range events {
			p.applyEventLocked(event)
		}
	}

	p.sortHistoryLocked()

	if len(p.history) > p.maxSize {
		p.history = p.history[:p.maxSize]
	}

	// Prevent unbounded growth: keep only bounded history + any running runs.
	p.pruneRunsLocked()

	return nil
}

// Apply processes a single event and updates the projection.
// This is used for real-time updates when events are emitted.
func (p *RunHistoryProjection) Apply(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyEventLocked(event)
}

func (p *RunHistoryProjection) applyEventLocked(event Event) {
	runID := event.RunID()
	if runID == "" {
		return
	}

	summary, exists := p.runs[runID]
	if !exists {
		summary = &RunSummary{
			RunID:     runID,
			Status:    runStatusRunning,
			StartedAt: event.Timestamp(),
		}
		p.runs[runID] = summary
	}

	switch event.Type() {
	case "RunStarted":
		summary.StartedAt = event.Timestamp()
		summary.Status = runStatusRunning
		var payload struct {
			Source    string `json:"source"`
			FileCount int    `json:"file_count"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Source = payload.Source
			summary.FileCount = payload.FileCount
		}

	case "FileConverted":
		summary.Converted++
		var payload struct {
			SkippedNodes int `json:"skipped_nodes"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.SkippedNodes += payload.SkippedNodes
		}

	case "FileFailed":
		summary.Failed++
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.LastError = payload.Error
		}

	case "DiagramFailed":
		summary.DiagramFailures++

	case "RunCompleted":
		now := event.Timestamp()
		summary.CompletedAt = &now
		summary.Duration = now.Sub(summary.StartedAt)
		summary.Status = runStatusCompleted
		var payload struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			if payload.Status != "" {
				summary.Status = payload.Status
			}
		}
		p.addToHistoryLocked(summary)
	}
}

// addToHistoryLocked adds a completed run to history if not already present.
func (p *RunHistoryProjection) addToHistoryLocked(summary *RunSummary) {
	for _, h := range p.history {
		if h.RunID == summary.RunID {
			return
		}
	}

	p.history = append([]*RunSummary{summary}, p.history...)

	if len(p.history) > p.maxSize {
		p.history = p.history[:p.maxSize]
	}

	p.pruneRunsLocked()
}

// pruneRunsLocked removes completed runs not present in the bounded history.
// It keeps any runs that are still marked as running.
// Caller must hold p.mu (write lock).
func (p *RunHistoryProjection) pruneRunsLocked() {
	keep := make(map[string]struct{}, len(p.history))
	for _, h := range p.history {
		if h != nil {
			keep[h.RunID] = struct{}{}
		}
	}

	for id, summary := range p.runs {
		if summary != nil && summary.Status == runStatusRunning {
			continue
		}
		if _, ok := keep[id]; !ok {
			delete(p.runs, id)
		}
	}
}

// sortHistoryLocked sorts history by start time, newest first.
func (p *RunHistoryProjection) sortHistoryLocked() {
	// Simple insertion sort (history is usually small)
	for i := 1; i < len(p.history); i++ {
		for j := i; j > 0 && p.history[j].StartedAt.After(p.history[j-1].StartedAt); j-- {
			p.history[j], p.history[j-1] = p.history[j-1], p.history[j]
		}
	}
}

// GetHistory returns the run history, newest first.
func (p *RunHistoryProjection) GetHistory() []*RunSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*RunSummary, len(p.history))
	copy(result, p.history)
	return result
}

// GetRun returns the summary for a specific run.
func (p *RunHistoryProjection) GetRun(runID string) (*RunSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	summary, exists := p.runs[runID]
	if !exists {
		return nil, false
	}

	cp := *summary
	return &cp, true
}
