package convert

import (
	"time"

	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
)

// Run status labels.
const (
	StatusCompleted = "completed"
	StatusWarning   = "warning"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// FileResult describes one successful file conversion.
type FileResult struct {
	Input            string
	Output           string
	Title            string
	Duration         time.Duration
	DiagramsRendered int
	SkippedNodes     []*apperrors.ConvertError
	DiagramErrors    []*apperrors.ConvertError
}

// FileFailure pairs an input file with the error that stopped its conversion.
type FileFailure struct {
	Input string
	Err   error
}

// RunResult aggregates a conversion run over one or more inputs.
type RunResult struct {
	RunID     string
	Inputs    []string
	OutputDir string
	Converted []FileResult
	Failed    []FileFailure
	Duration  time.Duration
	Canceled  bool
}

// SkippedNodeCount totals skipped nodes across all converted files.
func (r *RunResult) SkippedNodeCount() int {
	n := 0
	for _, f := range r.Converted {
		n += len(f.SkippedNodes)
	}
	return n
}

// DiagramFailureCount totals diagram fallbacks across all converted files.
func (r *RunResult) DiagramFailureCount() int {
	n := 0
	for _, f := range r.Converted {
		n += len(f.DiagramErrors)
	}
	return n
}

// Status reduces the run to one label. A run with nothing converted and at
// least one failure is failed; partial failures and degraded output are
// warnings; everything else is completed.
func (r *RunResult) Status() string {
	switch {
	case r.Canceled:
		return StatusCanceled
	case len(r.Converted) == 0 && len(r.Failed) > 0:
		return StatusFailed
	case len(r.Failed) > 0 || r.SkippedNodeCount() > 0 || r.DiagramFailureCount() > 0:
		return StatusWarning
	default:
		return StatusCompleted
	}
}
