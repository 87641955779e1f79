package notify

import "time"

// RunEvent announces a finished conversion run.
// This event is published to NATS for downstream processing (e.g., chat
// notifications or run dashboards).
type RunEvent struct {
	// Run identification
	RunID  string `json:"run_id"`
	Status string `json:"status"` // completed|warning|failed

	// What was converted
	Source    string `json:"source"`     // Input file or directory
	OutputDir string `json:"output_dir"` // Where .docx files were written

	// Outcome counters
	Converted       int `json:"converted"`
	Failed          int `json:"failed"`
	SkippedNodes    int `json:"skipped_nodes"`
	DiagramFailures int `json:"diagram_failures"`

	// Timing
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"` // Set at publish time
}
