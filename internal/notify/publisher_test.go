package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mddocx/internal/config"
)

func TestNew_Disabled_ReturnsNil(t *testing.T) {
	p, err := New(config.NotificationConfig{Enabled: false}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestPublishRun_NilPublisher_Noop(t *testing.T) {
	var p *Publisher
	err := p.PublishRun(t.Context(), &RunEvent{RunID: "run-1"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestRunEvent_JSONFieldNames(t *testing.T) {
	event := RunEvent{
		RunID:           "run-1",
		Status:          "warning",
		Source:          "docs/",
		OutputDir:       "out/",
		Converted:       4,
		Failed:          1,
		SkippedNodes:    2,
		DiagramFailures: 1,
		DurationMS:      1500,
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "run-1", decoded["run_id"])
	require.Equal(t, "warning", decoded["status"])
	require.Equal(t, float64(1500), decoded["duration_ms"])
	require.Contains(t, decoded, "skipped_nodes")
	require.Contains(t, decoded, "diagram_failures")
}
