package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mddocx/internal/config"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
)

// MermaidCLI renders diagrams by invoking the mermaid command line
// tool. Each invocation writes the source to a temp file and reads the
// produced image back by path; the image files stay in the temp
// directory until the conversion that references them has finished.
type MermaidCLI struct {
	binary  string
	tempDir string
	logger  *slog.Logger
}

// New returns the renderer configured in cfg, or nil when diagram
// rendering is disabled.
func New(cfg config.DiagramConfig, logger *slog.Logger) Renderer {
	if !cfg.Enabled {
		return nil
	}
	return NewMermaidCLI(cfg.Binary, cfg.TempDir, logger)
}

// NewMermaidCLI returns a renderer invoking the given binary and
// writing intermediate files under tempDir.
func NewMermaidCLI(binary, tempDir string, logger *slog.Logger) *MermaidCLI {
	if logger == nil {
		logger = slog.Default()
	}
	return &MermaidCLI{binary: binary, tempDir: tempDir, logger: logger}
}

// Render writes source to a temp file, runs the diagram tool, and
// returns the path of the generated PNG.
func (m *MermaidCLI) Render(ctx context.Context, source []byte) (string, error) {
	if _, err := exec.LookPath(m.binary); err != nil {
		return "", fmt.Errorf("diagram tool %q not found: %w", m.binary, err)
	}
	if err := os.MkdirAll(m.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("creating diagram temp dir: %w", err)
	}

	id := uuid.New().String()
	input := filepath.Join(m.tempDir, "diagram_"+id+".mmd")
	output := filepath.Join(m.tempDir, "diagram_"+id+".png")

	if err := os.WriteFile(input, source, 0o644); err != nil {
		return "", fmt.Errorf("writing diagram source: %w", err)
	}

	m.logger.Debug("rendering diagram", logfields.Path(output))
	cmd := exec.CommandContext(ctx, m.binary, "-i", input, "-o", output)
	combined, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("rendering diagram: %w: %s", err, strings.TrimSpace(string(combined)))
	}
	if _, err := os.Stat(output); err != nil {
		return "", fmt.Errorf("diagram tool produced no output: %w", err)
	}
	return output, nil
}
