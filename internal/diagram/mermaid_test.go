package diagram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mddocx/internal/config"
)

func TestNew_Disabled_ReturnsNil(t *testing.T) {
	r := New(config.DiagramConfig{Enabled: false}, testLogger())

	require.Nil(t, r)
}

func TestNew_Enabled_ReturnsCLIRenderer(t *testing.T) {
	r := New(config.DiagramConfig{Enabled: true, Binary: "mmdc", TempDir: t.TempDir()}, testLogger())

	require.NotNil(t, r)
	require.IsType(t, &MermaidCLI{}, r)
}

func TestMermaidCLI_BinaryMissing_ReturnsError(t *testing.T) {
	r := NewMermaidCLI("mddocx-test-no-such-binary", t.TempDir(), testLogger())

	_, err := r.Render(context.Background(), []byte("graph TD;"))

	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
