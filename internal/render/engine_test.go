package render

import (
	"bytes"
	"encoding/xml"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
	"git.home.luguber.info/inful/mddocx/internal/markdown"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseSource(t *testing.T, src string) (gmast.Node, []byte) {
	t.Helper()
	source := []byte(src)
	root, err := markdown.Parse(source)
	require.NoError(t, err)
	markdown.RewriteAlerts(root, source)
	return root, source
}

func renderSource(t *testing.T, src string) (*docx.Document, *Engine) {
	t.Helper()
	root, source := parseSource(t, src)
	doc := docx.NewDocument()
	eng := New(doc, source, "", testLogger())
	require.NoError(t, eng.Render(root))
	return doc, eng
}

func blockXML(t *testing.T, b docx.Block) string {
	t.Helper()
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	require.NoError(t, enc.Encode(b))
	require.NoError(t, enc.Flush())
	return buf.String()
}

func TestRender_Heading_UsesHeadingStyle(t *testing.T) {
	doc, _ := renderSource(t, "## Install\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	out := blockXML(t, blocks[0])
	require.Contains(t, out, `<w:pStyle w:val="Heading2">`)
	require.Contains(t, out, "Install")
}

func TestRender_BlockOrder_MatchesSourceOrder(t *testing.T) {
	doc, _ := renderSource(t, "# Title\n\nfirst\n\nsecond\n\n---\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 4)
	require.Contains(t, blockXML(t, blocks[0]), "Title")
	require.Contains(t, blockXML(t, blocks[1]), "first")
	require.Contains(t, blockXML(t, blocks[2]), "second")
	require.Contains(t, blockXML(t, blocks[3]), "<w:bottom")
}

func TestRender_HTMLBlock_SkippedAndReported(t *testing.T) {
	doc, eng := renderSource(t, "<div>raw</div>\n\nafter\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	require.Contains(t, blockXML(t, blocks[0]), "after")

	skipped := eng.Skipped()
	require.Len(t, skipped, 1)
	require.True(t, apperrors.IsCategory(skipped[0], apperrors.CategoryUnsupportedNode))
}

func TestRender_CleanDocument_ReportsNoSkips(t *testing.T) {
	_, eng := renderSource(t, "just a paragraph\n")

	require.Empty(t, eng.Skipped())
}

func TestRender_ThematicBreak_BottomBorderOnlyParagraph(t *testing.T) {
	doc, _ := renderSource(t, "---\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	out := blockXML(t, blocks[0])
	require.Contains(t, out, `<w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto">`)
	require.NotContains(t, out, "<w:r>")
}

func TestRender_HardLineBreak_StaysInOneParagraph(t *testing.T) {
	doc, _ := renderSource(t, "line one  \nline two\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	out := blockXML(t, blocks[0])
	require.Contains(t, out, "<w:br>")
	require.Contains(t, out, "line one")
	require.Contains(t, out, "line two")
}

func TestRender_SoftLineBreak_BreaksLineInSameParagraph(t *testing.T) {
	doc, _ := renderSource(t, "alpha\nbeta\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	out := blockXML(t, blocks[0])
	require.Equal(t, 1, bytes.Count([]byte(out), []byte("<w:br>")))
	require.Contains(t, out, "alpha")
	require.Contains(t, out, "beta")
}
