package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_NestedList_SubItemsCarryOneExtraIndentLevel(t *testing.T) {
	doc, _ := renderSource(t, "1. first\n2. second\n   - sub one\n   - sub two\n3. third\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 5)

	require.Contains(t, blockXML(t, blocks[0]), "first")
	require.Contains(t, blockXML(t, blocks[1]), "second")
	require.Contains(t, blockXML(t, blocks[2]), "sub one")
	require.Contains(t, blockXML(t, blocks[3]), "sub two")
	require.Contains(t, blockXML(t, blocks[4]), "third")

	for _, i := range []int{0, 1, 4} {
		out := blockXML(t, blocks[i])
		require.Contains(t, out, `<w:ilvl w:val="0">`, "block %d", i)
		require.Contains(t, out, `<w:numId w:val="2">`, "block %d", i)
	}
	for _, i := range []int{2, 3} {
		out := blockXML(t, blocks[i])
		require.Contains(t, out, `<w:ilvl w:val="1">`, "block %d", i)
		require.Contains(t, out, `<w:numId w:val="1">`, "block %d", i)
	}
}

func TestRender_TwoOrderedLists_GetSeparateNumberingInstances(t *testing.T) {
	doc, _ := renderSource(t, "1. alpha\n\nbetween\n\n1. beta\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 3)
	require.Contains(t, blockXML(t, blocks[0]), `<w:numId w:val="2">`)
	require.Contains(t, blockXML(t, blocks[2]), `<w:numId w:val="3">`)
}

func TestRender_BulletLists_ShareOneNumberingInstance(t *testing.T) {
	doc, _ := renderSource(t, "- one\n\nbetween\n\n- two\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 3)
	require.Contains(t, blockXML(t, blocks[0]), `<w:numId w:val="1">`)
	require.Contains(t, blockXML(t, blocks[2]), `<w:numId w:val="1">`)
}

func TestRender_ListItems_UseListParagraphStyle(t *testing.T) {
	doc, _ := renderSource(t, "- item\n")

	out := blockXML(t, doc.Blocks()[0])

	require.Contains(t, out, `<w:pStyle w:val="ListParagraph">`)
}

func TestRender_TaskList_RendersCheckboxGlyphs(t *testing.T) {
	doc, _ := renderSource(t, "- [x] done\n- [ ] todo\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 2)

	done := blockXML(t, blocks[0])
	require.Contains(t, done, "☑")
	require.Contains(t, done, "done")

	todo := blockXML(t, blocks[1])
	require.Contains(t, todo, "☐")
	require.Contains(t, todo, "todo")
}

func TestRender_DeeplyNestedList_IndentGrowsPerLevel(t *testing.T) {
	doc, _ := renderSource(t, "- a\n  - b\n    - c\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 3)
	require.Contains(t, blockXML(t, blocks[0]), `<w:ilvl w:val="0">`)
	require.Contains(t, blockXML(t, blocks[1]), `<w:ilvl w:val="1">`)
	require.Contains(t, blockXML(t, blocks[2]), `<w:ilvl w:val="2">`)
}

func TestRender_LooseListItem_ParagraphChildrenStillRender(t *testing.T) {
	doc, _ := renderSource(t, "- first\n\n- second\n")

	blocks := doc.Blocks()
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		require.Contains(t, blockXML(t, b), "<w:numPr>")
	}
	joined := blockXML(t, blocks[0]) + blockXML(t, blocks[1])
	require.Contains(t, joined, "first")
	require.Contains(t, joined, "second")
}

func TestRender_OrderedListRestart_NumberingXMLHasOverride(t *testing.T) {
	doc, _ := renderSource(t, "1. alpha\n")

	numbering := string(doc.Numbering().XML())

	require.Contains(t, numbering, `<w:num w:numId="2">`)
	require.True(t, strings.Contains(numbering, `<w:startOverride w:val="1"/>`))
}
