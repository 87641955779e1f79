package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const alignedTable = `| Name | Qty | Note |
|:-----|----:|------|
| bolt | 4 | steel |
| nut  | 8 | brass |
`

func TestRender_Table_HeaderAlignmentAppliesToWholeColumn(t *testing.T) {
	doc, _ := renderSource(t, alignedTable)

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	out := blockXML(t, blocks[0])

	// Header plus two body rows, for each aligned column.
	require.Equal(t, 3, strings.Count(out, `<w:jc w:val="left">`))
	require.Equal(t, 3, strings.Count(out, `<w:jc w:val="right">`))
	require.Equal(t, 0, strings.Count(out, `<w:jc w:val="center">`))
}

func TestRender_Table_HeaderCellsAreBold(t *testing.T) {
	doc, _ := renderSource(t, alignedTable)

	out := blockXML(t, doc.Blocks()[0])

	require.Equal(t, 3, strings.Count(out, "<w:b>"))
	require.Less(t, strings.Index(out, "<w:b>"), strings.Index(out, "bolt"))
}

func TestRender_Table_StructureMatchesSource(t *testing.T) {
	doc, _ := renderSource(t, alignedTable)

	out := blockXML(t, doc.Blocks()[0])

	require.Contains(t, out, `<w:tblStyle w:val="TableGrid">`)
	require.Equal(t, 3, strings.Count(out, "<w:gridCol"))
	require.Equal(t, 3, strings.Count(out, "<w:tr>"))
	require.Equal(t, 9, strings.Count(out, "<w:tc>"))
	require.Contains(t, out, "steel")
	require.Contains(t, out, "brass")
}

func TestRender_Table_CenterAlignment(t *testing.T) {
	doc, _ := renderSource(t, "| A |\n|:-:|\n| x |\n")

	out := blockXML(t, doc.Blocks()[0])

	require.Equal(t, 2, strings.Count(out, `<w:jc w:val="center">`))
}

func TestRender_Table_InlineStylingInsideCells(t *testing.T) {
	doc, _ := renderSource(t, "| A |\n|---|\n| **x** |\n")

	out := blockXML(t, doc.Blocks()[0])

	// One bold from the header context, one from the body cell markup.
	require.Equal(t, 2, strings.Count(out, "<w:b>"))
}
