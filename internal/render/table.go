package render

import (
	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
)

// renderTable builds a grid-styled table. The header node's children
// are its cells directly, with no intermediate row wrapper. Column
// alignment comes from the header cells once and applies to the whole
// column, body rows included.
func (e *Engine) renderTable(n gmast.Node) error {
	var header *extast.TableHeader
	var rows []*extast.TableRow
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch r := child.(type) {
		case *extast.TableHeader:
			header = r
		case *extast.TableRow:
			rows = append(rows, r)
		}
	}

	columns := 0
	if header != nil {
		columns = header.ChildCount()
	} else if len(rows) > 0 {
		columns = rows[0].ChildCount()
	}
	if columns == 0 {
		return nil
	}

	aligns := make([]string, 0, columns)
	if header != nil {
		for cell := header.FirstChild(); cell != nil; cell = cell.NextSibling() {
			aligns = append(aligns, cellJustification(cell))
		}
	}

	table := docx.NewTable(columns)

	if header != nil {
		row := table.AddRow()
		col := 0
		for cell := header.FirstChild(); cell != nil; cell = cell.NextSibling() {
			e.renderTableCell(row, cell, columnAlign(aligns, col), StyleContext{Bold: true})
			col++
		}
	}

	for _, bodyRow := range rows {
		row := table.AddRow()
		col := 0
		for cell := bodyRow.FirstChild(); cell != nil; cell = cell.NextSibling() {
			e.renderTableCell(row, cell, columnAlign(aligns, col), StyleContext{})
			col++
		}
	}

	e.doc.AddTable(table)
	return nil
}

func (e *Engine) renderTableCell(row *docx.TableRow, cell gmast.Node, align string, ctx StyleContext) {
	tc := row.AddCell()
	segs := e.resolveInlines(cell, ctx)
	e.emitSegments(tc, segs, func(p *docx.Paragraph) {
		if align != "" {
			p.SetJustification(align)
		}
	})
}

func columnAlign(aligns []string, col int) string {
	if col < len(aligns) {
		return aligns[col]
	}
	return ""
}

func cellJustification(cell gmast.Node) string {
	tc, ok := cell.(*extast.TableCell)
	if !ok {
		return ""
	}
	switch tc.Alignment {
	case extast.AlignLeft:
		return "left"
	case extast.AlignCenter:
		return "center"
	case extast.AlignRight:
		return "right"
	default:
		return ""
	}
}
