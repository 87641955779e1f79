package docx

import (
	"encoding/xml"
	"strconv"
)

// Usable width between the page margins, in twips.
const contentWidthTwips = 9360

// Table is a body-level grid of cells.
type Table struct {
	Properties *TableProperties
	Columns    int
	Rows       []*TableRow
}

// NewTable returns a table with the given column count, styled with
// the built-in grid style.
func NewTable(columns int) *Table {
	return &Table{
		Properties: &TableProperties{Style: StyleTableGrid},
		Columns:    columns,
	}
}

func (t *Table) block() {}

func (t *Table) AddRow() *TableRow {
	row := &TableRow{}
	t.Rows = append(t.Rows, row)
	return row
}

func (t *Table) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:tbl")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if t.Properties != nil {
		if err := e.Encode(t.Properties); err != nil {
			return err
		}
	}
	if err := t.encodeGrid(e); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := e.Encode(row); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (t *Table) encodeGrid(e *xml.Encoder) error {
	start := startElement("w:tblGrid")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	width := contentWidthTwips
	if t.Columns > 0 {
		width = contentWidthTwips / t.Columns
	}
	for i := 0; i < t.Columns; i++ {
		if err := encodeEmpty(e, "w:gridCol", attr("w:w", strconv.Itoa(width))); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// TableProperties holds table-level formatting.
type TableProperties struct {
	Style string
}

func (tp *TableProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:tblPr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if tp.Style != "" {
		if err := encodeVal(e, "w:tblStyle", tp.Style); err != nil {
			return err
		}
	}
	if err := encodeEmpty(e, "w:tblW", attr("w:w", "0"), attr("w:type", "auto")); err != nil {
		return err
	}
	err := encodeEmpty(e, "w:tblLook",
		attr("w:val", "04A0"),
		attr("w:firstRow", "1"),
		attr("w:lastRow", "0"),
		attr("w:firstColumn", "1"),
		attr("w:lastColumn", "0"),
		attr("w:noHBand", "0"),
		attr("w:noVBand", "1"))
	if err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []*TableCell
}

func (tr *TableRow) AddCell() *TableCell {
	cell := &TableCell{}
	tr.Cells = append(tr.Cells, cell)
	return cell
}

func (tr *TableRow) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:tr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, cell := range tr.Cells {
		if err := e.Encode(cell); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// TableCell holds block content. A cell without blocks still marshals
// with one empty paragraph, which the package format requires.
type TableCell struct {
	Blocks []Block
}

func (tc *TableCell) AddParagraph(p *Paragraph) {
	tc.Blocks = append(tc.Blocks, p)
}

func (tc *TableCell) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:tc")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := tc.encodeProperties(e); err != nil {
		return err
	}
	blocks := tc.Blocks
	if len(blocks) == 0 {
		blocks = []Block{NewParagraph()}
	}
	for _, b := range blocks {
		if err := e.Encode(b); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (tc *TableCell) encodeProperties(e *xml.Encoder) error {
	start := startElement("w:tcPr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:tcW", attr("w:w", "0"), attr("w:type", "auto")); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}
