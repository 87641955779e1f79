package docx

import (
	"encoding/xml"
	"strconv"
)

// Block is a body-level element, either a paragraph or a table.
type Block interface {
	block()
}

// ParagraphChild is inline paragraph content, either a run or a
// hyperlink wrapping runs.
type ParagraphChild interface {
	paragraphChild()
}

// Paragraph is a block of inline content with optional direct
// formatting. Property setters create the property container on first
// use and merge into it afterwards, so later setters never discard
// formatting applied earlier.
type Paragraph struct {
	Properties *ParagraphProperties
	Children   []ParagraphChild
}

func NewParagraph() *Paragraph {
	return &Paragraph{}
}

func (p *Paragraph) block() {}

func (p *Paragraph) AddRun(r *Run) {
	p.Children = append(p.Children, r)
}

func (p *Paragraph) AddHyperlink(h *Hyperlink) {
	p.Children = append(p.Children, h)
}

func (p *Paragraph) ensureProperties() *ParagraphProperties {
	if p.Properties == nil {
		p.Properties = &ParagraphProperties{}
	}
	return p.Properties
}

// SetStyle selects a named paragraph style such as Heading1.
func (p *Paragraph) SetStyle(styleID string) {
	p.ensureProperties().Style = styleID
}

// SetNumbering attaches the paragraph to a list numbering instance at
// the given nesting level.
func (p *Paragraph) SetNumbering(numID, level int) {
	p.ensureProperties().Numbering = &NumberingRef{NumID: numID, Level: level}
}

// SetJustification sets horizontal alignment, one of left, center, or
// right.
func (p *Paragraph) SetJustification(val string) {
	p.ensureProperties().Justification = val
}

// SetIndentLeft indents the paragraph from the left margin, in twips.
func (p *Paragraph) SetIndentLeft(twips int) {
	p.ensureProperties().IndentLeft = twips
}

// SetShading fills the paragraph background with a hex RGB color.
func (p *Paragraph) SetShading(fill string) {
	p.ensureProperties().Shading = &Shading{Fill: fill}
}

// SetLeftBorder draws a border on the left edge, keeping any border
// already set on another edge.
func (p *Paragraph) SetLeftBorder(edge BorderEdge) {
	pr := p.ensureProperties()
	if pr.Borders == nil {
		pr.Borders = &ParagraphBorders{}
	}
	pr.Borders.Left = &edge
}

// SetBottomBorder draws a border on the bottom edge, keeping any border
// already set on another edge.
func (p *Paragraph) SetBottomBorder(edge BorderEdge) {
	pr := p.ensureProperties()
	if pr.Borders == nil {
		pr.Borders = &ParagraphBorders{}
	}
	pr.Borders.Bottom = &edge
}

func (p *Paragraph) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:p")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if p.Properties != nil {
		if err := e.Encode(p.Properties); err != nil {
			return err
		}
	}
	for _, c := range p.Children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// ParagraphProperties holds direct paragraph formatting. Children
// marshal in the order the wordprocessingml schema requires.
type ParagraphProperties struct {
	Style         string
	Numbering     *NumberingRef
	Borders       *ParagraphBorders
	Shading       *Shading
	IndentLeft    int
	Justification string
}

func (pp *ParagraphProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:pPr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if pp.Style != "" {
		if err := encodeVal(e, "w:pStyle", pp.Style); err != nil {
			return err
		}
	}
	if pp.Numbering != nil {
		if err := e.Encode(pp.Numbering); err != nil {
			return err
		}
	}
	if pp.Borders != nil {
		if err := e.Encode(pp.Borders); err != nil {
			return err
		}
	}
	if pp.Shading != nil {
		if err := e.Encode(pp.Shading); err != nil {
			return err
		}
	}
	if pp.IndentLeft > 0 {
		if err := encodeEmpty(e, "w:ind", attr("w:left", strconv.Itoa(pp.IndentLeft))); err != nil {
			return err
		}
	}
	if pp.Justification != "" {
		if err := encodeVal(e, "w:jc", pp.Justification); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// NumberingRef points a paragraph at a numbering instance and level.
type NumberingRef struct {
	NumID int
	Level int
}

func (n *NumberingRef) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:numPr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeVal(e, "w:ilvl", strconv.Itoa(n.Level)); err != nil {
		return err
	}
	if err := encodeVal(e, "w:numId", strconv.Itoa(n.NumID)); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// ParagraphBorders holds the edges drawn around a paragraph.
type ParagraphBorders struct {
	Left   *BorderEdge
	Bottom *BorderEdge
}

func (pb *ParagraphBorders) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:pBdr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if pb.Left != nil {
		if err := pb.Left.encode(e, "w:left"); err != nil {
			return err
		}
	}
	if pb.Bottom != nil {
		if err := pb.Bottom.encode(e, "w:bottom"); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Hyperlink wraps runs in an external link resolved through a document
// relationship.
type Hyperlink struct {
	RelID string
	Runs  []*Run
}

func (h *Hyperlink) paragraphChild() {}

func (h *Hyperlink) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:hyperlink", attr("r:id", h.RelID))
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, r := range h.Runs {
		if err := e.Encode(r); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
