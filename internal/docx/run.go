package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// RunContent is a child of a run: literal text, a line break, or an
// inline drawing.
type RunContent interface {
	runContent()
}

// Run is a span of identically formatted text inside a paragraph.
type Run struct {
	Properties *RunProperties
	Content    []RunContent
}

// NewTextRun builds a run from literal text. Embedded newlines become
// explicit line breaks.
func NewTextRun(text string) *Run {
	r := &Run{}
	r.AppendText(text)
	return r
}

// AppendText adds literal text to the run, converting newlines to
// break elements.
func (r *Run) AppendText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			r.Content = append(r.Content, &Break{})
		}
		if part != "" {
			r.Content = append(r.Content, &Text{Value: part})
		}
	}
}

func (r *Run) ensureProperties() *RunProperties {
	if r.Properties == nil {
		r.Properties = &RunProperties{}
	}
	return r.Properties
}

func (r *Run) SetBold() { r.ensureProperties().Bold = true }

func (r *Run) SetItalic() { r.ensureProperties().Italic = true }

func (r *Run) SetStrike() { r.ensureProperties().Strike = true }

// SetColor sets the text color as a hex RGB value without a leading hash.
func (r *Run) SetColor(hex string) { r.ensureProperties().Color = hex }

// SetUnderline sets the underline pattern, usually "single".
func (r *Run) SetUnderline(style string) { r.ensureProperties().Underline = style }

// SetFont sets both the ASCII and high ANSI font faces.
func (r *Run) SetFont(name string) { r.ensureProperties().Font = name }

// SetSize sets the font size in half-points.
func (r *Run) SetSize(halfPoints int) { r.ensureProperties().Size = halfPoints }

// SetShading fills the run background with a hex RGB color.
func (r *Run) SetShading(fill string) { r.ensureProperties().Shading = &Shading{Fill: fill} }

func (r *Run) paragraphChild() {}

func (r *Run) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:r")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Properties != nil {
		if err := e.Encode(r.Properties); err != nil {
			return err
		}
	}
	for _, c := range r.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// RunProperties holds direct character formatting. Children marshal in
// the order the wordprocessingml schema requires.
type RunProperties struct {
	Font      string
	Bold      bool
	Italic    bool
	Strike    bool
	Color     string
	Size      int
	Underline string
	Shading   *Shading
}

func (rp *RunProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:rPr")
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if rp.Font != "" {
		if err := encodeEmpty(e, "w:rFonts", attr("w:ascii", rp.Font), attr("w:hAnsi", rp.Font)); err != nil {
			return err
		}
	}
	if rp.Bold {
		if err := encodeEmpty(e, "w:b"); err != nil {
			return err
		}
	}
	if rp.Italic {
		if err := encodeEmpty(e, "w:i"); err != nil {
			return err
		}
	}
	if rp.Strike {
		if err := encodeEmpty(e, "w:strike"); err != nil {
			return err
		}
	}
	if rp.Color != "" {
		if err := encodeVal(e, "w:color", rp.Color); err != nil {
			return err
		}
	}
	if rp.Size > 0 {
		if err := encodeVal(e, "w:sz", strconv.Itoa(rp.Size)); err != nil {
			return err
		}
	}
	if rp.Underline != "" {
		if err := encodeVal(e, "w:u", rp.Underline); err != nil {
			return err
		}
	}
	if rp.Shading != nil {
		if err := e.Encode(rp.Shading); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Text is literal run text. A space hint is emitted when the value has
// leading or trailing whitespace so word processors do not trim it.
type Text struct {
	Value string
}

func (t *Text) runContent() {}

func (t *Text) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := startElement("w:t")
	if t.Value != strings.TrimSpace(t.Value) {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Space: xmlNamespaceURL, Local: "space"},
			Value: "preserve",
		})
	}
	return e.EncodeElement(t.Value, start)
}

// Break is an explicit line break inside a run.
type Break struct{}

func (b *Break) runContent() {}

func (b *Break) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return encodeEmpty(e, "w:br")
}
