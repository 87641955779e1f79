package docx

import (
	"encoding/xml"
	"strconv"
)

const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

func startElement(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func encodeEmpty(e *xml.Encoder, name string, attrs ...xml.Attr) error {
	return e.EncodeElement(struct{}{}, startElement(name, attrs...))
}

func encodeVal(e *xml.Encoder, name, val string) error {
	return encodeEmpty(e, name, attr("w:val", val))
}

// elemWriter batches token writes and keeps the first error, so deeply
// nested markup does not need an error check per element.
type elemWriter struct {
	enc *xml.Encoder
	err error
}

func (w *elemWriter) open(name string, attrs ...xml.Attr) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(startElement(name, attrs...))
	}
}

func (w *elemWriter) close(name string) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
	}
}

func (w *elemWriter) empty(name string, attrs ...xml.Attr) {
	if w.err == nil {
		w.err = encodeEmpty(w.enc, name, attrs...)
	}
}

// Shading is a flat background fill behind a paragraph or run.
type Shading struct {
	Fill string
}

func (s *Shading) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return encodeEmpty(e, "w:shd",
		attr("w:val", "clear"),
		attr("w:color", "auto"),
		attr("w:fill", s.Fill))
}

// BorderEdge describes one edge of a paragraph border. Size is in
// eighths of a point, Space in points of padding before the text.
type BorderEdge struct {
	Style string
	Size  int
	Space int
	Color string
}

func (b BorderEdge) encode(e *xml.Encoder, name string) error {
	return encodeEmpty(e, name,
		attr("w:val", b.Style),
		attr("w:sz", strconv.Itoa(b.Size)),
		attr("w:space", strconv.Itoa(b.Space)),
		attr("w:color", b.Color))
}
