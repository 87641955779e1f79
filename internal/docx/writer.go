package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
)

const xmlProlog = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n"

const documentOpen = `<w:document` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
	`><w:body>`

const documentClose = `</w:body></w:document>`

// Letter page with one inch margins.
const sectionProperties = `<w:sectPr>` +
	`<w:pgSz w:w="12240" w:h="15840"/>` +
	`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
	`</w:sectPr>`

const packageRelsXML = xmlProlog +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// WriteFile packages the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.WriteFailed(path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return apperrors.WriteFailed(path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.WriteFailed(path, err)
	}
	return nil
}

type packagePart struct {
	name string
	data []byte
}

// Write packages the document into w as a zip archive.
func (d *Document) Write(w io.Writer) error {
	body, err := d.documentXML()
	if err != nil {
		return fmt.Errorf("assembling document body: %w", err)
	}

	parts := []packagePart{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", body},
		{"word/_rels/document.xml.rels", d.documentRelsXML()},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", d.numbering.XML()},
	}
	for _, m := range d.media {
		parts = append(parts, packagePart{"word/media/" + m.Name, m.Data})
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("writing part %s: %w", part.name, err)
		}
	}
	return zw.Close()
}

func (d *Document) documentXML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlProlog)
	buf.WriteString(documentOpen)
	enc := xml.NewEncoder(&buf)
	for _, b := range d.blocks {
		if err := enc.Encode(b); err != nil {
			return nil, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteString(sectionProperties)
	buf.WriteString(documentClose)
	return buf.Bytes(), nil
}

type contentTypeDefault struct {
	XMLName     xml.Name `xml:"Default"`
	Extension   string   `xml:"Extension,attr"`
	ContentType string   `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	XMLName     xml.Name `xml:"Override"`
	PartName    string   `xml:"PartName,attr"`
	ContentType string   `xml:"ContentType,attr"`
}

type contentTypesDoc struct {
	XMLName   xml.Name `xml:"Types"`
	Namespace string   `xml:"xmlns,attr"`
	Defaults  []contentTypeDefault
	Overrides []contentTypeOverride
}

func (d *Document) contentTypesXML() []byte {
	doc := contentTypesDoc{
		Namespace: "http://schemas.openxmlformats.org/package/2006/content-types",
		Defaults: []contentTypeDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []contentTypeOverride{
			{PartName: "/word/document.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/word/styles.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
			{PartName: "/word/numbering.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"},
		},
	}

	seen := map[string]bool{}
	for _, m := range d.media {
		ext := strings.TrimPrefix(strings.ToLower(extensionOf(m.Name)), ".")
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
	}
	exts := make([]string, 0, len(seen))
	for ext := range seen {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		ct, ok := imageContentTypes[ext]
		if !ok {
			ct = "application/octet-stream"
		}
		doc.Defaults = append(doc.Defaults, contentTypeDefault{Extension: ext, ContentType: ct})
	}

	return marshalPart(doc)
}

func extensionOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

type relationshipXML struct {
	XMLName    xml.Name `xml:"Relationship"`
	ID         string   `xml:"Id,attr"`
	Type       string   `xml:"Type,attr"`
	Target     string   `xml:"Target,attr"`
	TargetMode string   `xml:"TargetMode,attr,omitempty"`
}

type relationshipsDoc struct {
	XMLName   xml.Name `xml:"Relationships"`
	Namespace string   `xml:"xmlns,attr"`
	Items     []relationshipXML
}

func (d *Document) documentRelsXML() []byte {
	doc := relationshipsDoc{
		Namespace: "http://schemas.openxmlformats.org/package/2006/relationships",
	}
	for _, rel := range d.relationships {
		doc.Items = append(doc.Items, relationshipXML{
			ID:         rel.ID,
			Type:       rel.Type,
			Target:     rel.Target,
			TargetMode: rel.TargetMode,
		})
	}
	return marshalPart(doc)
}

// marshalPart renders a struct-tagged part with the standard prolog.
// The inputs are fixed shapes, so a marshal failure is a programming
// error.
func marshalPart(v any) []byte {
	data, err := xml.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("docx: marshaling package part: %v", err))
	}
	return append([]byte(xmlProlog), data...)
}
