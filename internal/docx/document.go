// Package docx assembles Office Open XML wordprocessing documents from
// scratch, without a template file. It covers the subset of the format
// needed to express rendered markdown: styled paragraphs and runs,
// tables, list numbering, hyperlinks, borders, shading, and inline
// pictures.
package docx

import "fmt"

// Relationship types referenced from the document part.
const (
	relTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Relationship links the document part to a package part or an
// external resource.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// MediaPart is an embedded binary payload such as a picture.
type MediaPart struct {
	Name string
	Data []byte
}

// ImageRef identifies an embedded picture for use in a drawing.
type ImageRef struct {
	RelID string
	Name  string
	Index int
}

// Document accumulates body blocks, relationships, and media, and
// packages them into a complete wordprocessing file. Blocks appear in
// the output in insertion order.
type Document struct {
	blocks        []Block
	relationships []Relationship
	media         []MediaPart
	numbering     *Numbering
	pictureCount  int
}

// NewDocument returns an empty document with the style and numbering
// parts already related.
func NewDocument() *Document {
	return &Document{
		relationships: []Relationship{
			{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relTypeNumbering, Target: "numbering.xml"},
		},
		numbering: NewNumbering(),
	}
}

func (d *Document) AddParagraph(p *Paragraph) {
	d.blocks = append(d.blocks, p)
}

func (d *Document) AddTable(t *Table) {
	d.blocks = append(d.blocks, t)
}

// Blocks exposes the assembled body in insertion order.
func (d *Document) Blocks() []Block {
	return d.blocks
}

// Numbering exposes the list numbering registry.
func (d *Document) Numbering() *Numbering {
	return d.numbering
}

// AddHyperlink registers an external hyperlink target and returns the
// relationship ID to reference from the markup.
func (d *Document) AddHyperlink(target string) string {
	id := d.nextRelationshipID()
	d.relationships = append(d.relationships, Relationship{
		ID:         id,
		Type:       relTypeHyperlink,
		Target:     target,
		TargetMode: "External",
	})
	return id
}

// AddImage embeds picture bytes as a media part. The format is a
// decoder name as reported by Inspect and doubles as the file
// extension of the part.
func (d *Document) AddImage(data []byte, format string) ImageRef {
	d.pictureCount++
	name := fmt.Sprintf("image%d.%s", d.pictureCount, format)
	d.media = append(d.media, MediaPart{Name: name, Data: data})
	id := d.nextRelationshipID()
	d.relationships = append(d.relationships, Relationship{
		ID:     id,
		Type:   relTypeImage,
		Target: "media/" + name,
	})
	return ImageRef{RelID: id, Name: name, Index: d.pictureCount}
}

// nextRelationshipID returns one past the highest numeric ID currently
// in use, so freshly added relationships never collide with existing
// ones.
func (d *Document) nextRelationshipID() string {
	maxID := 0
	for _, rel := range d.relationships {
		var n int
		if _, err := fmt.Sscanf(rel.ID, "rId%d", &n); err == nil && n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}
