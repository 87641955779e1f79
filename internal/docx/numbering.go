package docx

import (
	"bytes"
	"fmt"
)

const (
	bulletNumID     = 1
	numberingLevels = 9
)

var bulletGlyphs = []string{"•", "◦", "▪"}

// Numbering tracks list numbering instances for the numbering part.
// All bullet lists share one instance. Each ordered list receives a
// fresh instance with a start override so its numbering restarts at
// one instead of continuing the previous list.
type Numbering struct {
	ordered []int
	nextID  int
}

func NewNumbering() *Numbering {
	return &Numbering{nextID: bulletNumID + 1}
}

// BulletID returns the shared bullet list instance.
func (n *Numbering) BulletID() int {
	return bulletNumID
}

// NewOrderedID allocates a numbering instance for one ordered list.
func (n *Numbering) NewOrderedID() int {
	id := n.nextID
	n.nextID++
	n.ordered = append(n.ordered, id)
	return id
}

// XML renders the numbering part.
func (n *Numbering) XML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlProlog)
	buf.WriteString(`<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	writeBulletAbstract(&buf)
	writeDecimalAbstract(&buf)
	fmt.Fprintf(&buf, `<w:num w:numId="%d"><w:abstractNumId w:val="0"/></w:num>`, bulletNumID)
	for _, id := range n.ordered {
		fmt.Fprintf(&buf, `<w:num w:numId="%d"><w:abstractNumId w:val="1"/>`, id)
		for lvl := 0; lvl < numberingLevels; lvl++ {
			fmt.Fprintf(&buf, `<w:lvlOverride w:ilvl="%d"><w:startOverride w:val="1"/></w:lvlOverride>`, lvl)
		}
		buf.WriteString(`</w:num>`)
	}
	buf.WriteString(`</w:numbering>`)
	return buf.Bytes()
}

func writeBulletAbstract(buf *bytes.Buffer) {
	buf.WriteString(`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="hybridMultilevel"/>`)
	for lvl := 0; lvl < numberingLevels; lvl++ {
		glyph := bulletGlyphs[lvl%len(bulletGlyphs)]
		fmt.Fprintf(buf,
			`<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="%s"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`,
			lvl, glyph, (lvl+1)*720)
	}
	buf.WriteString(`</w:abstractNum>`)
}

func writeDecimalAbstract(buf *bytes.Buffer) {
	buf.WriteString(`<w:abstractNum w:abstractNumId="1"><w:multiLevelType w:val="hybridMultilevel"/>`)
	for lvl := 0; lvl < numberingLevels; lvl++ {
		fmt.Fprintf(buf,
			`<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%%%d."/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`,
			lvl, lvl+1, (lvl+1)*720)
	}
	buf.WriteString(`</w:abstractNum>`)
}
