package docx

import "fmt"

// Style IDs referenced by paragraph and table builders.
const (
	StyleListParagraph = "ListParagraph"
	StyleTableGrid     = "TableGrid"
)

// HeadingStyle maps a heading level to a built-in style ID. Levels
// outside one through six clamp to the nearest valid heading.
func HeadingStyle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf("Heading%d", level)
}

// stylesXML is the static style part. It mirrors the default styles of
// a stock word processor template so style references resolve without
// an external template file.
var stylesXML = xmlProlog + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults>` +
	`<w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
	`</w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	headingStyleXML(1, "2F5496", 32, false) +
	headingStyleXML(2, "2F5496", 26, false) +
	headingStyleXML(3, "1F3863", 24, false) +
	headingStyleXML(4, "2F5496", 22, true) +
	headingStyleXML(5, "2F5496", 22, false) +
	headingStyleXML(6, "1F3863", 22, false) +
	`<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:ind w:left="720"/><w:contextualSpacing/></w:pPr></w:style>` +
	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/><w:tblPr><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:basedOn w:val="TableNormal"/><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr><w:tblPr><w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`</w:tblBorders></w:tblPr></w:style>` +
	`</w:styles>`

func headingStyleXML(level int, color string, sizeHalfPoints int, italic bool) string {
	italicTag := ""
	if italic {
		italicTag = "<w:i/>"
	}
	spacing := `<w:spacing w:before="40" w:after="0"/>`
	if level == 1 {
		spacing = `<w:spacing w:before="240" w:after="0"/>`
	}
	return fmt.Sprintf(
		`<w:style w:type="paragraph" w:styleId="Heading%d"><w:name w:val="heading %d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:keepLines/>%s<w:outlineLvl w:val="%d"/></w:pPr><w:rPr><w:rFonts w:ascii="Calibri Light" w:hAnsi="Calibri Light"/>%s<w:color w:val="%s"/><w:sz w:val="%d"/></w:rPr></w:style>`,
		level, level, spacing, level-1, italicTag, color, sizeHalfPoints)
}
