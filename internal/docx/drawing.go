package docx

import (
	"encoding/xml"
	"strconv"
)

// Drawing embeds a picture inline in a run. Width and Height are in
// English Metric Units.
type Drawing struct {
	RelID  string
	Name   string
	DocID  int
	Width  int64
	Height int64
}

// NewPictureRun wraps an embedded image in a run sized to the given
// extent.
func NewPictureRun(ref ImageRef, width, height int64) *Run {
	return &Run{Content: []RunContent{&Drawing{
		RelID:  ref.RelID,
		Name:   ref.Name,
		DocID:  ref.Index,
		Width:  width,
		Height: height,
	}}}
}

func (d *Drawing) runContent() {}

func (d *Drawing) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	cx := strconv.FormatInt(d.Width, 10)
	cy := strconv.FormatInt(d.Height, 10)
	id := strconv.Itoa(d.DocID)

	w := &elemWriter{enc: e}
	w.open("w:drawing")
	w.open("wp:inline",
		attr("distT", "0"), attr("distB", "0"),
		attr("distL", "0"), attr("distR", "0"))
	w.empty("wp:extent", attr("cx", cx), attr("cy", cy))
	w.empty("wp:effectExtent",
		attr("l", "0"), attr("t", "0"), attr("r", "0"), attr("b", "0"))
	w.empty("wp:docPr", attr("id", id), attr("name", "Picture "+id))
	w.open("wp:cNvGraphicFramePr")
	w.empty("a:graphicFrameLocks", attr("noChangeAspect", "1"))
	w.close("wp:cNvGraphicFramePr")
	w.open("a:graphic")
	w.open("a:graphicData",
		attr("uri", "http://schemas.openxmlformats.org/drawingml/2006/picture"))
	w.open("pic:pic")
	w.open("pic:nvPicPr")
	w.empty("pic:cNvPr", attr("id", id), attr("name", d.Name))
	w.empty("pic:cNvPicPr")
	w.close("pic:nvPicPr")
	w.open("pic:blipFill")
	w.empty("a:blip", attr("r:embed", d.RelID))
	w.open("a:stretch")
	w.empty("a:fillRect")
	w.close("a:stretch")
	w.close("pic:blipFill")
	w.open("pic:spPr")
	w.open("a:xfrm")
	w.empty("a:off", attr("x", "0"), attr("y", "0"))
	w.empty("a:ext", attr("cx", cx), attr("cy", cy))
	w.close("a:xfrm")
	w.open("a:prstGeom", attr("prst", "rect"))
	w.empty("a:avLst")
	w.close("a:prstGeom")
	w.close("pic:spPr")
	w.close("pic:pic")
	w.close("a:graphicData")
	w.close("a:graphic")
	w.close("wp:inline")
	w.close("w:drawing")
	return w.err
}
