package render

import (
	"fmt"
	"os"
	"path/filepath"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
)

func (e *Engine) renderHeading(n gmast.Node) error {
	heading := n.(*gmast.Heading)
	segs := e.resolveInlines(heading, StyleContext{})
	e.emitSegments(e.doc, segs, func(p *docx.Paragraph) {
		p.SetStyle(docx.HeadingStyle(heading.Level))
	})
	return nil
}

func (e *Engine) renderParagraph(n gmast.Node) error {
	segs := e.resolveInlines(n, StyleContext{})
	e.emitSegments(e.doc, segs, nil)
	return nil
}

func (e *Engine) renderThematicBreak(gmast.Node) error {
	p := docx.NewParagraph()
	p.SetBottomBorder(docx.BorderEdge{Style: "single", Size: 6, Space: 1, Color: "auto"})
	e.doc.AddParagraph(p)
	return nil
}

// renderImageTo embeds the image at target as a block-level paragraph.
// Unreadable or undecodable images degrade to a placeholder paragraph
// rather than failing the conversion.
func (e *Engine) renderImageTo(sink blockSink, target string) {
	para := docx.NewParagraph()

	data, err := os.ReadFile(e.resolveImagePath(target))
	if err == nil {
		var info docx.ImageInfo
		if info, err = docx.Inspect(data); err == nil {
			width, height := docx.FitPage(info.Width, info.Height)
			ref := e.doc.AddImage(data, info.Format)
			para.AddRun(docx.NewPictureRun(ref, width, height))
			sink.AddParagraph(para)
			return
		}
	}

	e.logger.Warn("image unavailable, using placeholder",
		logfields.Path(target), logfields.Error(err))
	para.AddRun(docx.NewTextRun(fmt.Sprintf("[Image not found: %s]", target)))
	sink.AddParagraph(para)
}

func (e *Engine) resolveImagePath(target string) string {
	if filepath.IsAbs(target) || e.baseDir == "" {
		return target
	}
	return filepath.Join(e.baseDir, target)
}
