package render

import (
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
	"git.home.luguber.info/inful/mddocx/internal/markdown"
)

const (
	quoteBorderColor = "999999"
	quoteIndentTwips = 720
)

// alertStyle is the visual treatment of one alert kind.
type alertStyle struct {
	label  string
	accent string
	fill   string
}

var alertStyles = map[markdown.AlertKind]alertStyle{
	markdown.AlertNote:      {label: "Note", accent: "4493F8", fill: "DBEAFE"},
	markdown.AlertTip:       {label: "Tip", accent: "3FB950", fill: "DCFCE7"},
	markdown.AlertImportant: {label: "Important", accent: "AB7DF8", fill: "F3E8FF"},
	markdown.AlertWarning:   {label: "Warning", accent: "D29922", fill: "FEF9C3"},
	markdown.AlertCaution:   {label: "Caution", accent: "F85149", fill: "FEE2E2"},
}

// renderBlockquote draws a left rule and indent on each paragraph of
// the quote. Non-paragraph children render through their own handlers.
func (e *Engine) renderBlockquote(n gmast.Node) error {
	return e.renderQuoteBody(n, func(p *docx.Paragraph) {
		p.SetLeftBorder(docx.BorderEdge{Style: "single", Size: 12, Space: 4, Color: quoteBorderColor})
		p.SetIndentLeft(quoteIndentTwips)
	})
}

// renderAlert emits a bold colored label paragraph followed by the
// alert body, all carrying the accent border and background fill of
// the alert kind.
func (e *Engine) renderAlert(n gmast.Node) error {
	alert := n.(*markdown.Alert)
	style, ok := alertStyles[alert.AlertKind]
	if !ok {
		return e.renderBlockquote(n)
	}

	decorate := func(p *docx.Paragraph) {
		p.SetLeftBorder(docx.BorderEdge{Style: "single", Size: 12, Space: 4, Color: style.accent})
		p.SetIndentLeft(quoteIndentTwips)
		p.SetShading(style.fill)
	}

	label := docx.NewParagraph()
	decorate(label)
	run := docx.NewTextRun(style.label)
	run.SetBold()
	run.SetColor(style.accent)
	label.AddRun(run)
	e.doc.AddParagraph(label)

	return e.renderQuoteBody(n, decorate)
}

func (e *Engine) renderQuoteBody(n gmast.Node, decorate func(*docx.Paragraph)) error {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *gmast.Paragraph, *gmast.TextBlock:
			segs := e.resolveInlines(c, StyleContext{})
			e.emitSegments(e.doc, segs, decorate)
		default:
			if err := e.renderBlock(child); err != nil {
				return err
			}
		}
	}
	return nil
}
