package render

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
)

const (
	codeFontName       = "Courier New"
	codeFontHalfPoints = 18
	codeFillColor      = "F2F2F2"
	hyperlinkColor     = "0563C1"

	checkedGlyph   = "☑"
	uncheckedGlyph = "☐"
)

// StyleContext carries inline styling accumulated from enclosing
// nodes. Contexts are passed by value, so a nested node's flags never
// leak to sibling branches.
type StyleContext struct {
	Bold   bool
	Italic bool
	Strike bool
	Link   string
}

func (c StyleContext) withBold() StyleContext {
	c.Bold = true
	return c
}

func (c StyleContext) withItalic() StyleContext {
	c.Italic = true
	return c
}

func (c StyleContext) withStrike() StyleContext {
	c.Strike = true
	return c
}

func (c StyleContext) withLink(target string) StyleContext {
	c.Link = target
	return c
}

// segment is one resolved piece of inline content.
type segment interface {
	segment()
}

// textSegment is literal text with its effective styling. The code
// flag marks an inline code span.
type textSegment struct {
	text  string
	style StyleContext
	code  bool
}

// breakSegment is a line break within the same paragraph.
type breakSegment struct{}

// imageSegment interrupts the paragraph flow with a block-level image.
type imageSegment struct {
	target string
}

func (textSegment) segment()  {}
func (breakSegment) segment() {}
func (imageSegment) segment() {}

// resolveInlines flattens the inline children of node into styled
// segments, threading ctx through nested styling nodes.
func (e *Engine) resolveInlines(node gmast.Node, ctx StyleContext) []segment {
	var segs []segment
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		segs = append(segs, e.resolveInline(child, ctx)...)
	}
	return segs
}

func (e *Engine) resolveInline(node gmast.Node, ctx StyleContext) []segment {
	switch n := node.(type) {
	case *gmast.Text:
		segs := []segment{textSegment{text: string(n.Segment.Value(e.source)), style: ctx}}
		// Soft breaks keep the author's line structure, same as hard ones.
		if n.HardLineBreak() || n.SoftLineBreak() {
			segs = append(segs, breakSegment{})
		}
		return segs
	case *gmast.String:
		return []segment{textSegment{text: string(n.Value), style: ctx}}
	case *gmast.Emphasis:
		if n.Level >= 2 {
			return e.resolveInlines(n, ctx.withBold())
		}
		return e.resolveInlines(n, ctx.withItalic())
	case *extast.Strikethrough:
		return e.resolveInlines(n, ctx.withStrike())
	case *gmast.CodeSpan:
		text := strings.ReplaceAll(e.inlineText(n), "\n", " ")
		return []segment{textSegment{text: text, style: ctx, code: true}}
	case *gmast.Link:
		return e.resolveInlines(n, ctx.withLink(string(n.Destination)))
	case *gmast.AutoLink:
		target := string(n.URL(e.source))
		return []segment{textSegment{text: string(n.Label(e.source)), style: ctx.withLink(target)}}
	case *gmast.Image:
		return []segment{imageSegment{target: string(n.Destination)}}
	case *extast.TaskCheckBox:
		glyph := uncheckedGlyph
		if n.IsChecked {
			glyph = checkedGlyph
		}
		return []segment{textSegment{text: glyph + " ", style: ctx}}
	default:
		e.recordSkip(node)
		return nil
	}
}

// inlineText concatenates the raw text of a node's inline children.
func (e *Engine) inlineText(node gmast.Node) string {
	var sb strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *gmast.Text:
			sb.Write(n.Segment.Value(e.source))
		case *gmast.String:
			sb.Write(n.Value)
		}
	}
	return sb.String()
}

// emitSegments writes resolved segments into sink as one or more
// paragraphs. A block image closes the open paragraph, renders as its
// own block, and any following segments start a fresh paragraph. An
// empty segment sequence still produces one empty paragraph.
func (e *Engine) emitSegments(sink blockSink, segs []segment, decorate func(*docx.Paragraph)) {
	newParagraph := func() *docx.Paragraph {
		p := docx.NewParagraph()
		if decorate != nil {
			decorate(p)
		}
		return p
	}

	para := newParagraph()
	emitted := false
	for i := 0; i < len(segs); i++ {
		switch seg := segs[i].(type) {
		case textSegment:
			if seg.style.Link != "" {
				runs := []*docx.Run{styledRun(seg)}
				for i+1 < len(segs) {
					next, ok := segs[i+1].(textSegment)
					if !ok || next.style.Link != seg.style.Link {
						break
					}
					runs = append(runs, styledRun(next))
					i++
				}
				relID := e.doc.AddHyperlink(seg.style.Link)
				para.AddHyperlink(&docx.Hyperlink{RelID: relID, Runs: runs})
				continue
			}
			para.AddRun(styledRun(seg))
		case breakSegment:
			para.AddRun(&docx.Run{Content: []docx.RunContent{&docx.Break{}}})
		case imageSegment:
			if len(para.Children) > 0 {
				sink.AddParagraph(para)
				emitted = true
				para = newParagraph()
			}
			e.renderImageTo(sink, seg.target)
			emitted = true
		}
	}
	if len(para.Children) > 0 || !emitted {
		sink.AddParagraph(para)
	}
}

func styledRun(seg textSegment) *docx.Run {
	run := docx.NewTextRun(seg.text)
	if seg.style.Bold {
		run.SetBold()
	}
	if seg.style.Italic {
		run.SetItalic()
	}
	if seg.style.Strike {
		run.SetStrike()
	}
	if seg.code {
		run.SetFont(codeFontName)
		run.SetSize(codeFontHalfPoints)
		run.SetShading(codeFillColor)
	}
	if seg.style.Link != "" {
		run.SetColor(hyperlinkColor)
		run.SetUnderline("single")
	}
	return run
}
