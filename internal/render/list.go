package render

import (
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
)

func (e *Engine) renderList(n gmast.Node) error {
	return e.renderListLevel(n.(*gmast.List), 0)
}

// renderListLevel renders one list at the given nesting depth. Every
// ordered list gets a fresh numbering instance so its numbers restart
// at one; bullet lists share a single instance. Nested lists recurse
// with depth+1, which becomes the indent level of their items.
func (e *Engine) renderListLevel(list *gmast.List, depth int) error {
	numID := e.doc.Numbering().BulletID()
	if list.IsOrdered() {
		numID = e.doc.Numbering().NewOrderedID()
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if err := e.renderListItem(item, numID, depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) renderListItem(item gmast.Node, numID, depth int) error {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *gmast.TextBlock, *gmast.Paragraph:
			segs := e.resolveInlines(c, StyleContext{})
			e.emitSegments(e.doc, segs, func(p *docx.Paragraph) {
				p.SetStyle(docx.StyleListParagraph)
				p.SetNumbering(numID, depth)
			})
		case *gmast.List:
			if err := e.renderListLevel(c, depth+1); err != nil {
				return err
			}
		default:
			if err := e.renderBlock(child); err != nil {
				return err
			}
		}
	}
	return nil
}
