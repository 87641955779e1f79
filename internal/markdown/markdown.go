// Package markdown is the parse boundary: it turns GitHub Flavored Markdown
// into a Goldmark AST and owns the tree rewrites that happen before
// rendering (alert recognition).
package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// AttrPlainFallback marks a code block that must render as plain
// unhighlighted text. The diagram preprocessor sets it on blocks whose
// diagram could not be rendered.
const AttrPlainFallback = "plainFallback"

// Parse parses a Markdown body (frontmatter already removed) into a Goldmark
// AST with the GFM block types enabled (tables, strikethrough, task lists).
func Parse(body []byte) (gmast.Node, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
	)
	root := md.Parser().Parse(text.NewReader(body))
	return root, nil
}

// PlainText recursively extracts the plain text of a node's inline content.
func PlainText(n gmast.Node, source []byte) string {
	var out []byte
	_ = gmast.Walk(n, func(child gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *gmast.Text:
			out = append(out, t.Segment.Value(source)...)
		case *gmast.String:
			out = append(out, t.Value...)
		}
		return gmast.WalkContinue, nil
	})
	return string(out)
}
