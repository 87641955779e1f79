// Package render converts a parsed markdown tree into document blocks.
// A closed dispatch table maps each block node kind to one renderer.
// Kinds without a handler are skipped and recorded instead of aborting
// the conversion.
package render

import (
	"log/slog"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
	"git.home.luguber.info/inful/mddocx/internal/markdown"
)

type handler func(n gmast.Node) error

// blockSink receives finished paragraphs. The document body and table
// cells both satisfy it, so inline content renders the same way in
// either place.
type blockSink interface {
	AddParagraph(p *docx.Paragraph)
}

// Engine renders one parsed markdown tree into one document. It is
// single-use and not safe for concurrent rendering of multiple trees.
type Engine struct {
	doc      *docx.Document
	source   []byte
	baseDir  string
	logger   *slog.Logger
	handlers map[gmast.NodeKind]handler
	skipped  []*apperrors.ConvertError
}

// New returns an engine that appends blocks to doc. The source is the
// raw markdown the tree was parsed from, and baseDir resolves relative
// image paths.
func New(doc *docx.Document, source []byte, baseDir string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		doc:     doc,
		source:  source,
		baseDir: baseDir,
		logger:  logger,
	}
	e.handlers = map[gmast.NodeKind]handler{
		gmast.KindHeading:         e.renderHeading,
		gmast.KindParagraph:       e.renderParagraph,
		gmast.KindTextBlock:       e.renderParagraph,
		gmast.KindFencedCodeBlock: e.renderFencedCode,
		gmast.KindCodeBlock:       e.renderIndentedCode,
		gmast.KindBlockquote:      e.renderBlockquote,
		markdown.KindAlert:        e.renderAlert,
		gmast.KindList:            e.renderList,
		gmast.KindThematicBreak:   e.renderThematicBreak,
		extast.KindTable:          e.renderTable,
	}
	return e
}

// Render walks the top-level block nodes in order and appends one or
// more document blocks for each. Block order in the document equals
// node order in the tree.
func (e *Engine) Render(root gmast.Node) error {
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if err := e.renderBlock(child); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) renderBlock(n gmast.Node) error {
	h, ok := e.handlers[n.Kind()]
	if !ok {
		e.recordSkip(n)
		return nil
	}
	return h(n)
}

func (e *Engine) recordSkip(n gmast.Node) {
	kind := n.Kind().String()
	e.logger.Warn("skipping unsupported node", logfields.NodeKind(kind))
	e.skipped = append(e.skipped, apperrors.UnsupportedNode(kind))
}

// Skipped reports the nodes dropped during rendering, one entry per
// skipped node.
func (e *Engine) Skipped() []*apperrors.ConvertError {
	return e.skipped
}
