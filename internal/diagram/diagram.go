// Package diagram rewrites mermaid code blocks into image nodes before
// rendering, using an external diagram tool to produce the image files.
package diagram

import (
	"context"
	"log/slog"

	gmast "github.com/yuin/goldmark/ast"

	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
	"git.home.luguber.info/inful/mddocx/internal/markdown"
)

// Language is the code fence tag that marks a diagram source block.
const Language = "mermaid"

// Renderer turns diagram source text into an image file and returns
// its path.
type Renderer interface {
	Render(ctx context.Context, source []byte) (string, error)
}

// Preprocess finds diagram code blocks anywhere in the tree, including
// inside quotes and list items, and replaces each with an image node
// pointing at the rendered artifact. A block whose diagram fails keeps
// its place as a code block, marked to render as plain text, and the
// failure is reported in the result. A nil renderer leaves the tree
// untouched. It returns the number of blocks replaced alongside the
// failures.
func Preprocess(ctx context.Context, root gmast.Node, source []byte, r Renderer, logger *slog.Logger) (int, []*apperrors.ConvertError) {
	if r == nil {
		return 0, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	var blocks []*gmast.FencedCodeBlock
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if block, ok := n.(*gmast.FencedCodeBlock); ok && string(block.Language(source)) == Language {
			blocks = append(blocks, block)
		}
		return gmast.WalkContinue, nil
	})

	replaced := 0
	var errs []*apperrors.ConvertError
	for _, block := range blocks {
		path, err := r.Render(ctx, []byte(blockSource(block, source)))
		if err != nil {
			logger.Warn("diagram rendering failed, falling back to code block",
				logfields.Error(err))
			block.SetAttributeString(markdown.AttrPlainFallback, []byte("1"))
			errs = append(errs, apperrors.DiagramFailed(err))
			continue
		}
		replaceWithImage(block, path)
		replaced++
	}
	return replaced, errs
}

// blockSource collects the raw diagram text between the fences.
func blockSource(block *gmast.FencedCodeBlock, source []byte) string {
	var out []byte
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(source)...)
	}
	return string(out)
}

func replaceWithImage(block *gmast.FencedCodeBlock, path string) {
	parent := block.Parent()
	if parent == nil {
		return
	}
	link := gmast.NewLink()
	link.Destination = []byte(path)
	image := gmast.NewImage(link)
	para := gmast.NewParagraph()
	para.AppendChild(para, image)
	parent.ReplaceChild(parent, block, para)
}
