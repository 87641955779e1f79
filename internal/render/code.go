package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/mddocx/internal/docx"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
	"git.home.luguber.info/inful/mddocx/internal/markdown"
)

// tokenStyle is the color and weight for one syntax token class.
type tokenStyle struct {
	color  string
	bold   bool
	italic bool
}

// tokenStyles maps token classes to code block colors. The table is
// fixed at startup and never mutated. Lookup walks from a token's own
// type up through its ancestors until a class matches; tokens with no
// match at any level keep the default text color.
var tokenStyles = map[chroma.TokenType]tokenStyle{
	chroma.Comment:           {color: "008000", italic: true},
	chroma.CommentPreproc:    {color: "AF00DB", bold: true},
	chroma.Keyword:           {color: "0000FF", bold: true},
	chroma.KeywordConstant:   {color: "0000FF", bold: true},
	chroma.KeywordType:       {color: "267F99"},
	chroma.NameBuiltin:       {color: "795E26"},
	chroma.NameFunction:      {color: "795E26"},
	chroma.NameClass:         {color: "267F99", bold: true},
	chroma.NameDecorator:     {color: "795E26"},
	chroma.NameException:     {color: "267F99"},
	chroma.NameTag:           {color: "800000"},
	chroma.NameAttribute:     {color: "FF0000"},
	chroma.LiteralString:     {color: "A31515"},
	chroma.LiteralNumber:     {color: "098658"},
	chroma.Literal:           {color: "A31515"},
	chroma.Operator:          {color: "000000"},
	chroma.OperatorWord:      {color: "0000FF", bold: true},
	chroma.Punctuation:       {color: "000000"},
	chroma.GenericHeading:    {color: "0000FF", bold: true},
	chroma.GenericSubheading: {color: "0000FF", bold: true},
	chroma.GenericEmph:       {italic: true},
	chroma.GenericStrong:     {bold: true},
	chroma.GenericError:      {color: "FF0000"},
	chroma.Error:             {color: "FF0000"},
}

func lookupTokenStyle(t chroma.TokenType) (tokenStyle, bool) {
	for tt := t; tt != 0; tt = tt.Parent() {
		if st, ok := tokenStyles[tt]; ok {
			return st, true
		}
	}
	return tokenStyle{}, false
}

func (e *Engine) renderFencedCode(n gmast.Node) error {
	block := n.(*gmast.FencedCodeBlock)
	lang := ""
	if l := block.Language(e.source); l != nil {
		lang = string(l)
	}
	// A failed diagram renders as plain monospace text, whatever its
	// language tag says.
	if _, plain := block.AttributeString(markdown.AttrPlainFallback); plain {
		lang = ""
	}
	e.renderCode(lang, e.blockText(block))
	return nil
}

func (e *Engine) renderIndentedCode(n gmast.Node) error {
	e.renderCode("", e.blockText(n))
	return nil
}

// renderCode emits one shaded paragraph holding the entire code block.
// An empty or unrecognized language renders unhighlighted monospace
// text. Language names are never guessed from content.
func (e *Engine) renderCode(lang, code string) {
	para := docx.NewParagraph()
	para.SetShading(codeFillColor)

	lexer := lexers.Get(lang)
	if lang == "" || lexer == nil {
		para.AddRun(plainCodeRun(code))
		e.doc.AddParagraph(para)
		return
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		e.logger.Warn("tokenizing code block failed, rendering plain",
			logfields.Language(lang), logfields.Error(err))
		para.AddRun(plainCodeRun(code))
		e.doc.AddParagraph(para)
		return
	}

	for token := iterator(); token != chroma.EOF; token = iterator() {
		run := docx.NewTextRun(token.Value)
		run.SetFont(codeFontName)
		run.SetSize(codeFontHalfPoints)
		if st, ok := lookupTokenStyle(token.Type); ok {
			if st.color != "" {
				run.SetColor(st.color)
			}
			if st.bold {
				run.SetBold()
			}
			if st.italic {
				run.SetItalic()
			}
		}
		para.AddRun(run)
	}
	e.doc.AddParagraph(para)
}

func plainCodeRun(code string) *docx.Run {
	run := docx.NewTextRun(code)
	run.SetFont(codeFontName)
	run.SetSize(codeFontHalfPoints)
	return run
}

// blockText collects the raw source lines of a block node, without the
// final newline of the last line.
func (e *Engine) blockText(n gmast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(e.source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
