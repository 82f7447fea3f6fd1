package highlight

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
)

// Highlighter turns source code into HTML.
type Highlighter struct {
	// Style used for syntax highlighting of code.
	Style *chroma.Style

	// UseClasses specifies whether the highlighter
	// uses inline 'style' attributes for highlighting,
	// or classes, assuming use of an appropriate style sheet.
	UseClasses bool

	once      sync.Once
	formatter *chromahtml.Formatter
}

func (h *Highlighter) init() {
	h.once.Do(func() {
		h.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(h.UseClasses),
		)
	})
}

// WriteCSS writes the style classes for this highlighter to writer.
// If this highlighter is not using classes, WriteCSS is a no-op.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	h.init()

	if !h.UseClasses {
		return nil
	}

	return h.formatter.WriteCSS(w, h.Style)
}

// Highlight renders the given source text into HTML
// using the grammar carried by the resolution.
// If tokenization fails, the text is rendered escaped but unstyled.
// Highlight never fails.
func (h *Highlighter) Highlight(res Resolution, src string) string {
	h.init()

	var sb strings.Builder
	if h.UseClasses {
		fmt.Fprintf(&sb, "<pre class=%q>", chroma.StandardTypes[chroma.PreWrapper])
	} else {
		style := chromahtml.StyleEntryToCSS(h.Style.Get(chroma.PreWrapper))
		fmt.Fprintf(&sb, "<pre style=%q>", style)
	}

	lexer := res.lexer
	if lexer == nil {
		lexer = _plainLexer
	}

	tokens, err := chroma.Tokenise(lexer, nil, src)
	if err == nil {
		err = h.formatter.Format(&sb, h.Style, chroma.Literator(tokens...))
	}
	if err != nil {
		template.HTMLEscape(&sb, []byte(src))
	}

	fmt.Fprint(&sb, "</pre>")
	return sb.String()
}
