package html

import (
	"fmt"
	"html/template"
	"strings"

	"go.wayfind.dev/docsite/internal/content"
)

// renderCode renders a code block whose markup
// was already produced by the content pipeline.
// The highlighted source passes through byte-for-byte;
// the language label only selects a styling class.
func renderCode(b *content.CodeBlock) template.HTML {
	return codeContainer(b.ID, b.Language, b.HighlightedSource)
}

// codeContainer wraps pre-rendered code markup in its container element.
func codeContainer(id, language, highlightedSource string) template.HTML {
	lang := language
	if lang == "" {
		lang = "text"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="code-block language-`)
	template.HTMLEscape(&sb, []byte(strings.ToLower(lang)))
	sb.WriteString(`"`)
	if id != "" {
		fmt.Fprintf(&sb, " id=%q", id)
	}
	sb.WriteString(">")
	sb.WriteString(highlightedSource)
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}
