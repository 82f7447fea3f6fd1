package html

import (
	"fmt"
	"html/template"
	"strings"

	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/highlight"
)

// renderDemo renders a demo widget: a tab strip naming each source
// and a code pane showing the active file, highlighted by extension.
//
// The injected markup comes from the highlighter
// over build-time bundled, author-controlled text.
// Nothing on this path may ever carry user input.
func (r *render) renderDemo(b *content.DemoBlock) template.HTML {
	active := b.Spec.Active()
	res := highlight.Resolve(active.Name)
	markup := r.Highlighter.Highlight(res, active.Text)

	var sb strings.Builder
	sb.WriteString(`<div class="demo"`)
	if b.ID != "" {
		fmt.Fprintf(&sb, " id=%q", b.ID)
	}
	if b.Style != "" {
		fmt.Fprintf(&sb, " style=%q", b.Style)
	}
	sb.WriteString(">")

	sb.WriteString(`<ul class="demo-tabs">`)
	for _, src := range b.Spec.Sources {
		class := "demo-tab"
		if src.Name == active.Name {
			class += " active"
		}
		fmt.Fprintf(&sb, `<li class=%q>`, class)
		template.HTMLEscape(&sb, []byte(src.Name))
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")

	fmt.Fprintf(&sb, `<div class="demo-editor" data-language=%q>`, res.Label())
	sb.WriteString(markup)
	sb.WriteString("</div>")

	sb.WriteString("</div>")
	return template.HTML(sb.String())
}
