// Package content loads and parses the site's Markdown guides
// into renderable documents.
//
// A document is an ordered sequence of blocks:
// prose rendered from Markdown,
// code blocks highlighted during parsing,
// and demo widgets described by fenced blocks with a demo info string.
// Documents are immutable once parsed.
package content

import "errors"

// ErrInvalidDemo indicates a demo fence whose spec
// cannot produce a displayable widget.
// This is a content-authoring defect reported at load time;
// render paths never see an invalid spec.
var ErrInvalidDemo = errors.New("invalid demo spec")

// Document is the resolved content for a single URL path.
type Document struct {
	// Path is the /-separated URL path of the document,
	// without a leading slash. Empty for the home page.
	Path string

	// Title of the document, from frontmatter
	// or the first heading.
	Title string

	// Synopsis is a short description used in section listings.
	Synopsis string

	// Blocks hold the document content in authored order.
	Blocks []Block
}

type (
	// Block is one segment of a document.
	Block interface{ block() }

	// ProseBlock is Markdown prose already rendered to HTML.
	ProseBlock struct {
		HTML string
	}

	// CodeBlock is a standalone code listing.
	// Highlighting happens at parse time;
	// the renderer injects HighlightedSource as-is.
	CodeBlock struct {
		// HighlightedSource is pre-rendered markup, possibly empty.
		HighlightedSource string

		// Language is the display-language label,
		// "text" when the fence named no known language.
		Language string

		// ID is an optional anchor for the block.
		ID string
	}

	// DemoBlock embeds an interactive code widget.
	DemoBlock struct {
		Spec DemoSpec

		// ID and Style pass through to the widget container
		// without interpretation.
		ID    string
		Style string
	}
)

var (
	_ Block = (*ProseBlock)(nil)
	_ Block = (*CodeBlock)(nil)
	_ Block = (*DemoBlock)(nil)
)

func (*ProseBlock) block() {}
func (*CodeBlock) block()  {}
func (*DemoBlock) block()  {}
