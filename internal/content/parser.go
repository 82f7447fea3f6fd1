package content

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.wayfind.dev/docsite/internal/bundle"
	"go.wayfind.dev/docsite/internal/highlight"
	"gopkg.in/yaml.v3"
)

// _demoFence is the fence info word that marks a demo widget.
const _demoFence = "demo"

// Highlighter renders source text into HTML markup.
type Highlighter interface {
	Highlight(highlight.Resolution, string) string
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// frontmatter is the YAML header of a guide.
type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Parser parses Markdown guides into documents.
type Parser struct {
	// Highlighter renders fenced code blocks at parse time,
	// so that downstream renderers only ever inject
	// pre-rendered markup.
	Highlighter Highlighter // required

	// LookupSource resolves bundle file references in demo specs.
	// Defaults to the embedded bundle.
	LookupSource func(name string) (string, bool)

	once sync.Once
	md   goldmark.Markdown
}

func (p *Parser) init() {
	p.once.Do(func() {
		p.md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		)
		if p.LookupSource == nil {
			p.LookupSource = bundle.Lookup
		}
	})
}

// Parse parses a single Markdown guide.
// path is the document's URL path, used only to fill the result.
func (p *Parser) Parse(path string, src []byte) (*Document, error) {
	p.init()

	fm, body, err := extractFrontmatter(src)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("frontmatter: %w", err))
	}

	root := p.md.Parser().Parse(text.NewReader(body))

	doc := Document{
		Path:     path,
		Title:    fm.Title,
		Synopsis: fm.Description,
	}

	// Consecutive non-fence nodes accumulate into one prose block.
	var prose []ast.Node
	flushProse := func() error {
		if len(prose) == 0 {
			return nil
		}
		var buf bytes.Buffer
		for _, n := range prose {
			if err := p.md.Renderer().Render(&buf, body, n); err != nil {
				return errtrace.Wrap(err)
			}
		}
		doc.Blocks = append(doc.Blocks, &ProseBlock{HTML: buf.String()})
		prose = prose[:0]
		return nil
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			if doc.Title == "" {
				if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
					doc.Title = string(h.Text(body))
				}
			}
			prose = append(prose, n)
			continue
		}

		if err := flushProse(); err != nil {
			return nil, err
		}

		block, err := p.parseFence(fence, body)
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, block)
	}
	if err := flushProse(); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (p *Parser) parseFence(fence *ast.FencedCodeBlock, src []byte) (Block, error) {
	var info string
	if fence.Info != nil {
		info = string(fence.Info.Text(src))
	}
	word, attrs := splitFenceInfo(info)

	var sb strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	body := sb.String()

	if word == _demoFence {
		spec, err := p.parseDemoSpec([]byte(body))
		if err != nil {
			return nil, err
		}
		return &DemoBlock{
			Spec:  *spec,
			ID:    attrs["id"],
			Style: attrs["style"],
		}, nil
	}

	res := highlight.ResolveExt(word)
	return &CodeBlock{
		HighlightedSource: p.Highlighter.Highlight(res, body),
		Language:          res.Label(),
		ID:                attrs["id"],
	}, nil
}

// demoSpecYAML is the authored form of a demo fence body.
type demoSpecYAML struct {
	// Editor names the source displayed by default.
	Editor string `yaml:"editor"`

	// Files reference bundled example files by logical name.
	Files []string `yaml:"files"`

	// Sources carry inline text keyed by filename.
	// Decoded through yaml.Node to preserve authored order.
	Sources yaml.Node `yaml:"sources"`
}

func (p *Parser) parseDemoSpec(body []byte) (*DemoSpec, error) {
	var raw demoSpecYAML
	if err := yaml.Unmarshal(body, &raw); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%w: %w", ErrInvalidDemo, err))
	}

	spec := DemoSpec{EditorPathname: raw.Editor}
	for _, name := range raw.Files {
		text, ok := p.LookupSource(name)
		if !ok {
			return nil, errtrace.Wrap(fmt.Errorf(
				"%w: no bundled file named %q", ErrInvalidDemo, name))
		}
		spec.Sources = append(spec.Sources, Source{Name: name, Text: text})
	}

	inline, err := orderedSources(&raw.Sources)
	if err != nil {
		return nil, err
	}
	spec.Sources = append(spec.Sources, inline...)

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// orderedSources flattens an inline sources mapping,
// keeping the authored key order that a plain map would lose.
func orderedSources(n *yaml.Node) ([]Source, error) {
	if n.Kind == 0 || n.IsZero() {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errtrace.Wrap(fmt.Errorf(
			"%w: sources must be a mapping of filename to text", ErrInvalidDemo))
	}

	srcs := make([]Source, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		srcs = append(srcs, Source{Name: key.Value, Text: val.Value})
	}
	return srcs, nil
}

// splitFenceInfo splits a fence info string into its leading word
// and any key=value attributes that follow.
func splitFenceInfo(info string) (word string, attrs map[string]string) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", nil
	}

	attrs = make(map[string]string, len(fields)-1)
	for _, f := range fields[1:] {
		if k, v, ok := strings.Cut(f, "="); ok {
			attrs[k] = v
		}
	}
	return fields[0], attrs
}

// extractFrontmatter splits a YAML frontmatter header,
// if any, from the rest of the file.
func extractFrontmatter(src []byte) (*frontmatter, []byte, error) {
	var fm frontmatter
	if !bytes.HasPrefix(src, []byte("---\n")) {
		return &fm, src, nil
	}

	end := bytes.Index(src[4:], []byte("\n---\n"))
	if end < 0 {
		return nil, nil, errtrace.New("unclosed frontmatter")
	}

	if err := yaml.Unmarshal(src[4:4+end], &fm); err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return &fm, src[4+end+5:], nil
}
