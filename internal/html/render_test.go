package html

import (
	"bytes"
	"io/fs"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/highlight"
	xhtml "golang.org/x/net/html"
)

func testRenderer() *Renderer {
	return &Renderer{
		Highlighter: &highlight.Highlighter{
			Style:      highlight.PlainStyle,
			UseClasses: true,
		},
	}
}

func TestRenderer_WriteStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testRenderer().WriteStatic(dir))

	var want []string
	err := fs.WalkDir(_staticFS, "static", func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		want = append(want, strings.TrimPrefix(path, "static"))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(want)

	var got []string
	err = fs.WalkDir(os.DirFS(dir), "_", func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		got = append(got, strings.TrimPrefix(path, "_"))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)

	assert.Equal(t, want, got)

	css, err := os.ReadFile(dir + "/_/css/main.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), ".chroma",
		"highlighter classes must be appended to the main stylesheet")
}

func TestRenderer_WriteStatic_embedded(t *testing.T) {
	dir := t.TempDir()
	r := testRenderer()
	r.Embedded = true
	require.NoError(t, r.WriteStatic(dir))

	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, ents)
}

func TestRenderer_RenderDocument(t *testing.T) {
	t.Parallel()

	info := DocumentInfo{
		Document: &content.Document{
			Path:  "guides/routing",
			Title: "Routing Basics",
			Blocks: []content.Block{
				&content.ProseBlock{HTML: "<p>Routes map URLs to views.</p>"},
				&content.CodeBlock{
					HighlightedSource: `<pre class="chroma">const a = 1;</pre>`,
					Language:          "JavaScript",
				},
				&content.DemoBlock{
					Spec: content.DemoSpec{
						Sources: []content.Source{
							{Name: "routes.js", Text: "export default [];\n"},
						},
					},
				},
			},
		},
		Breadcrumbs: []Breadcrumb{
			{Text: "guides", Path: "guides"},
			{Text: "routing", Path: "guides/routing"},
		},
	}

	var buff bytes.Buffer
	require.NoError(t, testRenderer().RenderDocument(&buff, &info))

	doc, err := xhtml.Parse(bytes.NewReader(buff.Bytes()))
	require.NoError(t, err, "invalid HTML:\n%v", buff.String())

	title := cascadia.MustCompile("title").MatchFirst(doc)
	require.NotNil(t, title)
	assert.Contains(t, allText(title), "Routing Basics")

	assert.NotNil(t,
		cascadia.MustCompile("article .code-block.language-javascript").MatchFirst(doc))
	assert.NotNil(t,
		cascadia.MustCompile("article .demo .demo-editor").MatchFirst(doc))

	crumbs := cascadia.QueryAll(doc, cascadia.MustCompile(".breadcrumbs a"))
	assert.Len(t, crumbs, 2)
}

func TestRenderer_RenderDocument_embedded(t *testing.T) {
	t.Parallel()

	info := DocumentInfo{
		Document: &content.Document{
			Path:   "guides/x",
			Blocks: []content.Block{&content.ProseBlock{HTML: "<p>hi</p>"}},
		},
	}

	r := testRenderer()
	r.Embedded = true

	var buff bytes.Buffer
	require.NoError(t, r.RenderDocument(&buff, &info))

	out := buff.String()
	assert.Contains(t, out, "<p>hi</p>")
	assert.NotContains(t, out, "<html", "embedded output has no page chrome")
}

func TestRenderer_RenderSectionIndex(t *testing.T) {
	t.Parallel()

	idx := SectionIndex{
		Path: "guides",
		Subpages: []Subpage{
			{RelativePath: "nesting", Title: "Nesting Routes", Synopsis: "Mount routes in routes."},
			{RelativePath: "redirects", Title: "Redirects"},
		},
	}

	var buff bytes.Buffer
	require.NoError(t, testRenderer().RenderSectionIndex(&buff, &idx))

	doc, err := xhtml.Parse(bytes.NewReader(buff.Bytes()))
	require.NoError(t, err)

	heading := cascadia.MustCompile("#section-title").MatchFirst(doc)
	require.NotNil(t, heading)
	assert.Equal(t, "Guides", allText(heading))

	var hrefs []string
	for _, a := range cascadia.QueryAll(doc, cascadia.MustCompile(".subpages a")) {
		hrefs = append(hrefs, attr(a, "href"))
	}
	assert.Equal(t, []string{"nesting", "redirects"}, hrefs)
}

func TestRenderer_RenderNotFound(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t,
		testRenderer().RenderNotFound(&buff, &NotFoundInfo{Path: "/guides/missing"}))

	doc, err := xhtml.Parse(bytes.NewReader(buff.Bytes()))
	require.NoError(t, err)

	require.NotNil(t, cascadia.MustCompile("#not-found-title").MatchFirst(doc))
	assert.Contains(t, buff.String(), "/guides/missing")
}

func TestRenderer_liveReloadScript(t *testing.T) {
	t.Parallel()

	info := DocumentInfo{Document: &content.Document{Path: ""}}

	var without bytes.Buffer
	require.NoError(t, testRenderer().RenderDocument(&without, &info))
	assert.NotContains(t, without.String(), "reload.js")

	r := testRenderer()
	r.LiveReload = true
	var with bytes.Buffer
	require.NoError(t, r.RenderDocument(&with, &info))
	assert.Contains(t, with.String(), "reload.js")
}

func TestTitleLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "guides", want: "Guides"},
		{give: "guides/nesting-routes", want: "Nesting Routes"},
		{give: "", want: "Overview"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleLabel(tt.give))
		})
	}
}
