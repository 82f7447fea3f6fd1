package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/errdefer"
	"go.wayfind.dev/docsite/internal/html"
	"go.wayfind.dev/docsite/internal/pagefind"
	"go.wayfind.dev/docsite/internal/site"
)

// Loader reads a directory of guides and parses each into a document.
type Loader interface {
	Load(fs.FS) ([]*content.Document, error)
}

var _ Loader = (*content.Loader)(nil)

// Renderer renders assembled pages to HTML.
type Renderer interface {
	WriteStatic(string) error
	RenderDocument(io.Writer, *html.DocumentInfo) error
	RenderSectionIndex(io.Writer, *html.SectionIndex) error
	RenderNotFound(io.Writer, *html.NotFoundInfo) error
}

var _ Renderer = (*html.Renderer)(nil)

// SearchIndexer builds a search index over a generated website.
type SearchIndexer interface {
	Index(context.Context, pagefind.IndexRequest) error
}

var _ SearchIndexer = (*pagefind.CLI)(nil)

// Generator generates the static documentation website.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log      *log.Logger
	Loader   Loader
	Renderer Renderer
	OutDir   string

	// SearchIndexer indexes the generated site for search.
	// Unset to skip indexing.
	SearchIndexer SearchIndexer
}

// Generate renders every guide in the given filesystem
// into a page under OutDir,
// plus section listings, a not-found fallback page,
// and the site's static assets.
func (g *Generator) Generate(fsys fs.FS) error {
	docs, err := g.Loader.Load(fsys)
	if err != nil {
		return errtrace.Wrap(err)
	}
	ix := site.BuildIndex(docs)

	if err := g.Renderer.WriteStatic(g.OutDir); err != nil {
		return errtrace.Wrap(err)
	}

	for _, p := range ix.Paths() {
		if err := g.renderPath(ix, p); err != nil {
			return errtrace.Wrap(fmt.Errorf("render %q: %w", p, err))
		}
	}

	if err := g.renderNotFound(); err != nil {
		return errtrace.Wrap(err)
	}

	if g.SearchIndexer != nil {
		g.Log.Printf("Indexing for search")
		err := g.SearchIndexer.Index(context.Background(), pagefind.IndexRequest{
			SiteDir:     g.OutDir,
			AssetSubdir: "pagefind",
		})
		if err != nil {
			return errtrace.Wrap(err)
		}
	}

	return nil
}

func (g *Generator) renderPath(ix *site.Index, p string) (err error) {
	dir := filepath.Join(g.OutDir, filepath.FromSlash(p))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	if info, ok := ix.Page(p); ok {
		g.Log.Printf("Rendering page %v", pathLabel(p))
		return errtrace.Wrap(g.Renderer.RenderDocument(f, info))
	}

	idx, ok := ix.Section(p)
	if !ok {
		// BuildIndex lists every path it assembles.
		return errtrace.Wrap(fmt.Errorf("no page or section at %q", p))
	}
	g.Log.Printf("Rendering section %v", pathLabel(p))
	return errtrace.Wrap(g.Renderer.RenderSectionIndex(f, idx))
}

// renderNotFound writes the fallback page as 404.html,
// the name static hosts conventionally serve for unknown URLs.
func (g *Generator) renderNotFound() (err error) {
	f, err := os.Create(filepath.Join(g.OutDir, "404.html"))
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(g.Renderer.RenderNotFound(f, &html.NotFoundInfo{}))
}

func pathLabel(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
