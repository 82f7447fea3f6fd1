package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/highlight"
	"go.wayfind.dev/docsite/internal/html"
	"go.wayfind.dev/docsite/internal/iotest"
)

func newTestGenerator(t *testing.T, outDir string) *Generator {
	t.Helper()

	highlighter := &highlight.Highlighter{
		Style:      highlight.PlainStyle,
		UseClasses: true,
	}
	return &Generator{
		Log:      iotest.Logger(t),
		Loader:   &content.Loader{Parser: &content.Parser{Highlighter: highlighter}},
		Renderer: &html.Renderer{Highlighter: highlighter},
		OutDir:   outDir,
	}
}

func TestGenerator(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	gen := newTestGenerator(t, outDir)

	err := gen.Generate(fstest.MapFS{
		"index.md": &fstest.MapFile{
			Data: []byte("# Wayfind\n\nA client-side router.\n"),
		},
		"guides/nesting.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Nested Routes\n---\n\nRoutes may nest.\n"),
		},
		"api/use-route.md": &fstest.MapFile{
			Data: []byte("# useRoute\n"),
		},
	})
	require.NoError(t, err)

	wantFiles := []string{
		"index.html",
		"404.html",
		"guides/index.html",
		"guides/nesting/index.html",
		"api/index.html",
		"api/use-route/index.html",
		filepath.Join("_", "css", "main.css"),
		filepath.Join("_", "js", "reload.js"),
	}
	for _, name := range wantFiles {
		assert.FileExists(t, filepath.Join(outDir, filepath.FromSlash(name)))
	}

	t.Run("page content", func(t *testing.T) {
		bs, err := os.ReadFile(filepath.Join(outDir, "guides", "nesting", "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(bs), "Nested Routes")
		assert.Contains(t, string(bs), "Routes may nest.")
	})

	t.Run("section lists children", func(t *testing.T) {
		bs, err := os.ReadFile(filepath.Join(outDir, "guides", "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(bs), `href="nesting"`)
	})
}

func TestGenerator_loadError(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	gen := newTestGenerator(t, outDir)

	err := gen.Generate(fstest.MapFS{
		"broken.md": &fstest.MapFile{
			// A demo without files cannot load.
			Data: []byte("```demo\neditor: app.jsx\n```\n"),
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken.md")

	// Nothing should have been written.
	ents, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, ents)
}

func TestGenerator_embedded(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	gen := newTestGenerator(t, outDir)
	gen.Renderer = &html.Renderer{
		Embedded:    true,
		Highlighter: &highlight.Highlighter{Style: highlight.PlainStyle},
	}

	err := gen.Generate(fstest.MapFS{
		"index.md": &fstest.MapFile{Data: []byte("# Wayfind\n")},
	})
	require.NoError(t, err)

	bs, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(bs)), "<!doctype",
		"embedded pages must not be full documents")

	assert.NoDirExists(t, filepath.Join(outDir, "_"),
		"embedded mode should not write static assets")
}
