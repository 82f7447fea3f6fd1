// Package bundle carries the example source files
// displayed inside demo widgets.
// The files are embedded at build time;
// their contents are opaque strings to the rest of the program.
//
// Because everything here is author-controlled and fixed at build time,
// bundle text is safe to hand to the raw-markup injection path
// of the HTML renderer.
package bundle

import (
	"embed"

	"go.wayfind.dev/docsite/internal/must"
)

//go:embed files/*
var _filesFS embed.FS

// _manifest fixes the canonical iteration order of the bundle.
// Demos that omit an editor pathname display their first file,
// so this order is load-bearing.
var _manifest = []string{
	"helpers.js",
	"routes.js",
	"index.js",
	"app.jsx",
	"styles.css",
}

// File is a single named source file in the bundle.
type File struct {
	Name string
	Text string
}

var (
	_files []File
	_texts map[string]string
)

func init() {
	_texts = make(map[string]string, len(_manifest))
	_files = make([]File, 0, len(_manifest))
	for _, name := range _manifest {
		bs, err := _filesFS.ReadFile("files/" + name)
		must.NotErrorf(err, "bundle manifest names missing file %q", name)
		_files = append(_files, File{Name: name, Text: string(bs)})
		_texts[name] = string(bs)
	}
}

// Files returns all bundled files in manifest order.
// The returned slice must not be modified.
func Files() []File { return _files }

// Lookup returns the raw text of the named file.
func Lookup(name string) (text string, ok bool) {
	text, ok = _texts[name]
	return text, ok
}
