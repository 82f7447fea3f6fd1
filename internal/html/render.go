// Package html renders documents into HTML pages.
package html

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/highlight"
	"go.wayfind.dev/docsite/internal/must"
	"go.wayfind.dev/docsite/internal/relative"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const _staticDir = "_"

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_documentTmpl = template.Must(
		template.New("document.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS,
				"tmpl/document.html", "tmpl/layout.html", "tmpl/subpages.html"),
	)

	_directoryTmpl = template.Must(
		template.New("directory.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS,
				"tmpl/directory.html", "tmpl/layout.html", "tmpl/subpages.html"),
	)

	_notFoundTmpl = template.Must(
		template.New("notfound.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS,
				"tmpl/notfound.html", "tmpl/layout.html", "tmpl/subpages.html"),
	)
)

// Highlighter renders source code into HTML.
type Highlighter interface {
	Highlight(highlight.Resolution, string) string
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Renderer renders site pages into HTML.
type Renderer struct {
	// Path to the home page of the generated site.
	Home string

	// Whether we're in embedded mode.
	// In this mode, output will only contain the document body
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// LiveReload injects the reload client script into pages.
	// Used by the development server.
	LiveReload bool

	// Highlighter renders demo source files into HTML.
	Highlighter Highlighter
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

// WriteStatic dumps the contents of static/ into the given directory.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, _staticDir)
	static, err := fs.Sub(_staticFS, "static")
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, path)
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o1755)
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}

		// The highlighter's classes belong in the main stylesheet
		// so pages need only one <link>.
		if path == "css/main.css" {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.Highlighter.WriteCSS(buff); err != nil {
				return err
			}
			bs = buff.Bytes()
		}

		return os.WriteFile(outPath, bs, 0o644)
	}))
}

// StaticHandler serves the embedded static assets over HTTP.
// The main stylesheet gets the same highlighter-CSS append
// as WriteStatic, so served and generated pages style alike.
func (r *Renderer) StaticHandler() http.Handler {
	static, err := fs.Sub(_staticFS, "static")
	must.NotErrorf(err, "static assets are embedded")

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.TrimPrefix(req.URL.Path, "/") == "css/main.css" {
			bs, err := fs.ReadFile(static, "css/main.css")
			if err != nil {
				http.NotFound(w, req)
				return
			}

			var buff bytes.Buffer
			buff.Write(bs)
			buff.WriteString("\n")
			if err := r.Highlighter.WriteCSS(&buff); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "text/css; charset=utf-8")
			_, _ = w.Write(buff.Bytes())
			return
		}

		http.FileServer(http.FS(static)).ServeHTTP(w, req)
	})
}

// Breadcrumb holds information about parents of a page
// so that we can leave a trail up for navigation.
type Breadcrumb struct {
	// Text for the crumb.
	Text string

	// Path to the crumb from the root of the output.
	Path string
}

// Subpage is a descendant page of a document or section.
type Subpage struct {
	// RelativePath is the path to the subpage
	// relative to the page listing it.
	RelativePath string

	// Title of the subpage.
	Title string

	// Synopsis is a short description of the subpage.
	Synopsis string
}

// DocumentInfo specifies the document that should be rendered.
type DocumentInfo struct {
	*content.Document

	Subpages    []Subpage
	Breadcrumbs []Breadcrumb
}

// PageTitle is the text for the page's <title>.
func (i *DocumentInfo) PageTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return TitleLabel(i.Path)
}

// RenderDocument renders a single document as a page.
func (r *Renderer) RenderDocument(w io.Writer, info *DocumentInfo) error {
	render := r.render(info.Path)
	return errtrace.Wrap(template.Must(_documentTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), info))
}

// SectionIndex holds information about a listing page
// for a path that has documents below it but none of its own.
type SectionIndex struct {
	// Path to this section.
	Path string

	Subpages    []Subpage
	Breadcrumbs []Breadcrumb
}

// PageTitle is the text for the page's <title>.
func (idx *SectionIndex) PageTitle() string {
	return TitleLabel(idx.Path)
}

// RenderSectionIndex renders the list of pages under a section.
func (r *Renderer) RenderSectionIndex(w io.Writer, idx *SectionIndex) error {
	render := r.render(idx.Path)
	return errtrace.Wrap(template.Must(_directoryTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), idx))
}

// NotFoundInfo describes the not-found fallback page.
type NotFoundInfo struct {
	// Path the visitor asked for, if known.
	Path string
}

// PageTitle is the text for the page's <title>.
func (*NotFoundInfo) PageTitle() string { return "Page not found" }

// RenderNotFound renders the fallback page
// shown when no document matches a URL.
// The page is rendered as if it sat at the site root.
func (r *Renderer) RenderNotFound(w io.Writer, info *NotFoundInfo) error {
	render := r.render("")
	return errtrace.Wrap(template.Must(_notFoundTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), info))
}

func (r *Renderer) render(path string) *render {
	return &render{
		Home:        r.Home,
		Path:        path,
		LiveReload:  r.LiveReload,
		Highlighter: r.Highlighter,
	}
}

type render struct {
	Home string
	Path string

	LiveReload bool

	Highlighter Highlighter
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"docblock":     r.block,
		"static":       r.static,
		"relativePath": r.relativePath,
		"home":         func() string { return r.relativePath(r.Home) },
		"livereload":   func() bool { return r.LiveReload },
	}
}

func (r *render) relativePath(p string) string {
	return relative.Path(r.Path, p)
}

func (r *render) static(p string) string {
	return r.relativePath(path.Join(r.Home, _staticDir, p))
}

// block renders a single document block.
// Prose and code markup was produced at parse time
// from author-controlled content,
// so it's injected without further escaping.
func (r *render) block(b content.Block) template.HTML {
	switch b := b.(type) {
	case *content.ProseBlock:
		return template.HTML(b.HTML)
	case *content.CodeBlock:
		return renderCode(b)
	case *content.DemoBlock:
		return r.renderDemo(b)
	default:
		// Unknown blocks render visibly rather than failing silently.
		return template.HTML("<strong>unrenderable block</strong>")
	}
}

var _caser = cases.Title(language.English)

// TitleLabel derives a human-readable title
// from the last component of a path.
func TitleLabel(p string) string {
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		return "Overview"
	}
	return _caser.String(strings.ReplaceAll(base, "-", " "))
}
