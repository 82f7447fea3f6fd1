// Package site assembles parsed documents into a navigable site
// and serves it during development.
package site

import (
	"slices"
	"sort"

	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/html"
	"go.wayfind.dev/docsite/internal/navtree"
	"go.wayfind.dev/docsite/internal/relative"
)

// Index is an immutable snapshot of the site:
// every document page and section listing, fully assembled
// with breadcrumbs and subpage links.
// Reloads build a fresh Index and swap it in whole.
type Index struct {
	pages    map[string]*html.DocumentInfo
	sections map[string]*html.SectionIndex
	paths    []string // all page and section paths, sorted
}

// BuildIndex assembles an Index from parsed documents.
func BuildIndex(docs []*content.Document) *Index {
	var tree navtree.Root[*content.Document]
	var home *content.Document
	for _, doc := range docs {
		if doc.Path == "" {
			home = doc
			continue
		}
		tree.Set(doc.Path, doc)
	}

	ix := Index{
		pages:    make(map[string]*html.DocumentInfo),
		sections: make(map[string]*html.SectionIndex),
	}

	top := tree.Snapshot()
	for _, t := range top {
		ix.addTree(nil, t)
	}

	// The home page lists the top-level entries.
	subpages := ix.subpages("", top)
	if home != nil {
		ix.pages[""] = &html.DocumentInfo{
			Document: home,
			Subpages: subpages,
		}
	} else {
		ix.sections[""] = &html.SectionIndex{Subpages: subpages}
	}
	ix.paths = append(ix.paths, "")

	sort.Strings(ix.paths)
	return &ix
}

func (ix *Index) addTree(crumbs []html.Breadcrumb, t navtree.Snapshot[*content.Document]) {
	var crumbText string
	if n := len(crumbs); n > 0 {
		crumbText = relative.Path(crumbs[n-1].Path, t.Path)
	} else {
		crumbText = t.Path
	}
	// Clone: sibling subtrees must not share a backing array
	// with the crumbs stored on this page.
	crumbs = append(slices.Clone(crumbs), html.Breadcrumb{Text: crumbText, Path: t.Path})

	for _, child := range t.Children {
		ix.addTree(crumbs, child)
	}

	subpages := ix.subpages(t.Path, t.Children)
	if t.Value != nil {
		ix.pages[t.Path] = &html.DocumentInfo{
			Document:    *t.Value,
			Subpages:    subpages,
			Breadcrumbs: crumbs,
		}
	} else {
		ix.sections[t.Path] = &html.SectionIndex{
			Path:        t.Path,
			Subpages:    subpages,
			Breadcrumbs: crumbs,
		}
	}
	ix.paths = append(ix.paths, t.Path)
}

func (ix *Index) subpages(from string, children []navtree.Snapshot[*content.Document]) []html.Subpage {
	subpages := make([]html.Subpage, 0, len(children))
	for _, child := range children {
		sp := html.Subpage{
			RelativePath: relative.Path(from, child.Path),
			Title:        html.TitleLabel(child.Path),
		}
		if child.Value != nil {
			doc := *child.Value
			if doc.Title != "" {
				sp.Title = doc.Title
			}
			sp.Synopsis = doc.Synopsis
		}
		subpages = append(subpages, sp)
	}
	return subpages
}

// Page returns the assembled document page at the given path.
func (ix *Index) Page(path string) (*html.DocumentInfo, bool) {
	info, ok := ix.pages[path]
	return info, ok
}

// Section returns the section listing at the given path.
func (ix *Index) Section(path string) (*html.SectionIndex, bool) {
	idx, ok := ix.sections[path]
	return idx, ok
}

// Paths returns every page and section path, sorted.
func (ix *Index) Paths() []string {
	return ix.paths
}
