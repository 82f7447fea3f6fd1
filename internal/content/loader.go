package content

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"braces.dev/errtrace"
)

// DocumentParser parses a single Markdown guide into a document.
type DocumentParser interface {
	Parse(path string, src []byte) (*Document, error)
}

var _ DocumentParser = (*Parser)(nil)

// Loader reads a directory of Markdown guides
// and parses each into a document.
type Loader struct {
	// Parser parses individual files.
	Parser DocumentParser // required

	// Exclude holds path.Match patterns.
	// Files whose paths match any of them are skipped.
	Exclude []string

	// DebugLog logs files as they're loaded, if set.
	DebugLog *log.Logger
}

// Load parses every .md file under the given filesystem.
//
// File paths map to URL paths by dropping the extension;
// index.md files map to their directory.
// The result is sorted by path.
func (l *Loader) Load(fsys fs.FS) ([]*Document, error) {
	var docs []*Document
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".md") {
			return err
		}
		if l.excluded(p) {
			if l.DebugLog != nil {
				l.DebugLog.Printf("Skipping %v", p)
			}
			return nil
		}

		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errtrace.Wrap(err)
		}

		urlPath := docPath(p)
		if l.DebugLog != nil {
			l.DebugLog.Printf("Loading %v as %q", p, urlPath)
		}

		doc, err := l.Parser.Parse(urlPath, src)
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("%v: %w", p, err))
		}

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

func (l *Loader) excluded(p string) bool {
	for _, pat := range l.Exclude {
		// Patterns were validated at flag parse time.
		if ok, _ := path.Match(pat, p); ok {
			return true
		}
	}
	return false
}

// docPath maps an on-disk file name to a URL path.
func docPath(p string) string {
	p = strings.TrimSuffix(p, ".md")
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if p == "." {
		return ""
	}
	return p
}
