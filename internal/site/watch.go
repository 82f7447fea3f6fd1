package site

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches a content directory
// and reports when its Markdown files change.
type Watcher struct {
	// Dir is the content directory to watch.
	Dir string // required

	// Log reports watch errors, if set.
	Log *log.Logger

	// Debounce collapses bursts of filesystem events
	// into a single change notification.
	// Defaults to 100ms.
	Debounce time.Duration
}

// Watch blocks, invoking onChange after every burst of changes
// to Markdown files under the directory,
// until the context is canceled.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() { _ = fw.Close() }()

	// Watch the whole subtree; fsnotify is not recursive.
	err = filepath.WalkDir(w.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return fw.Add(path)
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			// New directories join the watch
			// so files created inside them are seen.
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := fw.Add(ev.Name); err != nil && w.Log != nil {
						w.Log.Printf("watch %v: %v", ev.Name, err)
					}
				}
			}

			if interestingEvent(ev) {
				pending = time.After(debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.Log != nil {
				w.Log.Printf("watch: %v", err)
			}

		case <-pending:
			pending = nil
			onChange()
		}
	}
}

func interestingEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Remove) &&
		!ev.Op.Has(fsnotify.Rename) {
		return false
	}
	return strings.HasSuffix(ev.Name, ".md")
}
