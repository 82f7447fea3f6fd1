package content

import (
	"fmt"

	"braces.dev/errtrace"
)

// Source is a single named source file inside a demo.
type Source struct {
	Name string
	Text string
}

// DemoSpec is a bundle of named source files
// shown together in a demo widget.
type DemoSpec struct {
	// EditorPathname names the source displayed by default.
	// If empty, the first source is displayed.
	EditorPathname string

	// Sources in authored order.
	Sources []Source
}

// Active returns the source file the widget displays:
// the one named by EditorPathname if set,
// otherwise the first source.
//
// Active assumes the spec passed Validate.
func (s *DemoSpec) Active() Source {
	if s.EditorPathname != "" {
		for _, src := range s.Sources {
			if src.Name == s.EditorPathname {
				return src
			}
		}
	}
	return s.Sources[0]
}

// Validate reports whether this spec can produce a widget.
// A spec must have at least one source,
// and EditorPathname, when set, must name one of them.
func (s *DemoSpec) Validate() error {
	if len(s.Sources) == 0 {
		return errtrace.Wrap(fmt.Errorf("%w: no sources", ErrInvalidDemo))
	}

	if s.EditorPathname != "" {
		found := false
		for _, src := range s.Sources {
			if src.Name == s.EditorPathname {
				found = true
				break
			}
		}
		if !found {
			return errtrace.Wrap(fmt.Errorf(
				"%w: editor %q is not one of the demo's sources",
				ErrInvalidDemo, s.EditorPathname))
		}
	}

	return nil
}
