package highlight

import (
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// _extLanguages maps file extensions, as authored,
// to display-language labels.
// Both tables are built once and never mutated.
var _extLanguages = map[string]string{
	"js":   "JavaScript",
	"jsx":  "JSX",
	"ts":   "TypeScript",
	"tsx":  "TSX",
	"css":  "CSS",
	"html": "HTML",
	"json": "JSON",
	"md":   "Markdown",
	"sh":   "Bash",
	"go":   "Go",
	"yaml": "YAML",
	"yml":  "YAML",
}

// _languageGrammars maps display-language labels
// to Chroma grammar identifiers.
var _languageGrammars = map[string]string{
	"JavaScript": "javascript",
	"JSX":        "javascript",
	"TypeScript": "typescript",
	"TSX":        "typescript",
	"CSS":        "css",
	"HTML":       "html",
	"JSON":       "json",
	"Markdown":   "markdown",
	"Bash":       "bash",
	"Go":         "go",
	"YAML":       "yaml",
}

// Resolution is the outcome of looking up a filename
// in the language tables.
type Resolution struct {
	// Language is the display label for the resolved language,
	// or empty if the extension was not recognized.
	Language string

	lexer chroma.Lexer
}

// Known reports whether the resolution found a configured language.
func (r Resolution) Known() bool { return r.Language != "" }

// Label returns the display language, or "text" if none resolved.
func (r Resolution) Label() string {
	if r.Language == "" {
		return "text"
	}
	return r.Language
}

// Resolve determines the display language and grammar for a filename.
// The extension is the segment after the last '.' in the name;
// names without a '.' have no extension.
func Resolve(filename string) Resolution {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return plainResolution()
	}
	return ResolveExt(filename[idx+1:])
}

// ResolveExt determines the display language and grammar
// for a bare file extension, without the leading dot.
// Extensions are matched case-sensitively, as authored.
func ResolveExt(ext string) Resolution {
	lang, ok := _extLanguages[ext]
	if !ok {
		return plainResolution()
	}

	lexer := lexers.Get(_languageGrammars[lang])
	if lexer == nil {
		// A table entry naming a grammar Chroma doesn't carry
		// still degrades to plain text.
		return Resolution{Language: lang, lexer: _plainLexer}
	}
	return Resolution{Language: lang, lexer: chroma.Coalesce(lexer)}
}

var _plainLexer = lexers.Fallback

func plainResolution() Resolution {
	return Resolution{lexer: _plainLexer}
}
