// docsite generates a documentation website
// from a directory of Markdown guides,
// or serves it locally during development.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/chroma/v2/styles"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/errdefer"
	"go.wayfind.dev/docsite/internal/highlight"
	"go.wayfind.dev/docsite/internal/html"
	"go.wayfind.dev/docsite/internal/pagefind"
)

var _version = "dev"

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("docsite: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return err
	}
	defer errdefer.Close(&err, closerFunc(closeDebug))

	var debugLog *log.Logger
	if opts.Debug.Bool() {
		debugLog = log.New(debugw, "", 0)
	}

	style := highlight.PlainStyle
	if opts.Style != "" {
		style = styles.Get(opts.Style)
		if style == styles.Fallback && opts.Style != "fallback" {
			return fmt.Errorf("unknown highlight style %q", opts.Style)
		}
	}
	highlighter := &highlight.Highlighter{
		Style:      style,
		UseClasses: !opts.Embed,
	}

	loader := &content.Loader{
		Parser:   &content.Parser{Highlighter: highlighter},
		Exclude:  globStrings(opts.Exclude),
		DebugLog: debugLog,
	}

	renderer := &html.Renderer{
		Home:        opts.Home,
		Embedded:    opts.Embed,
		LiveReload:  opts.Serve != "" && opts.Watch,
		Highlighter: highlighter,
	}

	if opts.Serve != "" {
		return cmd.serve(opts, loader, renderer)
	}

	gen := Generator{
		Log:      cmd.log,
		Loader:   loader,
		Renderer: renderer,
		OutDir:   opts.OutputDir,
	}
	if opts.Pagefind {
		gen.SearchIndexer = &pagefind.CLI{
			Pagefind: opts.PagefindExe,
			Log:      debugLog,
		}
	}

	return gen.Generate(os.DirFS(opts.DocsDir))
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
