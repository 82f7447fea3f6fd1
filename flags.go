package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path"

	"github.com/peterbourgon/ff/v3"
	"go.wayfind.dev/docsite/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for docsite.
type params struct {
	version bool
	help    Help

	Debug flagvalue.FileSwitch

	OutputDir string
	Home      string
	Exclude   []glob

	Embed bool
	Style string

	Serve string
	Watch bool

	Pagefind    bool
	PagefindExe string

	DocsDir string
}

// cliParser parses the command line arguments for docsite.
// Every flag may also be supplied as a DOCSITE_* environment variable.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("docsite", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_site", "")
	flag.Var(flagvalue.ListOf(&p.Exclude), "exclude", "")

	// HTML output:
	flag.StringVar(&p.Home, "home", "", "")
	flag.BoolVar(&p.Embed, "embed", false, "")
	flag.StringVar(&p.Style, "style", "", "")

	// Development server:
	flag.StringVar(&p.Serve, "serve", "", "")
	flag.BoolVar(&p.Watch, "watch", false, "")

	// Search:
	flag.BoolVar(&p.Pagefind, "pagefind", false, "")
	flag.StringVar(&p.PagefindExe, "pagefind-exe", "", "")

	// Program-level:
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	if err := ff.Parse(flag, args, ff.WithEnvVarPrefix("DOCSITE")); err != nil {
		// ff wraps flag.ErrHelp; unwrap so callers
		// can distinguish "-h" from real errors.
		if errors.Is(err, errHelp) {
			return nil, errHelp
		}
		fmt.Fprintln(cmd.Stderr, err)
		return nil, errInvalidArguments
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "docsite", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	switch len(args) {
	case 0:
		p.DocsDir = "docs"
	case 1:
		p.DocsDir = args[0]
	default:
		fmt.Fprintln(cmd.Stderr, "Please provide at most one directory.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	if p.Embed && p.Serve != "" {
		fmt.Fprintln(cmd.Stderr, "-embed and -serve are mutually exclusive.")
		return nil, errInvalidArguments
	}

	return p, nil
}

// glob is a path.Match pattern, validated at parse time.
type glob string

var _ flag.Getter = (*glob)(nil)

func (g *glob) Get() any       { return string(*g) }
func (g *glob) String() string { return string(*g) }

func (g *glob) Set(s string) error {
	if _, err := path.Match(s, ""); err != nil {
		return fmt.Errorf("bad pattern %q: %w", s, err)
	}
	*g = glob(s)
	return nil
}

func globStrings(gs []glob) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}
