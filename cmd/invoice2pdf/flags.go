package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	configs  []string
	output   string
	template string
	timeout  time.Duration
	workers  int
	prefix   string
	html     bool
	version  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// parseGenerateFlags parses generate command flags and returns positional args.
// Positional arguments are invoice documents, like repeated --config values.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.Usage = func() {}
	f := &generateFlags{}

	fs.StringArrayVarP(&f.configs, "config", "c", nil, "invoice document name or path (repeatable)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.template, "template", "", "template name or file path")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "page settle timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.prefix, "prefix", "", "prefix for generated invoice numbers")
	fs.BoolVar(&f.html, "html", false, "write rendered HTML instead of PDF")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
