package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("usage error")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	logLevel  string
	logFormat string
	verbose   bool
}

// engineFlags holds the render engine flags of render and serve.
type engineFlags struct {
	browser string
	timeout string
}

type tokensFlags struct {
	common commonFlags
	json   bool
}

type renderFlags struct {
	common     commonFlags
	engine     engineFlags
	output     string
	format     string
	set        []string
	valuesFile string
}

type serveFlags struct {
	common    commonFlags
	engine    engineFlags
	addr      string
	templates string
}

type doctorFlags struct {
	common commonFlags
	json   bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console or json")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
}

func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.browser, "browser", "", "Chrome executable")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF conversion timeout (e.g. 30s, 2m)")
}

func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parse runs fs.Parse and wraps failures with ErrUsage. flag.ErrHelp is
// returned as is.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func parseTokensFlags(args []string, stderr io.Writer) (*tokensFlags, []string, error) {
	f := &tokensFlags{}
	fs := newFlagSet("tokens", stderr, printTokensUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print a JSON array")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", stderr, printRenderUsage)
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringVarP(&f.format, "format", "f", "", "output format: docx (native) or pdf")
	fs.StringArrayVarP(&f.set, "set", "s", nil, "placeholder value as key=value (repeatable)")
	fs.StringVar(&f.valuesFile, "values", "", "JSON file with placeholder values")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr, printServeUsage)
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address")
	fs.StringVar(&f.templates, "templates", "", "templates directory")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", stderr, printDoctorUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "JSON output")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
