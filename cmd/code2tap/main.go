// Package main provides the code2tap CLI. It takes a ZX Spectrum machine code
// binary (and optionally a screen image) and writes a .tap file with a BASIC
// loader in front of it, so the user only needs to type LOAD "".
//
// Modes:
//   - build (default): code2tap prg_name -code f -start a -exec b [-screen s] [-o out]
//   - list:            code2tap -list file.tap
//   - diff:            code2tap prg_name ... -diff old.tap
//
// Settings can also come from a code2tap.toml project file; flags win.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"code2tap/internal/build"
	"code2tap/internal/config"
	"code2tap/internal/diff"
	"code2tap/internal/dump"
	"code2tap/internal/logs"
)

const version = "1.2.0"

// Config holds the parsed command line.
type Config struct {
	name       string
	code       string
	screen     string
	output     string
	start      config.Address
	exec       config.Address
	configPath string
	listPath   string
	diffPath   string
	verbose    bool
	quiet      bool
	version    bool
}

func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("code2tap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.code, "code", "", "file containing the machine code binary")
	fs.StringVar(&cfg.screen, "screen", "", "file containing the screen data (6912 bytes)")
	fs.StringVar(&cfg.output, "o", "", "output tap file (default <prg_name>.tap)")
	fs.Var(&cfg.start, "start", "load address of the machine code (decimal, 0x.. or $..)")
	fs.Var(&cfg.exec, "exec", "execution start address of the machine code")
	fs.StringVar(&cfg.configPath, "config", "", "project file (default ./"+config.FileName+" if present)")
	fs.StringVar(&cfg.listPath, "list", "", "print the blocks and loader of an existing tap file")
	fs.StringVar(&cfg.diffPath, "diff", "", "compare an existing tap file with the one that would be built")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.BoolVar(&cfg.quiet, "q", false, "only log errors")
	fs.BoolVar(&cfg.version, "version", false, "print version and exit")
	return fs
}

// parseFlags accepts the program name anywhere among the flags.
func parseFlags(args []string) (Config, error) {
	var cfg Config
	fs := newFlagSet(&cfg)
	for {
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
		if fs.NArg() == 0 {
			break
		}
		if cfg.name != "" {
			return cfg, fmt.Errorf("two program names given '%s'", fs.Arg(0))
		}
		cfg.name = fs.Arg(0)
		args = fs.Args()[1:]
	}
	if cfg.verbose && cfg.quiet {
		return cfg, errors.New("-v and -q are mutually exclusive")
	}
	return cfg, nil
}

func selectMode(cfg Config) (string, error) {
	switch {
	case cfg.version:
		return "version", nil
	case cfg.listPath != "" && cfg.diffPath != "":
		return "", errors.New("-list and -diff are mutually exclusive")
	case cfg.listPath != "":
		return "list", nil
	case cfg.diffPath != "":
		return "diff", nil
	default:
		return "build", nil
	}
}

// options merges the project file (if any) with the command line.
func options(cfg Config) (config.Options, error) {
	cli := config.Options{
		Name:   cfg.name,
		Code:   cfg.code,
		Screen: cfg.screen,
		Output: cfg.output,
		Start:  cfg.start,
		Exec:   cfg.exec,
	}
	path := cfg.configPath
	if path == "" {
		path = config.FindDefault(".")
	}
	if path == "" {
		return cli, nil
	}
	f, err := config.Load(path)
	if err != nil {
		return config.Options{}, err
	}
	return config.Merge(f.Options(), cli), nil
}

func usage(w io.Writer) {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "code2tap (v%s)\n", version)
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  %s prg_name -code code_file -start addr1 -exec addr2 [-screen screen_file] [-o tap_file]\n", exe)
	fmt.Fprintf(w, "  %s -list tap_file\n", exe)
	fmt.Fprintf(w, "  %s prg_name ... -diff tap_file\n", exe)
	fmt.Fprintln(w, " prg_name: the name of the program, shown while loading.")
	fmt.Fprintln(w, "\nFlags:")
	var cfg Config
	fs := newFlagSet(&cfg)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		usage(stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		fmt.Fprintln(stderr)
		usage(stderr)
		return 2
	}
	mode, err := selectMode(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}
	if mode == "version" {
		fmt.Fprintf(stdout, "code2tap %s\n", version)
		return 0
	}
	if mode == "list" {
		return runList(cfg, stdout, stderr)
	}

	opts, err := options(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	logger, err := logs.New(stderr, logs.Level(cfg.verbose, cfg.quiet, opts.LogLevel))
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}
	params, err := opts.Params()
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		fmt.Fprintln(stderr)
		usage(stderr)
		return 2
	}
	logger.WithFields(log.Fields{
		"name":  params.ProgramName,
		"code":  params.CodeFile,
		"start": params.LoadAddress,
		"exec":  params.ExecAddress,
	}).Debug("parameters")

	if mode == "diff" {
		return runDiff(cfg.diffPath, params, logger, stdout, stderr)
	}

	res, err := build.Run(ctx, logger, params)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote tap %s (blocks=%d, bytes=%d, loader=%d, code=%d, screen=%v)\n",
		res.Output, res.Blocks, res.Size, res.ListingSize, res.CodeSize, res.Screen)
	return 0
}

func runList(cfg Config, stdout, stderr io.Writer) int {
	f, err := os.Open(cfg.listPath)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	defer f.Close()
	out, err := dump.Read(f)
	fmt.Fprint(stdout, out)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	return 0
}

func runDiff(oldPath string, params build.Params, logger log.FieldLogger, stdout, stderr io.Writer) int {
	old, err := os.ReadFile(oldPath)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	oldDump, err := dump.Read(bytes.NewReader(old))
	if err != nil {
		logger.WithError(err).Warnf("%s is damaged; comparing readable blocks", oldPath)
	}

	c, err := build.Container(params, logger)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	var built bytes.Buffer
	if _, err := c.WriteTo(&built); err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	newDump, err := dump.Read(&built)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}

	body, _, err := diff.Unified(oldPath, params.OutputPath()+" (built)", oldDump, newDump, diff.Options{})
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	if body == "" {
		fmt.Fprintf(stdout, "No differences with %s\n", oldPath)
		return 0
	}
	fmt.Fprint(stdout, body)
	return 0
}
