// Package config merges tape build options from a TOML project file and the
// command line, and validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"code2tap/internal/build"
)

// FileName is the project file looked up in the working directory.
const FileName = "code2tap.toml"

// ErrMissingArgument is returned when a required option was not supplied.
var ErrMissingArgument = errors.New("missing required argument")

// Options are the user-facing build settings. Empty strings and unset
// addresses mean "not given".
type Options struct {
	Name     string
	Code     string
	Screen   string
	Output   string
	Start    Address
	Exec     Address
	LogLevel string
}

// File is the layout of code2tap.toml.
type File struct {
	Program ProgramSection `toml:"program"`
	Log     LogSection     `toml:"log"`

	// Dir is the directory containing the file (set at load time).
	Dir string `toml:"-"`
}

// ProgramSection configures the tape.
type ProgramSection struct {
	Name   string  `toml:"name"`
	Code   string  `toml:"code"`
	Screen string  `toml:"screen"`
	Output string  `toml:"output"`
	Start  Address `toml:"start"`
	Exec   Address `toml:"exec"`
}

// LogSection configures logging.
type LogSection struct {
	Level string `toml:"level"`
}

// Load parses the project file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	f.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &f, nil
}

// FindDefault returns the project file in dir, or "" if there is none.
func FindDefault(dir string) string {
	p := filepath.Join(dir, FileName)
	if st, err := os.Stat(p); err == nil && !st.IsDir() {
		return p
	}
	return ""
}

// Options returns the file's settings with paths resolved against Dir.
func (f *File) Options() Options {
	return Options{
		Name:     f.Program.Name,
		Code:     f.resolve(f.Program.Code),
		Screen:   f.resolve(f.Program.Screen),
		Output:   f.resolve(f.Program.Output),
		Start:    f.Program.Start,
		Exec:     f.Program.Exec,
		LogLevel: f.Log.Level,
	}
}

func (f *File) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || f.Dir == "" {
		return p
	}
	return filepath.Join(f.Dir, p)
}

// Merge returns base with every value set in over taking precedence.
func Merge(base, over Options) Options {
	out := base
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&out.Name, over.Name)
	pick(&out.Code, over.Code)
	pick(&out.Screen, over.Screen)
	pick(&out.Output, over.Output)
	pick(&out.LogLevel, over.LogLevel)
	if over.Start.IsSet() {
		out.Start = over.Start
	}
	if over.Exec.IsSet() {
		out.Exec = over.Exec
	}
	return out
}

// Validate reports every missing required option at once.
func (o Options) Validate() error {
	var errs errlist
	if strings.TrimSpace(o.Name) == "" {
		errs.add("no program name given")
	}
	if o.Code == "" {
		errs.add("expected a binary filename (-code)")
	}
	if !o.Start.IsSet() {
		errs.add("no start address given (-start)")
	}
	if !o.Exec.IsSet() {
		errs.add("no execution address given (-exec)")
	}
	return errs.err(ErrMissingArgument)
}

// Params validates o and converts it to build parameters.
func (o Options) Params() (build.Params, error) {
	if err := o.Validate(); err != nil {
		return build.Params{}, err
	}
	start, _ := o.Start.Get()
	exec, _ := o.Exec.Get()
	return build.Params{
		ProgramName: o.Name,
		CodeFile:    o.Code,
		ScreenFile:  o.Screen,
		LoadAddress: start,
		ExecAddress: exec,
		Output:      o.Output,
	}, nil
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err(kind error) error {
	if len(e.msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", kind, strings.Join(e.msgs, "; "))
}
