package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/programs"
	"github.com/timewinder-dev/tshirts/vm"
)

// DefaultMaxSteps bounds RunToHalt when a run file does not say otherwise.
const DefaultMaxSteps = 100000

type Spec struct {
	Machine MachineSpec `toml:"machine"`
	Trace   TraceSpec   `toml:"trace"`
}

type MachineSpec struct {
	Program    string `toml:"program,omitempty"`
	ZeroSupply int    `toml:"zero_supply,omitempty"`
	CacheSize  int    `toml:"cache_size,omitempty"`
	MaxSteps   int    `toml:"max_steps,omitempty"`
}

type TraceSpec struct {
	Enabled bool `toml:"enabled,omitempty"`
}

func parseSpec(f io.Reader) (*Spec, error) {
	var out Spec
	md, err := toml.NewDecoder(f).Decode(&out)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in run file: %v", undecoded)
	}
	if out.Machine.MaxSteps < 0 {
		return nil, fmt.Errorf("max_steps must not be negative, got %d", out.Machine.MaxSteps)
	}
	return &out, nil
}

// LoadSpecFromFile reads a TOML run file. A missing program path defaults
// to the run file's name with a .shirt extension; relative paths resolve
// against the run file's directory.
func LoadSpecFromFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := parseSpec(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Machine.Program == "" {
		base := filepath.Base(path)
		s.Machine.Program = strings.TrimSuffix(base, filepath.Ext(base)) + ".shirt"
	}
	if _, ok := programs.IsSample(s.Machine.Program); !ok && !filepath.IsAbs(s.Machine.Program) {
		s.Machine.Program = filepath.Clean(filepath.Join(filepath.Dir(path), s.Machine.Program))
	}
	s.applyDefaults()
	return s, nil
}

// SpecForProgram returns default settings for running a bare listing or an
// embedded sample.
func SpecForProgram(ref string) *Spec {
	s := &Spec{Machine: MachineSpec{Program: ref}}
	s.applyDefaults()
	return s
}

// LoadSpec accepts a .toml run file, a listing path, or sample:<name>.
func LoadSpec(ref string) (*Spec, error) {
	if _, ok := programs.IsSample(ref); ok {
		return SpecForProgram(ref), nil
	}
	if filepath.Ext(ref) == ".toml" {
		return LoadSpecFromFile(ref)
	}
	return SpecForProgram(ref), nil
}

func (s *Spec) applyDefaults() {
	if s.Machine.ZeroSupply == 0 {
		s.Machine.ZeroSupply = interp.DefaultZeroSupply
	}
	if s.Machine.MaxSteps == 0 {
		s.Machine.MaxSteps = DefaultMaxSteps
	}
}

// LoadProgram reads the listing the spec points at.
func (s *Spec) LoadProgram() (*vm.Program, error) {
	if s.Machine.Program == "" {
		return nil, errors.New("run file names no program")
	}
	if name, ok := programs.IsSample(s.Machine.Program); ok {
		return programs.Load(name)
	}
	return vm.CompilePath(s.Machine.Program)
}

func (s *Spec) BuildExecutor() (*Executor, error) {
	p, err := s.LoadProgram()
	if err != nil {
		return nil, err
	}
	exec := &Executor{
		Program:  p,
		Spec:     s,
		Reporter: &SilentReporter{},
	}
	return exec, nil
}

// HistoryConfig is the controller configuration the spec describes.
func (s *Spec) HistoryConfig(tr history.StepTracer) history.Config {
	cfg := history.Config{
		ZeroSupply: s.Machine.ZeroSupply,
		CacheSize:  s.Machine.CacheSize,
	}
	if s.Trace.Enabled {
		cfg.Tracer = tr
	}
	return cfg
}
