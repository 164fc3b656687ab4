// Package config loads glslgen.toml and TOML environment value files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"glslgen/internal/codegen"
	"glslgen/internal/trace"
)

// FileName is the configuration file looked up from the working directory
// upward.
const FileName = "glslgen.toml"

// Config mirrors glslgen.toml. Path is the file it was loaded from, empty
// for defaults.
type Config struct {
	Translate Translate `toml:"translate"`
	Batch     Batch     `toml:"batch"`
	Trace     Trace     `toml:"trace"`

	Path string `toml:"-"`
}

type Translate struct {
	Style          string `toml:"style"`
	DebugTrap      bool   `toml:"debug_trap"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type Batch struct {
	Jobs     int    `toml:"jobs"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
	OutDir   string `toml:"out_dir"`
}

type Trace struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Translate: Translate{Style: codegen.JavaScript.Name, MaxDiagnostics: 100},
		Trace:     Trace{Level: "off", Format: "auto"},
	}
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest FileName above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), err
	}
	return Load(path)
}

// Load reads path over the defaults. Unknown keys and invalid values are
// errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	// Relative directories are relative to the file.
	base := filepath.Dir(path)
	for _, dir := range []*string{&cfg.Batch.CacheDir, &cfg.Batch.OutDir} {
		if *dir != "" && !filepath.IsAbs(*dir) {
			*dir = filepath.Join(base, *dir)
		}
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := codegen.StyleByName(c.Translate.Style); err != nil {
		return fmt.Errorf("[translate] style: %w", err)
	}
	if c.Translate.MaxDiagnostics < 0 {
		return fmt.Errorf("[translate] max_diagnostics must not be negative")
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch] jobs must not be negative")
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace] level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace] format: %w", err)
	}
	return nil
}

// Style resolves Translate.Style.
func (c Config) Style() *codegen.Style {
	s, err := codegen.StyleByName(c.Translate.Style)
	if err != nil {
		return codegen.JavaScript
	}
	return s
}
