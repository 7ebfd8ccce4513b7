// Package config loads ircmsg settings.
//
// Sources, lowest priority first: built-in defaults, the nearest
// ircmsg.toml walking up from the working directory, a .env file, then
// IRCMSG_* environment variables. CLI flags are applied on top by the
// caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"ircmsg/internal/validate"
)

const (
	FileName  = "ircmsg.toml"
	EnvPrefix = "IRCMSG_"
)

var (
	parseFormats = []string{"pretty", "json", "yaml", "msgpack", "raw"}
	diagFormats  = []string{"pretty", "short", "json", "sarif"}
	colorModes   = []string{"auto", "on", "off"}
)

type Config struct {
	ParseFormat    string          `toml:"parse_format" env:"PARSE_FORMAT"`
	DiagFormat     string          `toml:"diag_format" env:"DIAG_FORMAT"`
	Color          string          `toml:"color" env:"COLOR"`
	Encoding       string          `toml:"encoding" env:"ENCODING"`
	Jobs           int             `toml:"jobs" env:"JOBS"`
	MaxDiagnostics int             `toml:"max_diagnostics" env:"MAX_DIAGNOSTICS"`
	Extensions     []string        `toml:"extensions" env:"EXTENSIONS" envSeparator:","`
	Limits         validate.Limits `toml:"limits" envPrefix:"LIMITS_"`

	// Path is the ircmsg.toml the values came from, empty if none.
	Path string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ParseFormat:    "pretty",
		DiagFormat:     "pretty",
		Color:          "auto",
		Jobs:           0,
		MaxDiagnostics: 100,
		Extensions:     []string{".log", ".irc", ".txt"},
		Limits:         validate.DefaultLimits(),
	}
}

// Validate checks enumerated fields and ranges.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(parseFormats, c.ParseFormat) {
		errs = append(errs, fmt.Errorf("parse_format: %q is not one of %s", c.ParseFormat, strings.Join(parseFormats, ", ")))
	}
	if !slices.Contains(diagFormats, c.DiagFormat) {
		errs = append(errs, fmt.Errorf("diag_format: %q is not one of %s", c.DiagFormat, strings.Join(diagFormats, ", ")))
	}
	if !slices.Contains(colorModes, c.Color) {
		errs = append(errs, fmt.Errorf("color: %q is not one of %s", c.Color, strings.Join(colorModes, ", ")))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must be >= 0, got %d", c.Jobs))
	}
	if c.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("max_diagnostics: must be >= 0, got %d", c.MaxDiagnostics))
	}
	if c.Limits.MaxLineBytes < 0 || c.Limits.MaxTagBytes < 0 || c.Limits.MaxParams < 0 {
		errs = append(errs, errors.New("limits: values must be >= 0"))
	}
	return errors.Join(errs...)
}

// Find walks up from startDir looking for ircmsg.toml.
func Find(startDir string) (string, bool, error) {
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

// decodeFile overlays the TOML file at path onto cfg. Keys missing from
// the file keep their current values.
func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return nil
}

// LoadOptions control where Load looks.
type LoadOptions struct {
	// StartDir is where the ircmsg.toml search begins; "" means ".".
	StartDir string
	// Path names a config file explicitly and disables the search.
	Path string
	// EnvFile is the dotenv file to read; "" means ".env" in StartDir.
	// A missing file is not an error.
	EnvFile string
	// Environ replaces os.Environ() when non-nil.
	Environ []string
}

// Load assembles the configuration from every source.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		found, ok, err := Find(opts.StartDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	environ, err := environment(opts)
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		if cfg.Path != "" {
			return Config{}, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

// environment merges the process environment with the dotenv file.
// Variables already set in the process win.
func environment(opts LoadOptions) (map[string]string, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	vars := env.ToMap(environ)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = filepath.Join(opts.StartDir, ".env")
	}
	dotenv, err := godotenv.Read(envFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return vars, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", envFile, err)
	}
	for k, v := range dotenv {
		if _, set := vars[k]; !set {
			vars[k] = v
		}
	}
	return vars, nil
}
