// Package config loads CLI defaults from a project file.
//
// The file is JSON with comments and trailing commas allowed:
//
//	{
//	  // treat unknown keys as errors
//	  "halt_on_unknown": true,
//	  "max_warnings": 0,
//	  "format": "json",
//	  "defs": "params/md.cue",
//	}
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".mdp.json"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
)

// Config holds the resolved CLI defaults.
type Config struct {
	HaltOnUnknown bool
	MaxWarnings   int    // -1 disables the limit
	Format        string // "text" or "json"
	Defs          string // Definitions file; relative paths resolve against the config file

	// Source is the config file that was loaded, empty when none was.
	Source string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		MaxWarnings: -1,
		Format:      "text",
	}
}

// fileConfig is the serialized form. Pointers tell "absent" from "zero".
type fileConfig struct {
	HaltOnUnknown *bool   `json:"halt_on_unknown"`
	MaxWarnings   *int    `json:"max_warnings"`
	Format        *string `json:"format"`
	Defs          *string `json:"defs"`
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string // If empty, os.Getwd() is used
	ConfigPath string // --config flag value; the file must exist when set
}

// Load returns the defaults overlaid with the project config file.
//
// With ConfigPath set, that file is read and must exist. Otherwise
// FileName in WorkDir is read if present. Flags are applied by the caller
// on top of the result.
func Load(in LoadInput) (Config, error) {
	workDir := in.WorkDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	path := filepath.Join(workDir, FileName)
	mustExist := false
	if in.ConfigPath != "" {
		path = in.ConfigPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		mustExist = true
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, in.ConfigPath)
		}
	}

	cfg := Default()
	fc, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}
	if !loaded {
		return cfg, nil
	}

	cfg = merge(cfg, fc, filepath.Dir(path))
	cfg.Source = path
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return cfg, nil
}

func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	fc, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return fc, true, nil
}

func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return fc, nil
}

func merge(base Config, fc fileConfig, dir string) Config {
	if fc.HaltOnUnknown != nil {
		base.HaltOnUnknown = *fc.HaltOnUnknown
	}
	if fc.MaxWarnings != nil {
		base.MaxWarnings = *fc.MaxWarnings
	}
	if fc.Format != nil {
		base.Format = *fc.Format
	}
	if fc.Defs != nil && *fc.Defs != "" {
		base.Defs = *fc.Defs
		if !filepath.IsAbs(base.Defs) {
			base.Defs = filepath.Join(dir, base.Defs)
		}
	}
	return base
}

func validate(cfg Config) error {
	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be \"text\" or \"json\", got %q", cfg.Format)
	}
	if cfg.MaxWarnings < -1 {
		return fmt.Errorf("max_warnings must be -1 or more, got %d", cfg.MaxWarnings)
	}
	return nil
}
