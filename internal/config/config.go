// Package config loads and validates the YAML scan configuration that
// drives a generation run.
//
// The document carries four required fields (pathToScan, rmacrosToDefine,
// vmacrosToDefine, fmacrosToDefine) and an optional excludePatterns list.
// A missing file and an invalid document are reported as distinct
// structured errors so the process boundary can exit with distinct codes.
package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/vova-ivanov/cmakegen/internal/errors"
)

// MacroPair is an explicit name/value record for valued and function-like
// macros. The YAML document encodes each pair as a single-entry map; the
// shape is validated here, at parse time, never mid-pipeline.
type MacroPair struct {
	Name  string
	Value string
}

// Config is the validated, immutable scan configuration for one run.
type Config struct {
	// Roots are the directory trees to scan, in document order.
	Roots []string
	// PlainMacros are rendered as -DNAME.
	PlainMacros []string
	// ValuedMacros are rendered as -DNAME=VALUE, in document order.
	ValuedMacros []MacroPair
	// FunctionMacros are rendered as -D"NAME()=VALUE", in document order.
	FunctionMacros []MacroPair
	// ExcludePatterns are doublestar globs matched against the path
	// relative to each root; matches are skipped during the walk.
	ExcludePatterns []string
}

// rawConfig mirrors the YAML document. Pointer-typed fields distinguish
// an absent key (nil) from a present-but-empty list.
type rawConfig struct {
	PathToScan      *[]string            `yaml:"pathToScan"`
	RMacrosToDefine *[]string            `yaml:"rmacrosToDefine"`
	VMacrosToDefine *[]map[string]string `yaml:"vmacrosToDefine"`
	FMacrosToDefine *[]map[string]string `yaml:"fmacrosToDefine"`
	ExcludePatterns []string             `yaml:"excludePatterns"`
}

// Load reads, parses and validates the configuration document at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewConfigNotFound(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigInvalid(path, fmt.Sprintf("config file is not valid, check file structure: %v", err))
	}

	if err := checkRequiredFields(path, &raw); err != nil {
		return nil, err
	}

	valued, err := macroPairs(path, "vmacrosToDefine", *raw.VMacrosToDefine)
	if err != nil {
		return nil, err
	}

	function, err := macroPairs(path, "fmacrosToDefine", *raw.FMacrosToDefine)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Roots:           *raw.PathToScan,
		PlainMacros:     *raw.RMacrosToDefine,
		ValuedMacros:    valued,
		FunctionMacros:  function,
		ExcludePatterns: raw.ExcludePatterns,
	}

	if err := validate(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checkRequiredFields reports the first missing required field, in
// document-contract order.
func checkRequiredFields(path string, raw *rawConfig) error {
	missing := ""
	switch {
	case raw.PathToScan == nil:
		missing = "pathToScan"
	case raw.RMacrosToDefine == nil:
		missing = "rmacrosToDefine"
	case raw.VMacrosToDefine == nil:
		missing = "vmacrosToDefine"
	case raw.FMacrosToDefine == nil:
		missing = "fmacrosToDefine"
	}

	if missing != "" {
		return errors.NewConfigInvalid(path, "config file is not valid, check file structure").WithField(missing)
	}

	return nil
}

// macroPairs converts single-entry maps into explicit MacroPair records,
// rejecting entries that do not contain exactly one key/value pair.
func macroPairs(path, field string, entries []map[string]string) ([]MacroPair, error) {
	pairs := make([]MacroPair, 0, len(entries))
	for i, entry := range entries {
		if len(entry) != 1 {
			return nil, errors.NewConfigInvalid(
				path,
				fmt.Sprintf("macro entry %d must contain exactly one name/value pair, got %d", i, len(entry)),
			).WithField(field)
		}
		for name, value := range entry {
			pairs = append(pairs, MacroPair{Name: name, Value: value})
		}
	}

	return pairs, nil
}

// validate checks configuration values beyond structural presence.
func validate(path string, cfg *Config) error {
	for _, root := range cfg.Roots {
		if root == "" {
			return errors.NewConfigInvalid(path, "empty scan path").WithField("pathToScan")
		}
	}

	for _, name := range cfg.PlainMacros {
		if name == "" {
			return errors.NewConfigInvalid(path, "empty macro name").WithField("rmacrosToDefine")
		}
	}

	for _, pattern := range cfg.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.NewConfigInvalid(
				path,
				fmt.Sprintf("invalid exclude pattern: %s", pattern),
			).WithField("excludePatterns")
		}
	}

	return nil
}
