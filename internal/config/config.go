// Package config holds the typed model of a conversion job file, its TOML
// loading, static and filesystem validation, and the grouping of file
// entries into logical recordings.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/seismoworks/smconv/internal/domain"
)

// Config is the root of a parsed conversion job file.
type Config struct {
	Global      Global       `toml:"global"`
	Conversions []Conversion `toml:"conversions"`
}

// Global wraps the [global.config] table.
type Global struct {
	Config GlobalSettings `toml:"config"`
}

// GlobalSettings are the job-wide options.
type GlobalSettings struct {
	// NameFormat selects the output filename policy. Only
	// "yyyymmdd-hhmmss-sn-n" is defined today.
	NameFormat string `toml:"name_format"`
	// AccCalculate enables derived acceleration post-processing (reserved).
	AccCalculate bool `toml:"acc_calculate"`
	// UnitConversion enables amplitude normalization to gal.
	UnitConversion bool `toml:"unit_conversion"`
}

// Conversion describes one named conversion: a source format, a target
// format, and the file groups to convert. Immutable once parsed.
type Conversion struct {
	Name   string              `toml:"name"`
	From   domain.SourceFormat `toml:"from"`
	To     domain.TargetFormat `toml:"to"`
	Groups []Group             `toml:"groups"`
}

// Group is one [[conversions.groups]] table. Its files may belong to
// several logical recordings; Resolve splits them by grouping key.
type Group struct {
	Files []File `toml:"files"`
}

// File is a single source file reference. Component is set only for
// formats that split axes across files. GKey ties files of one logical
// recording together; a nil key makes the file its own recording.
type File struct {
	Path      string       `toml:"path"`
	Component *domain.Axis `toml:"component"`
	GKey      *uint32      `toml:"g_key"`
}

// ParseError wraps a TOML decoding failure so the driver can map it to its
// own exit code, distinct from validation failures.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and decodes a TOML conversion job file. Unknown keys are
// rejected so a typo'd option fails loudly instead of being ignored.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ParseError{
			Path: path,
			Err:  fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")),
		}
	}
	return &cfg, nil
}
