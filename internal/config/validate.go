package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seismoworks/smconv/internal/domain"
)

// ViolationKind classifies a configuration rule failure.
type ViolationKind string

const (
	// DuplicateName: two conversions share a name.
	DuplicateName ViolationKind = "duplicate_name"
	// NoExtension: a file path has no extension at all.
	NoExtension ViolationKind = "no_extension"
	// InvalidExtension: the extension is not acceptable for the source format.
	InvalidExtension ViolationKind = "invalid_extension"
	// PathDoesNotExist: the file path does not exist.
	PathDoesNotExist ViolationKind = "path_does_not_exist"
	// PathIsNotFile: the path exists but is not a regular file.
	PathIsNotFile ViolationKind = "path_is_not_file"
	// MissingAxis: a per-axis recording lacks one of ns/ew/ud.
	MissingAxis ViolationKind = "missing_axis"
	// DuplicateAxis: a per-axis recording declares an axis twice.
	DuplicateAxis ViolationKind = "duplicate_axis"
	// UnexpectedAxis: a single-file format declares an axis in config.
	UnexpectedAxis ViolationKind = "unexpected_axis"
	// SurplusFile: a single-file-format recording groups more than one file.
	SurplusFile ViolationKind = "surplus_file"
)

// Violation is one validation rule failure with enough context to locate
// the offending configuration entry without positional bookkeeping.
type Violation struct {
	Kind      ViolationKind
	Job       string      // conversion name, empty for config-wide rules
	Recording int         // logical recording index within the job, -1 if n/a
	Path      string      // offending file path, if any
	Axis      domain.Axis // offending axis for axis-policy violations
	Expected  string      // e.g. "ns, ew, ud" for InvalidExtension
	Actual    string      // e.g. "txt" for InvalidExtension
}

func (v Violation) String() string {
	prefix := ""
	if v.Job != "" {
		prefix = fmt.Sprintf("conversion %q: ", v.Job)
	}
	switch v.Kind {
	case DuplicateName:
		return fmt.Sprintf("duplicate conversion name %q", v.Job)
	case NoExtension:
		return prefix + fmt.Sprintf("file %q has no extension", v.Path)
	case InvalidExtension:
		return prefix + fmt.Sprintf("file %q has invalid extension %q, expected one of: %s", v.Path, v.Actual, v.Expected)
	case PathDoesNotExist:
		return prefix + fmt.Sprintf("path %q does not exist", v.Path)
	case PathIsNotFile:
		return prefix + fmt.Sprintf("path %q is not a file", v.Path)
	case MissingAxis:
		return prefix + fmt.Sprintf("recording %d is missing axis %s", v.Recording, v.Axis)
	case DuplicateAxis:
		return prefix + fmt.Sprintf("recording %d declares axis %s more than once", v.Recording, v.Axis)
	case UnexpectedAxis:
		return prefix + fmt.Sprintf("file %q declares axis %s, but format %s carries axes inside the file", v.Path, v.Axis, v.Expected)
	case SurplusFile:
		return prefix + fmt.Sprintf("recording %d groups %s files, but format %s takes exactly one file per recording", v.Recording, v.Actual, v.Expected)
	}
	return prefix + string(v.Kind)
}

// Validate checks the configuration against all static and filesystem
// rules. Every rule runs; violations are collected and returned together
// so one run reports every problem. An empty slice means the
// configuration is valid.
func Validate(cfg *Config) []Violation {
	var vs []Violation
	vs = append(vs, checkNames(cfg)...)
	for _, job := range cfg.Conversions {
		vs = append(vs, checkFiles(job)...)
		vs = append(vs, checkAxisPolicy(job)...)
	}
	return vs
}

// checkNames emits one DuplicateName per distinct repeated conversion name,
// regardless of how many times it repeats.
func checkNames(cfg *Config) []Violation {
	seen := make(map[string]int)
	var order []string
	for _, job := range cfg.Conversions {
		if seen[job.Name] == 0 {
			order = append(order, job.Name)
		}
		seen[job.Name]++
	}

	var vs []Violation
	for _, name := range order {
		if seen[name] > 1 {
			vs = append(vs, Violation{Kind: DuplicateName, Job: name, Recording: -1})
		}
	}
	return vs
}

// checkFiles validates extension and path rules for every file of a job.
func checkFiles(job Conversion) []Violation {
	var vs []Violation
	for _, g := range job.Groups {
		for _, f := range g.Files {
			vs = append(vs, checkExtension(job, f)...)
			vs = append(vs, checkPath(job, f)...)
		}
	}
	return vs
}

func checkExtension(job Conversion, f File) []Violation {
	ext := strings.TrimPrefix(filepath.Ext(f.Path), ".")
	if ext == "" {
		return []Violation{{Kind: NoExtension, Job: job.Name, Recording: -1, Path: f.Path}}
	}

	accepted := job.From.Extensions()
	for _, a := range accepted {
		if strings.EqualFold(ext, a) {
			return nil
		}
	}
	return []Violation{{
		Kind:      InvalidExtension,
		Job:       job.Name,
		Recording: -1,
		Path:      f.Path,
		Expected:  strings.Join(accepted, ", "),
		Actual:    strings.ToLower(ext),
	}}
}

func checkPath(job Conversion, f File) []Violation {
	info, err := os.Stat(f.Path)
	if err != nil {
		return []Violation{{Kind: PathDoesNotExist, Job: job.Name, Recording: -1, Path: f.Path}}
	}
	if !info.Mode().IsRegular() {
		return []Violation{{Kind: PathIsNotFile, Job: job.Name, Recording: -1, Path: f.Path}}
	}
	return nil
}

// checkAxisPolicy validates per-recording axis rules after grouping.
// Per-axis formats need each of ns/ew/ud exactly once; single-file formats
// must not declare axes and take exactly one file per recording.
func checkAxisPolicy(job Conversion) []Violation {
	var vs []Violation
	rg := Resolve(job)
	for i, rec := range rg.Recordings {
		if job.From.MultiAxis() {
			vs = append(vs, checkAxisComplete(job, i, rec)...)
		} else {
			vs = append(vs, checkAxisAbsent(job, i, rec)...)
		}
	}
	return vs
}

func checkAxisComplete(job Conversion, idx int, rec Recording) []Violation {
	counts := make(map[domain.Axis]int, 3)
	for _, f := range rec.Files {
		if f.Component != nil {
			counts[*f.Component]++
		}
	}

	var vs []Violation
	for _, axis := range domain.Axes {
		switch {
		case counts[axis] == 0:
			vs = append(vs, Violation{Kind: MissingAxis, Job: job.Name, Recording: idx, Axis: axis})
		case counts[axis] > 1:
			vs = append(vs, Violation{Kind: DuplicateAxis, Job: job.Name, Recording: idx, Axis: axis})
		}
	}
	return vs
}

func checkAxisAbsent(job Conversion, idx int, rec Recording) []Violation {
	var vs []Violation
	for _, f := range rec.Files {
		if f.Component != nil {
			vs = append(vs, Violation{
				Kind:      UnexpectedAxis,
				Job:       job.Name,
				Recording: idx,
				Path:      f.Path,
				Axis:      *f.Component,
				Expected:  string(job.From),
			})
		}
	}
	if len(rec.Files) > 1 {
		vs = append(vs, Violation{
			Kind:      SurplusFile,
			Job:       job.Name,
			Recording: idx,
			Expected:  string(job.From),
			Actual:    fmt.Sprintf("%d", len(rec.Files)),
		})
	}
	return vs
}
