// Package extract parses source-format recording files into canonical
// waveforms. One extractor per source format; all of them are pure
// functions over their input file set.
package extract

import (
	"fmt"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
)

// ErrorKind classifies an extraction failure so operators can tell a bad
// file apart from a bad environment.
type ErrorKind string

const (
	// MalformedHeader: the file's header does not match the format layout.
	MalformedHeader ErrorKind = "malformed_header"
	// UnexpectedEOF: the file ended before the declared sample count.
	UnexpectedEOF ErrorKind = "unexpected_eof"
	// InvalidNumericField: a header or sample field failed numeric parsing.
	InvalidNumericField ErrorKind = "invalid_numeric_field"
	// InconsistentAxes: per-axis files disagree on count or sampling rate.
	InconsistentAxes ErrorKind = "inconsistent_axes"
	// IO: the file could not be read despite passing validation.
	IO ErrorKind = "io"
)

// Error is a structured per-recording extraction failure.
type Error struct {
	Kind   ErrorKind
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func errf(kind ErrorKind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

func ioErr(path string, err error) *Error {
	return &Error{Kind: IO, Path: path, Detail: "read failed", Err: err}
}

// Options tune extraction behavior from global configuration.
type Options struct {
	// NormalizeUnits converts amplitudes to gal using the per-format
	// factor. When false, raw file values are kept as-is.
	NormalizeUnits bool
}

// Recording extracts one logical recording into a canonical waveform,
// dispatching on the source format. The recording's files are assumed to
// have passed validation; physical content that contradicts the format
// layout still fails with a structured *Error.
func Recording(format domain.SourceFormat, rec config.Recording, opts Options) (*domain.Waveform, error) {
	var (
		w   *domain.Waveform
		err error
	)
	switch format {
	case domain.JpNiedKnet:
		w, err = extractKnet(rec, opts)
	case domain.TkAfadAsc:
		w, err = extractAfad(rec, opts)
	case domain.UsScsnV2:
		w, err = extractScsn(singlePath(rec), opts)
	case domain.NzGeonetV1a:
		w, err = extractGeonet(singlePath(rec), domain.NzGeonetV1a, opts)
	case domain.NzGeonetV2a:
		w, err = extractGeonet(singlePath(rec), domain.NzGeonetV2a, opts)
	case domain.TwPalertSac:
		w, err = extractSac(singlePath(rec), opts)
	default:
		return nil, errf(MalformedHeader, "", "unsupported source format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if cerr := w.Check(); cerr != nil {
		return nil, errf(InconsistentAxes, "", "extracted waveform invalid: %v", cerr)
	}
	w.Stamp()
	return w, nil
}

// singlePath returns the sole file path of a single-file recording.
// The validator rejects surplus files before extraction runs.
func singlePath(rec config.Recording) string {
	if len(rec.Files) == 0 {
		return ""
	}
	return rec.Files[0].Path
}

// axisPaths maps each declared axis to its file path for per-axis formats.
func axisPaths(rec config.Recording) (map[domain.Axis]string, error) {
	paths := make(map[domain.Axis]string, 3)
	for _, f := range rec.Files {
		if f.Component == nil {
			continue
		}
		paths[*f.Component] = f.Path
	}
	for _, axis := range domain.Axes {
		if _, ok := paths[axis]; !ok {
			return nil, errf(InconsistentAxes, "", "recording has no file for axis %s", axis)
		}
	}
	return paths, nil
}

// axisTrace is one per-axis file parsed in isolation, before merging.
type axisTrace struct {
	samples      []float64
	samplingRate float64
	meta         domain.Metadata
}

// mergeAxes combines three per-axis traces into one waveform, asserting
// they agree on sample count and sampling rate. Metadata is taken from the
// NS trace; the axis files of one recording share station and start time.
func mergeAxes(traces map[domain.Axis]axisTrace, paths map[domain.Axis]string) (*domain.Waveform, error) {
	ns := traces[domain.AxisNS]
	w := &domain.Waveform{
		SamplingRate: ns.samplingRate,
		Meta:         ns.meta,
	}
	for _, axis := range domain.Axes {
		tr := traces[axis]
		if tr.samplingRate != ns.samplingRate {
			return nil, errf(InconsistentAxes, paths[axis],
				"sampling rate %g Hz differs from %g Hz on ns axis",
				tr.samplingRate, ns.samplingRate)
		}
		if len(tr.samples) != len(ns.samples) {
			return nil, errf(InconsistentAxes, paths[axis],
				"sample count %d differs from %d on ns axis",
				len(tr.samples), len(ns.samples))
		}
		w.SetSamples(axis, tr.samples)
	}
	return w, nil
}
