package domain

import (
	"fmt"
	"time"
)

// Axis identifies one of the three orthogonal acceleration components.
type Axis string

const (
	AxisNS Axis = "ns"
	AxisEW Axis = "ew"
	AxisUD Axis = "ud"
)

// Axes lists the components in canonical order.
var Axes = []Axis{AxisNS, AxisEW, AxisUD}

// Valid reports whether a is one of ns, ew, ud.
func (a Axis) Valid() bool {
	switch a {
	case AxisNS, AxisEW, AxisUD:
		return true
	}
	return false
}

// UnmarshalText rejects unknown component tokens at config decode time.
func (a *Axis) UnmarshalText(text []byte) error {
	v := Axis(text)
	if !v.Valid() {
		return fmt.Errorf("unknown axis component %q (want ns, ew or ud)", text)
	}
	*a = v
	return nil
}

// SourceFormat is the file layout of an original seismic-network recording.
// The string values match the snake_case tokens used in configuration files.
type SourceFormat string

const (
	JpNiedKnet  SourceFormat = "jp_nied_knet"
	UsScsnV2    SourceFormat = "us_scsn_v2"
	NzGeonetV1a SourceFormat = "nz_geonet_v1a"
	NzGeonetV2a SourceFormat = "nz_geonet_v2a"
	TwPalertSac SourceFormat = "tw_palert_sac"
	TkAfadAsc   SourceFormat = "tk_afad_asc"
)

// SourceFormats lists every supported source format.
var SourceFormats = []SourceFormat{
	JpNiedKnet, UsScsnV2, NzGeonetV1a, NzGeonetV2a, TwPalertSac, TkAfadAsc,
}

// Valid reports whether f is a known source format.
func (f SourceFormat) Valid() bool {
	switch f {
	case JpNiedKnet, UsScsnV2, NzGeonetV1a, NzGeonetV2a, TwPalertSac, TkAfadAsc:
		return true
	}
	return false
}

// UnmarshalText rejects unknown source format tokens at config decode time.
func (f *SourceFormat) UnmarshalText(text []byte) error {
	v := SourceFormat(text)
	if !v.Valid() {
		return fmt.Errorf("unknown source format %q", text)
	}
	*f = v
	return nil
}

// MultiAxis reports whether a logical recording in this format consists of
// three per-axis files (true) or one file packing all three axes (false).
func (f SourceFormat) MultiAxis() bool {
	switch f {
	case JpNiedKnet, TkAfadAsc:
		return true
	}
	return false
}

// Extensions returns the acceptable file extensions for this format,
// lowercase, without the leading dot.
func (f SourceFormat) Extensions() []string {
	switch f {
	case JpNiedKnet:
		return []string{"ns", "ew", "ud"}
	case UsScsnV2:
		return []string{"v2"}
	case NzGeonetV1a:
		return []string{"v1a"}
	case NzGeonetV2a:
		return []string{"v2a"}
	case TwPalertSac:
		return []string{"sac"}
	case TkAfadAsc:
		return []string{"asc"}
	}
	return nil
}

// Institution returns the network token used in output filenames.
func (f SourceFormat) Institution() string {
	switch f {
	case JpNiedKnet:
		return "knet"
	case UsScsnV2:
		return "scsn"
	case NzGeonetV1a, NzGeonetV2a:
		return "geonet"
	case TwPalertSac:
		return "palert"
	case TkAfadAsc:
		return "afad"
	}
	return "unknown"
}

// TargetFormat is the destination layout produced for analysis tools.
type TargetFormat string

const (
	JpJmaCsv     TargetFormat = "jp_jma_csv"
	JpStera3dTxt TargetFormat = "jp_stera3d_txt"
)

// Valid reports whether t is a known target format.
func (t TargetFormat) Valid() bool {
	return t == JpJmaCsv || t == JpStera3dTxt
}

// UnmarshalText rejects unknown target format tokens at config decode time.
func (t *TargetFormat) UnmarshalText(text []byte) error {
	v := TargetFormat(text)
	if !v.Valid() {
		return fmt.Errorf("unknown target format %q", text)
	}
	*t = v
	return nil
}

// Ext returns the output file extension, without the leading dot.
func (t TargetFormat) Ext() string {
	if t == JpJmaCsv {
		return "csv"
	}
	return "txt"
}

// Metadata carries the format-specific header values renderers need.
type Metadata struct {
	SiteCode  string
	Lat       float64
	Lon       float64
	Unit      string // amplitude unit label, "gal" after normalization
	StartTime time.Time
	Source    SourceFormat
}

// Waveform is the canonical in-memory representation of one logical
// recording: three equal-length axis sample sequences in gal plus metadata.
// It is never mutated after an extractor returns it.
type Waveform struct {
	SamplingRate float64 // Hz
	NS           []float64
	EW           []float64
	UD           []float64
	Meta         Metadata

	// ExtractedAt is stamped from the package clock when the extractor
	// finishes, for run reporting.
	ExtractedAt time.Time
}

// SampleCount returns the per-axis sample count.
func (w *Waveform) SampleCount() int {
	return len(w.NS)
}

// Samples returns the sample sequence for the given axis.
func (w *Waveform) Samples(a Axis) []float64 {
	switch a {
	case AxisNS:
		return w.NS
	case AxisEW:
		return w.EW
	case AxisUD:
		return w.UD
	}
	return nil
}

// SetSamples assigns the sample sequence for the given axis. Used by
// extractors while assembling a waveform; callers must not use it afterwards.
func (w *Waveform) SetSamples(a Axis, s []float64) {
	switch a {
	case AxisNS:
		w.NS = s
	case AxisEW:
		w.EW = s
	case AxisUD:
		w.UD = s
	}
}

// Check verifies the structural invariants: a positive sampling rate and
// three equal-length axis sequences.
func (w *Waveform) Check() error {
	if w.SamplingRate <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %g", w.SamplingRate)
	}
	if len(w.EW) != len(w.NS) || len(w.UD) != len(w.NS) {
		return fmt.Errorf("axis lengths differ: ns=%d ew=%d ud=%d",
			len(w.NS), len(w.EW), len(w.UD))
	}
	return nil
}
