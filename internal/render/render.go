// Package render formats canonical waveforms into the supported output
// layouts and writes them under the output directory using the filename
// policy from the domain package.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seismoworks/smconv/internal/domain"
)

// Render produces the output file content for a waveform in the given
// target format.
func Render(w *domain.Waveform, target domain.TargetFormat) ([]byte, error) {
	switch target {
	case domain.JpJmaCsv:
		return jmaCSV(w), nil
	case domain.JpStera3dTxt:
		return stera3dTxt(w), nil
	}
	return nil, fmt.Errorf("unsupported target format %q", target)
}

// WriteFile renders the waveform and writes it into outDir, creating the
// directory if needed. Returns the written file's path.
func WriteFile(w *domain.Waveform, target domain.TargetFormat, outDir string) (string, error) {
	content, err := Render(w, target)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, domain.OutputFilename(w, target))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// jmaCSV lays out the JMA seismic-intensity CSV: metadata header rows,
// a column header, then one NS,EW,UD row per sample.
func jmaCSV(w *domain.Waveform) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "SITE CODE,%s\n", w.Meta.SiteCode)
	fmt.Fprintf(&b, "LAT.,%.4f\n", w.Meta.Lat)
	fmt.Fprintf(&b, "LONG.,%.4f\n", w.Meta.Lon)
	fmt.Fprintf(&b, "SAMPLING RATE(Hz),%g\n", w.SamplingRate)
	fmt.Fprintf(&b, "UNIT,%s\n", w.Meta.Unit)
	fmt.Fprintf(&b, "INITIAL TIME,%s\n", w.Meta.StartTime.Format("2006/01/02 15:04:05"))
	b.WriteString("NS,EW,UD\n")
	for i := 0; i < w.SampleCount(); i++ {
		fmt.Fprintf(&b, "%.6f,%.6f,%.6f\n", w.NS[i], w.EW[i], w.UD[i])
	}
	return []byte(b.String())
}

// stera3dTxt lays out the STERA-3D wave input: a count/interval line, then
// one "ns ew ud" row per sample.
func stera3dTxt(w *domain.Waveform) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %.6f\n", w.SampleCount(), 1/w.SamplingRate)
	for i := 0; i < w.SampleCount(); i++ {
		fmt.Fprintf(&b, "%.6f %.6f %.6f\n", w.NS[i], w.EW[i], w.UD[i])
	}
	return []byte(b.String())
}
