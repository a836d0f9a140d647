// Package fixture synthesizes source-format recording files with known
// content, for tests and for the genwave command. Layouts mirror what the
// extractors in internal/extract parse.
package fixture

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/seismoworks/smconv/internal/domain"
)

// Station is the synthetic site identity written into fixture headers.
type Station struct {
	Code  string
	Lat   float64
	Lon   float64
	Start time.Time
}

// Knet renders one per-axis K-NET ASCII file holding raw integer counts.
// Extracted amplitudes are counts * scaleNum/scaleDen gal.
func Knet(st Station, rate float64, scaleNum, scaleDen int, counts []int) []byte {
	var b strings.Builder
	line := func(key, value string) {
		fmt.Fprintf(&b, "%-18s%s\n", key, value)
	}
	line("Origin Time", st.Start.Add(-8*time.Second).Format("2006/01/02 15:04:05"))
	line("Station Code", st.Code)
	line("Station Lat.", fmt.Sprintf("%.4f", st.Lat))
	line("Station Long.", fmt.Sprintf("%.4f", st.Lon))
	line("Record Time", st.Start.Format("2006/01/02 15:04:05"))
	line("Sampling Freq(Hz)", fmt.Sprintf("%gHz", rate))
	line("Scale Factor", fmt.Sprintf("%d(gal)/%d", scaleNum, scaleDen))
	b.WriteString("Memo.\n")
	for i, c := range counts {
		fmt.Fprintf(&b, "%9d", c)
		if (i+1)%8 == 0 || i == len(counts)-1 {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

// Afad renders one per-axis AFAD ASC file with cm/s² samples.
func Afad(st Station, interval float64, samples []float64) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "STATION_CODE: %s\n", st.Code)
	fmt.Fprintf(&b, "STATION_LATITUDE_DEGREE: %.4f\n", st.Lat)
	fmt.Fprintf(&b, "STATION_LONGITUDE_DEGREE: %.4f\n", st.Lon)
	fmt.Fprintf(&b, "EVENT_DATE_YYYYMMDD: %s\n", st.Start.Format("20060102"))
	fmt.Fprintf(&b, "EVENT_TIME_HHMMSS: %s\n", st.Start.Format("150405"))
	fmt.Fprintf(&b, "SAMPLING_INTERVAL_S: %.6f\n", interval)
	fmt.Fprintf(&b, "NDATA: %d\n", len(samples))
	fmt.Fprintf(&b, "UNIT: cm/s^2\n\n")
	for _, s := range samples {
		fmt.Fprintf(&b, "%.6f\n", s)
	}
	return []byte(b.String())
}

// Scsn renders a single-file SCSN V2 record with all three channels.
func Scsn(st Station, dt float64, ns, ew, ud []float64) []byte {
	var b strings.Builder
	b.WriteString("SCSN VOLUME 2 CORRECTED ACCELEROGRAM\n")
	fmt.Fprintf(&b, "STATION: %s LAT: %.4f LON: %.4f\n", st.Code, st.Lat, st.Lon)
	fmt.Fprintf(&b, "START TIME: %s\n", st.Start.Format("2006/01/02 15:04:05"))
	writeChannel := func(axis domain.Axis, samples []float64) {
		fmt.Fprintf(&b, "CHANNEL: %s\n", strings.ToUpper(string(axis)))
		fmt.Fprintf(&b, "%d points of accel data equally spaced at %.3f sec, units of cm/sec/sec\n", len(samples), dt)
		writeColumns(&b, samples)
	}
	writeChannel(domain.AxisNS, ns)
	writeChannel(domain.AxisEW, ew)
	writeChannel(domain.AxisUD, ud)
	return []byte(b.String())
}

// Geonet renders a single-file GeoNet record. volume is "V1A" or "V2A";
// samples are written as-is, so pass mm/s² values for V1A fixtures.
func Geonet(st Station, volume string, rate float64, ns, ew, ud []float64) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "GeoNet strong-motion record %s\n", volume)
	fmt.Fprintf(&b, "Site: %s Lat: %.4f Lon: %.4f\n", st.Code, st.Lat, st.Lon)
	fmt.Fprintf(&b, "Start: %s\n", st.Start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Sampling rate: %.2f Hz Points: %d\n", rate, len(ns))
	writeComponent := func(axis domain.Axis, samples []float64) {
		fmt.Fprintf(&b, "Component: %s\n", strings.ToUpper(string(axis)))
		writeColumns(&b, samples)
	}
	writeComponent(domain.AxisNS, ns)
	writeComponent(domain.AxisEW, ew)
	writeComponent(domain.AxisUD, ud)
	return []byte(b.String())
}

// Sac renders a binary P-Alert SAC file: the 632-byte little-endian
// header followed by the three packed float32 traces.
func Sac(st Station, delta, scale float32, ns, ew, ud []float32) []byte {
	header := make([]byte, 632)
	putFloat := func(word int, v float32) {
		binary.LittleEndian.PutUint32(header[word*4:], math.Float32bits(v))
	}
	putInt := func(word int, v int32) {
		binary.LittleEndian.PutUint32(header[word*4:], uint32(v))
	}

	// Fill every numeric word with the SAC undefined sentinel first.
	for w := 0; w < 70; w++ {
		putFloat(w, -12345.0)
	}
	for w := 70; w < 110; w++ {
		putInt(w, -12345)
	}

	putFloat(0, delta)
	putFloat(3, scale)
	putFloat(31, float32(st.Lat))
	putFloat(32, float32(st.Lon))
	putInt(70, int32(st.Start.Year()))
	putInt(71, int32(st.Start.YearDay()))
	putInt(72, int32(st.Start.Hour()))
	putInt(73, int32(st.Start.Minute()))
	putInt(74, int32(st.Start.Second()))
	putInt(75, int32(st.Start.Nanosecond()/1e6))
	putInt(79, int32(len(ns)))
	copy(header[440:448], fmt.Sprintf("%-8s", st.Code))

	out := header
	for _, trace := range [][]float32{ns, ew, ud} {
		for _, v := range trace {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
			out = append(out, buf[:]...)
		}
	}
	return out
}

// Sine returns n samples of a sine wave with the given amplitude, for
// fixture waveforms with recognizable content.
func Sine(n int, amplitude float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*float64(i)/50)
	}
	return samples
}

func writeColumns(b *strings.Builder, samples []float64) {
	for i, s := range samples {
		fmt.Fprintf(b, " %10.4f", s)
		if (i+1)%8 == 0 || i == len(samples)-1 {
			b.WriteByte('\n')
		}
	}
}
