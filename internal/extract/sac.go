package extract

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/seismoworks/smconv/internal/domain"
)

// P-Alert SAC files are binary: the standard 632-byte SAC header (70
// float32 words, 40 int32 words, 192 bytes of character fields, little
// endian) followed by the three packed component traces, NPTS float32
// each, in NS/EW/UD order.
const (
	sacHeaderSize = 632
	sacUndefined  = -12345.0

	sacOffDelta  = 0   // float word 0
	sacOffScale  = 12  // float word 3
	sacOffStla   = 124 // float word 31
	sacOffStlo   = 128 // float word 32
	sacOffNzTime = 280 // int words 0-5: year, jday, hour, min, sec, msec
	sacOffNpts   = 316 // int word 9
	sacOffKstnm  = 440 // first character field, 8 bytes
)

func extractSac(path string, opts Options) (*domain.Waveform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(path, err)
	}
	if len(data) < sacHeaderSize {
		return nil, errf(UnexpectedEOF, path, "file is %d bytes, SAC header needs %d", len(data), sacHeaderSize)
	}

	delta := sacFloat(data, sacOffDelta)
	if delta <= 0 {
		return nil, errf(MalformedHeader, path, "DELTA %g is not a positive sampling interval", delta)
	}
	npts := int(sacInt(data, sacOffNpts))
	if npts <= 0 {
		return nil, errf(MalformedHeader, path, "NPTS %d is not positive", npts)
	}

	scale := float64(sacFloat(data, sacOffScale))
	if scale == sacUndefined || !opts.NormalizeUnits {
		scale = 1
	}

	start, err := sacStartTime(data)
	if err != nil {
		return nil, errf(MalformedHeader, path, "reference time: %v", err)
	}

	want := sacHeaderSize + 3*npts*4
	if len(data) < want {
		return nil, errf(UnexpectedEOF, path, "NPTS %d needs %d bytes of trace data, file has %d", npts, want-sacHeaderSize, len(data)-sacHeaderSize)
	}

	w := &domain.Waveform{
		SamplingRate: 1 / float64(delta),
		Meta: domain.Metadata{
			SiteCode:  sacString(data, sacOffKstnm, 8),
			Lat:       float64(sacFloat(data, sacOffStla)),
			Lon:       float64(sacFloat(data, sacOffStlo)),
			Unit:      "gal",
			StartTime: start,
			Source:    domain.TwPalertSac,
		},
	}
	for i, axis := range domain.Axes {
		offset := sacHeaderSize + i*npts*4
		samples := make([]float64, npts)
		for j := 0; j < npts; j++ {
			samples[j] = float64(sacFloat(data, offset+j*4)) * scale
		}
		w.SetSamples(axis, samples)
	}
	return w, nil
}

func sacFloat(data []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
}

func sacInt(data []byte, offset int) int32 {
	return int32(binary.LittleEndian.Uint32(data[offset:]))
}

func sacString(data []byte, offset, width int) string {
	return strings.TrimSpace(string(data[offset : offset+width]))
}

// sacStartTime assembles the reference time from the NZ* header words.
// NZJDAY is a day-of-year, so the date is built from January 1st.
func sacStartTime(data []byte) (time.Time, error) {
	year := int(sacInt(data, sacOffNzTime))
	jday := int(sacInt(data, sacOffNzTime+4))
	hour := int(sacInt(data, sacOffNzTime+8))
	minute := int(sacInt(data, sacOffNzTime+12))
	sec := int(sacInt(data, sacOffNzTime+16))
	msec := int(sacInt(data, sacOffNzTime+20))
	if msec == int(sacUndefined) {
		// NZMSEC is optional; the undefined sentinel means whole-second precision.
		msec = 0
	}

	if year == int(sacUndefined) || jday < 1 || jday > 366 ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 || sec < 0 || sec > 60 ||
		msec < 0 || msec > 999 {
		return time.Time{}, fmt.Errorf("invalid NZ time fields %d/%d %d:%d:%d.%03d", year, jday, hour, minute, sec, msec)
	}
	t := time.Date(year, time.January, 1, hour, minute, sec, msec*int(time.Millisecond), time.UTC)
	return t.AddDate(0, 0, jday-1), nil
}
