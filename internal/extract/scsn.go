package extract

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/seismoworks/smconv/internal/domain"
)

// SCSN Volume 2 files pack all three components into one ASCII file:
// a title line, STATION and START TIME lines, then one block per channel
// introduced by "CHANNEL: <ns|ew|ud>" and a points declaration like
// " 2400 points of accel data equally spaced at .010 sec".
var (
	scsnStationRe = regexp.MustCompile(`^STATION:\s+(\S+)\s+LAT:\s+(-?[0-9.]+)\s+LON:\s+(-?[0-9.]+)`)
	scsnPointsRe  = regexp.MustCompile(`^\s*([0-9]+) points of accel data equally spaced at\s+([0-9.]+) sec`)
)

func extractScsn(path string, _ Options) (*domain.Waveform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(path, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || !strings.Contains(lines[0], "SCSN") {
		return nil, errf(MalformedHeader, path, "missing SCSN title line")
	}

	meta, body, err := parseScsnPreamble(path, lines[1:])
	if err != nil {
		return nil, err
	}

	w := &domain.Waveform{Meta: meta}
	rest := body
	for _, axis := range domain.Axes {
		var samples []float64
		var dt float64
		samples, dt, rest, err = parseScsnChannel(path, axis, rest)
		if err != nil {
			return nil, err
		}
		rate := 1 / dt
		if w.SamplingRate == 0 {
			w.SamplingRate = rate
		} else if rate != w.SamplingRate {
			return nil, errf(InconsistentAxes, path,
				"channel %s sampling rate %g Hz differs from %g Hz", axis, rate, w.SamplingRate)
		}
		w.SetSamples(axis, samples)
	}
	return w, nil
}

// parseScsnPreamble consumes the STATION and START TIME lines and returns
// the remaining lines.
func parseScsnPreamble(path string, lines []string) (domain.Metadata, []string, error) {
	var meta domain.Metadata
	meta.Unit = "gal"
	meta.Source = domain.UsScsnV2

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "STATION:"):
			m := scsnStationRe.FindStringSubmatch(line)
			if m == nil {
				return meta, nil, errf(MalformedHeader, path, "unparseable STATION line %q", line)
			}
			meta.SiteCode = m[1]
			var err error
			if meta.Lat, err = strconv.ParseFloat(m[2], 64); err != nil {
				return meta, nil, errf(InvalidNumericField, path, "station latitude %q", m[2])
			}
			if meta.Lon, err = strconv.ParseFloat(m[3], 64); err != nil {
				return meta, nil, errf(InvalidNumericField, path, "station longitude %q", m[3])
			}
		case strings.HasPrefix(line, "START TIME:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "START TIME:"))
			start, err := time.Parse("2006/01/02 15:04:05", value)
			if err != nil {
				return meta, nil, errf(MalformedHeader, path, "START TIME %q", value)
			}
			meta.StartTime = start
		case strings.HasPrefix(line, "CHANNEL:"):
			if meta.SiteCode == "" || meta.StartTime.IsZero() {
				return meta, nil, errf(MalformedHeader, path, "channel block before STATION/START TIME lines")
			}
			return meta, lines[i:], nil
		}
	}
	return meta, nil, errf(UnexpectedEOF, path, "no channel blocks found")
}

// parseScsnChannel consumes one channel block and returns its samples, the
// sampling interval in seconds, and the unconsumed remainder.
func parseScsnChannel(path string, want domain.Axis, lines []string) ([]float64, float64, []string, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, 0, nil, errf(UnexpectedEOF, path, "missing channel block for %s", want)
	}

	channel := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(lines[0], "CHANNEL:")))
	if !strings.HasPrefix(lines[0], "CHANNEL:") || domain.Axis(channel) != want {
		return nil, 0, nil, errf(MalformedHeader, path, "expected channel %s, found %q", want, strings.TrimSpace(lines[0]))
	}
	if len(lines) < 2 {
		return nil, 0, nil, errf(UnexpectedEOF, path, "channel %s has no points declaration", want)
	}

	m := scsnPointsRe.FindStringSubmatch(lines[1])
	if m == nil {
		return nil, 0, nil, errf(MalformedHeader, path, "unparseable points line %q", strings.TrimSpace(lines[1]))
	}
	npts, _ := strconv.Atoi(m[1])
	dt, err := strconv.ParseFloat(m[2], 64)
	if err != nil || dt <= 0 || npts <= 0 {
		return nil, 0, nil, errf(InvalidNumericField, path, "points declaration %q", strings.TrimSpace(lines[1]))
	}

	samples := make([]float64, 0, npts)
	i := 2
	for ; i < len(lines) && len(samples) < npts; i++ {
		if strings.HasPrefix(lines[i], "CHANNEL:") {
			break
		}
		for _, field := range strings.Fields(lines[i]) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, 0, nil, errf(InvalidNumericField, path, "channel %s sample %q", want, field)
			}
			samples = append(samples, v)
		}
	}
	if len(samples) != npts {
		return nil, 0, nil, errf(UnexpectedEOF, path, "channel %s declares %d points, found %d", want, npts, len(samples))
	}
	return samples, dt, lines[i:], nil
}
