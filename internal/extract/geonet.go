package extract

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/seismoworks/smconv/internal/domain"
)

// GeoNet V1A/V2A files share one layout: a title line naming the volume,
// Site/Start/Sampling header lines, then three "Component: <axis>" blocks.
// V1A amplitudes are uncorrected mm/s² (divided by 10 to reach gal);
// V2A amplitudes are corrected cm/s² and pass through unchanged.
var (
	geonetSiteRe = regexp.MustCompile(`^Site:\s+(\S+)\s+Lat:\s+(-?[0-9.]+)\s+Lon:\s+(-?[0-9.]+)`)
	geonetRateRe = regexp.MustCompile(`^Sampling rate:\s+([0-9.]+)\s+Hz\s+Points:\s+([0-9]+)`)
)

func extractGeonet(path string, format domain.SourceFormat, opts Options) (*domain.Waveform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(path, err)
	}

	volume := "V1A"
	factor := 0.1 // mm/s² to cm/s²
	if format == domain.NzGeonetV2a {
		volume = "V2A"
		factor = 1
	}
	if !opts.NormalizeUnits {
		factor = 1
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "GeoNet strong-motion record") {
		return nil, errf(MalformedHeader, path, "missing GeoNet title line")
	}
	if !strings.Contains(lines[0], volume) {
		return nil, errf(MalformedHeader, path, "title %q does not declare volume %s", strings.TrimSpace(lines[0]), volume)
	}

	meta, rate, npts, body, err := parseGeonetHeader(path, format, lines[1:])
	if err != nil {
		return nil, err
	}

	w := &domain.Waveform{SamplingRate: rate, Meta: meta}
	rest := body
	for _, axis := range domain.Axes {
		var samples []float64
		samples, rest, err = parseGeonetComponent(path, axis, npts, factor, rest)
		if err != nil {
			return nil, err
		}
		w.SetSamples(axis, samples)
	}
	return w, nil
}

func parseGeonetHeader(path string, format domain.SourceFormat, lines []string) (domain.Metadata, float64, int, []string, error) {
	meta := domain.Metadata{Unit: "gal", Source: format}
	var rate float64
	var npts int

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "Site:"):
			m := geonetSiteRe.FindStringSubmatch(line)
			if m == nil {
				return meta, 0, 0, nil, errf(MalformedHeader, path, "unparseable Site line %q", line)
			}
			meta.SiteCode = m[1]
			var err error
			if meta.Lat, err = strconv.ParseFloat(m[2], 64); err != nil {
				return meta, 0, 0, nil, errf(InvalidNumericField, path, "site latitude %q", m[2])
			}
			if meta.Lon, err = strconv.ParseFloat(m[3], 64); err != nil {
				return meta, 0, 0, nil, errf(InvalidNumericField, path, "site longitude %q", m[3])
			}
		case strings.HasPrefix(line, "Start:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "Start:"))
			start, err := time.Parse("2006-01-02 15:04:05", value)
			if err != nil {
				return meta, 0, 0, nil, errf(MalformedHeader, path, "Start %q", value)
			}
			meta.StartTime = start
		case strings.HasPrefix(line, "Sampling rate:"):
			m := geonetRateRe.FindStringSubmatch(line)
			if m == nil {
				return meta, 0, 0, nil, errf(MalformedHeader, path, "unparseable sampling line %q", line)
			}
			var err error
			if rate, err = strconv.ParseFloat(m[1], 64); err != nil || rate <= 0 {
				return meta, 0, 0, nil, errf(InvalidNumericField, path, "sampling rate %q", m[1])
			}
			if npts, err = strconv.Atoi(m[2]); err != nil || npts <= 0 {
				return meta, 0, 0, nil, errf(InvalidNumericField, path, "point count %q", m[2])
			}
		case strings.HasPrefix(line, "Component:"):
			if meta.SiteCode == "" || meta.StartTime.IsZero() || rate == 0 {
				return meta, 0, 0, nil, errf(MalformedHeader, path, "component block before Site/Start/Sampling lines")
			}
			return meta, rate, npts, lines[i:], nil
		}
	}
	return meta, 0, 0, nil, errf(UnexpectedEOF, path, "no component blocks found")
}

func parseGeonetComponent(path string, want domain.Axis, npts int, factor float64, lines []string) ([]float64, []string, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, nil, errf(UnexpectedEOF, path, "missing component block for %s", want)
	}

	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(lines[0], "Component:")))
	if !strings.HasPrefix(lines[0], "Component:") || domain.Axis(name) != want {
		return nil, nil, errf(MalformedHeader, path, "expected component %s, found %q", want, strings.TrimSpace(lines[0]))
	}

	samples := make([]float64, 0, npts)
	i := 1
	for ; i < len(lines) && len(samples) < npts; i++ {
		if strings.HasPrefix(lines[i], "Component:") {
			break
		}
		for _, field := range strings.Fields(lines[i]) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errf(InvalidNumericField, path, "component %s sample %q", want, field)
			}
			samples = append(samples, v*factor)
		}
	}
	if len(samples) != npts {
		return nil, nil, errf(UnexpectedEOF, path, "component %s declares %d points, found %d", want, npts, len(samples))
	}
	return samples, lines[i:], nil
}
