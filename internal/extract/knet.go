package extract

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
)

// K-NET ASCII files carry an 18-column key field followed by the value,
// e.g. "Sampling Freq(Hz) 100Hz". The "Memo." line separates the header
// from the raw integer counts.
const knetKeyWidth = 18

// scaleFactorRe matches the K-NET scale declaration, e.g. "3920(gal)/8388608":
// counts are multiplied by numerator/denominator to obtain gal.
var scaleFactorRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\(gal\)/([0-9]+(?:\.[0-9]+)?)$`)

// extractKnet merges the three per-axis K-NET files of one logical
// recording into a canonical waveform.
func extractKnet(rec config.Recording, opts Options) (*domain.Waveform, error) {
	paths, err := axisPaths(rec)
	if err != nil {
		return nil, err
	}

	traces := make(map[domain.Axis]axisTrace, 3)
	for _, axis := range domain.Axes {
		tr, err := parseKnetFile(paths[axis], opts)
		if err != nil {
			return nil, err
		}
		traces[axis] = tr
	}
	return mergeAxes(traces, paths)
}

func parseKnetFile(path string, opts Options) (axisTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return axisTrace{}, ioErr(path, err)
	}

	lines := strings.Split(string(data), "\n")
	header := make(map[string]string)
	dataStart := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "Memo.") {
			dataStart = i + 1
			break
		}
		if len(line) <= knetKeyWidth {
			continue
		}
		key := strings.TrimSpace(line[:knetKeyWidth])
		header[key] = strings.TrimSpace(line[knetKeyWidth:])
	}
	if dataStart < 0 {
		return axisTrace{}, errf(MalformedHeader, path, "no Memo. line terminating the header")
	}

	meta, rate, scale, err := parseKnetHeader(path, header)
	if err != nil {
		return axisTrace{}, err
	}
	if !opts.NormalizeUnits {
		scale = 1
	}

	samples, err := parseKnetCounts(path, lines[dataStart:], scale)
	if err != nil {
		return axisTrace{}, err
	}
	return axisTrace{samples: samples, samplingRate: rate, meta: meta}, nil
}

func parseKnetHeader(path string, header map[string]string) (domain.Metadata, float64, float64, error) {
	var meta domain.Metadata
	for _, key := range []string{"Station Code", "Station Lat.", "Station Long.", "Record Time", "Sampling Freq(Hz)", "Scale Factor"} {
		if _, ok := header[key]; !ok {
			return meta, 0, 0, errf(MalformedHeader, path, "missing header field %q", key)
		}
	}

	lat, err := strconv.ParseFloat(header["Station Lat."], 64)
	if err != nil {
		return meta, 0, 0, errf(InvalidNumericField, path, "Station Lat. %q", header["Station Lat."])
	}
	lon, err := strconv.ParseFloat(header["Station Long."], 64)
	if err != nil {
		return meta, 0, 0, errf(InvalidNumericField, path, "Station Long. %q", header["Station Long."])
	}

	start, err := time.Parse("2006/01/02 15:04:05", header["Record Time"])
	if err != nil {
		return meta, 0, 0, errf(MalformedHeader, path, "Record Time %q", header["Record Time"])
	}

	freqStr := strings.TrimSuffix(header["Sampling Freq(Hz)"], "Hz")
	rate, err := strconv.ParseFloat(freqStr, 64)
	if err != nil || rate <= 0 {
		return meta, 0, 0, errf(InvalidNumericField, path, "Sampling Freq(Hz) %q", header["Sampling Freq(Hz)"])
	}

	m := scaleFactorRe.FindStringSubmatch(header["Scale Factor"])
	if m == nil {
		return meta, 0, 0, errf(InvalidNumericField, path, "Scale Factor %q", header["Scale Factor"])
	}
	num, _ := strconv.ParseFloat(m[1], 64)
	den, _ := strconv.ParseFloat(m[2], 64)
	if den == 0 {
		return meta, 0, 0, errf(InvalidNumericField, path, "Scale Factor %q has zero denominator", header["Scale Factor"])
	}

	meta = domain.Metadata{
		SiteCode:  header["Station Code"],
		Lat:       lat,
		Lon:       lon,
		Unit:      "gal",
		StartTime: start,
		Source:    domain.JpNiedKnet,
	}
	return meta, rate, num / den, nil
}

func parseKnetCounts(path string, lines []string, scale float64) ([]float64, error) {
	var samples []float64
	for _, line := range lines {
		for _, field := range strings.Fields(line) {
			count, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errf(InvalidNumericField, path, "sample value %q", field)
			}
			samples = append(samples, count*scale)
		}
	}
	if len(samples) == 0 {
		return nil, errf(UnexpectedEOF, path, "no sample data after header")
	}
	return samples, nil
}
