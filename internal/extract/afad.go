package extract

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
)

// AFAD ASC files are "KEY: value" header lines followed by one cm/s²
// sample per line. One file per axis; the axis comes from configuration.
func extractAfad(rec config.Recording, opts Options) (*domain.Waveform, error) {
	paths, err := axisPaths(rec)
	if err != nil {
		return nil, err
	}

	traces := make(map[domain.Axis]axisTrace, 3)
	for _, axis := range domain.Axes {
		tr, err := parseAfadFile(paths[axis], opts)
		if err != nil {
			return nil, err
		}
		traces[axis] = tr
	}
	return mergeAxes(traces, paths)
}

func parseAfadFile(path string, _ Options) (axisTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return axisTrace{}, ioErr(path, err)
	}

	header := make(map[string]string)
	var samples []float64
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if key, value, ok := strings.Cut(line, ":"); ok && !isNumeric(strings.TrimSpace(key)) {
			header[strings.TrimSpace(key)] = strings.TrimSpace(value)
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return axisTrace{}, errf(InvalidNumericField, path, "sample value %q", line)
		}
		samples = append(samples, v)
	}

	meta, rate, ndata, err := parseAfadHeader(path, header)
	if err != nil {
		return axisTrace{}, err
	}
	if len(samples) == 0 {
		return axisTrace{}, errf(UnexpectedEOF, path, "no sample data after header")
	}
	if len(samples) != ndata {
		return axisTrace{}, errf(UnexpectedEOF, path, "NDATA declares %d samples, file has %d", ndata, len(samples))
	}
	// AFAD amplitudes are already cm/s²; no unit factor applies.
	return axisTrace{samples: samples, samplingRate: rate, meta: meta}, nil
}

func parseAfadHeader(path string, header map[string]string) (domain.Metadata, float64, int, error) {
	var meta domain.Metadata
	for _, key := range []string{"STATION_CODE", "STATION_LATITUDE_DEGREE", "STATION_LONGITUDE_DEGREE", "EVENT_DATE_YYYYMMDD", "EVENT_TIME_HHMMSS", "SAMPLING_INTERVAL_S", "NDATA"} {
		if _, ok := header[key]; !ok {
			return meta, 0, 0, errf(MalformedHeader, path, "missing header field %q", key)
		}
	}

	lat, err := strconv.ParseFloat(header["STATION_LATITUDE_DEGREE"], 64)
	if err != nil {
		return meta, 0, 0, errf(InvalidNumericField, path, "STATION_LATITUDE_DEGREE %q", header["STATION_LATITUDE_DEGREE"])
	}
	lon, err := strconv.ParseFloat(header["STATION_LONGITUDE_DEGREE"], 64)
	if err != nil {
		return meta, 0, 0, errf(InvalidNumericField, path, "STATION_LONGITUDE_DEGREE %q", header["STATION_LONGITUDE_DEGREE"])
	}

	start, err := time.Parse("20060102 150405", header["EVENT_DATE_YYYYMMDD"]+" "+header["EVENT_TIME_HHMMSS"])
	if err != nil {
		return meta, 0, 0, errf(MalformedHeader, path, "event date/time %q %q",
			header["EVENT_DATE_YYYYMMDD"], header["EVENT_TIME_HHMMSS"])
	}

	interval, err := strconv.ParseFloat(header["SAMPLING_INTERVAL_S"], 64)
	if err != nil || interval <= 0 {
		return meta, 0, 0, errf(InvalidNumericField, path, "SAMPLING_INTERVAL_S %q", header["SAMPLING_INTERVAL_S"])
	}

	ndata, err := strconv.Atoi(header["NDATA"])
	if err != nil || ndata <= 0 {
		return meta, 0, 0, errf(InvalidNumericField, path, "NDATA %q", header["NDATA"])
	}

	meta = domain.Metadata{
		SiteCode:  header["STATION_CODE"],
		Lat:       lat,
		Lon:       lon,
		Unit:      "gal",
		StartTime: start,
		Source:    domain.TkAfadAsc,
	}
	return meta, 1 / interval, ndata, nil
}

// isNumeric reports whether s parses as a float, so data lines containing
// a stray colon are not mistaken for header lines.
func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
