package domain

import "fmt"

// OutputFilename derives the converted file's name from the waveform
// metadata and target format: {yyyymmdd}-{hhmmss}-{station}-{institution}.{ext}.
// Example: "20240101-161018-ISK005-knet.csv".
func OutputFilename(w *Waveform, target TargetFormat) string {
	return fmt.Sprintf("%s-%s-%s.%s",
		w.Meta.StartTime.Format("20060102-150405"),
		w.Meta.SiteCode,
		w.Meta.Source.Institution(),
		target.Ext(),
	)
}
