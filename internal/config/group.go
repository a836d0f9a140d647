package config

import "github.com/seismoworks/smconv/internal/domain"

// Recording is one logical recording: the set of files that together hold
// all three axes (three files for per-axis formats, one otherwise).
type Recording struct {
	Files []File
}

// RecordingGroup is the result of resolving a conversion's file entries
// into logical recordings, in deterministic order.
type RecordingGroup struct {
	Format     domain.SourceFormat
	Recordings []Recording
}

// Resolve partitions a conversion's files into logical recordings by
// grouping key. Keys are scoped to the whole conversion, not to the
// individual [[conversions.groups]] table: two files in different groups
// sharing g_key = 5 merge into one recording. Files without a key each
// form their own singleton recording.
//
// Resolve is pure and total; malformed groupings (missing or duplicate
// axes, surplus files) surface as validator violations, never here.
// Recordings appear in insertion order of each key's first file, so
// repeated runs over the same configuration produce identical ordering.
func Resolve(job Conversion) RecordingGroup {
	rg := RecordingGroup{Format: job.From}
	keyed := make(map[uint32]int)

	for _, g := range job.Groups {
		for _, f := range g.Files {
			if f.GKey == nil {
				rg.Recordings = append(rg.Recordings, Recording{Files: []File{f}})
				continue
			}
			idx, ok := keyed[*f.GKey]
			if !ok {
				idx = len(rg.Recordings)
				keyed[*f.GKey] = idx
				rg.Recordings = append(rg.Recordings, Recording{})
			}
			rg.Recordings[idx].Files = append(rg.Recordings[idx].Files, f)
		}
	}
	return rg
}
