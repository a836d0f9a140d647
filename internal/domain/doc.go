// Package domain models strong-motion accelerometer recordings and their
// format-independent canonical representation.
//
// # Source formats
//
// Recordings arrive in one of six national-network layouts:
//
//	jp_nied_knet   NIED K-NET (Japan). ASCII, fixed header lines followed by
//	               raw integer counts, eight per line. One file per axis;
//	               the file extension names the axis (.ns/.ew/.ud).
//	tk_afad_asc    AFAD (Turkey). ASCII key/value header, one cm/s² sample
//	               per line. One file per axis, axis declared in config.
//	us_scsn_v2     SCSN Volume 2 (US). ASCII, per-channel blocks in a single
//	               file, samples in cm/s².
//	nz_geonet_v1a  GeoNet V1A (New Zealand). Uncorrected, mm/s², three
//	               component blocks in a single file.
//	nz_geonet_v2a  GeoNet V2A (New Zealand). Corrected, cm/s², same block
//	               structure as V1A.
//	tw_palert_sac  P-Alert (Taiwan). Binary SAC header (632 bytes) followed
//	               by the three packed float32 component traces.
//
// # Axis conventions
//
// Every recording carries three orthogonal components: NS (north-south),
// EW (east-west), UD (up-down). Formats either split them across three
// physical files (K-NET, AFAD) or pack all three into one file (the rest).
// A logical recording is the set of files that together hold all three.
//
// # Canonical unit
//
// All extractors normalize amplitudes to gal (cm/s²). Per-format factors:
// K-NET integer counts are multiplied by the scale factor declared in the
// header (e.g. "3920(gal)/8388608"); GeoNet V1A values are divided by 10
// (mm/s² → cm/s²); P-Alert counts are multiplied by the SAC SCALE header
// unless it is the undefined sentinel (-12345.0). SCSN V2, GeoNet V2A and
// AFAD ASC data are already in cm/s².
//
// # Output filename policy
//
// Converted files are named {yyyymmdd}-{hhmmss}-{station}-{institution}.{ext},
// e.g. "20240101-161018-ISK005-knet.csv". Timestamp and station come from
// the recording metadata; the institution token is fixed per source format.
// Downstream tooling keys on this layout, so it must not change.
package domain
