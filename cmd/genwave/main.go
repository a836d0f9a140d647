// Command genwave writes synthetic recordings in every supported source
// format plus a conversion configuration that references them, for local
// smconv runs and demos.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/seismoworks/smconv/internal/fixture"
)

func main() {
	dir := flag.String("dir", "testdata", "directory to write fixtures into")
	n := flag.Int("samples", 2000, "samples per axis")
	flag.Parse()

	if err := generate(*dir, *n); err != nil {
		fmt.Fprintln(os.Stderr, "genwave:", err)
		os.Exit(1)
	}
}

func generate(dir string, n int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	start := time.Date(2024, 3, 11, 14, 46, 30, 0, time.UTC)
	st := fixture.Station{Code: "DEMO1", Lat: 38.2972, Lon: 142.3720, Start: start}

	files := map[string][]byte{}

	counts := make([]int, n)
	for i, s := range fixture.Sine(n, 500000) {
		counts[i] = int(s)
	}
	files["demo.ns"] = fixture.Knet(st, 100, 3920, 8388608, counts)
	files["demo.ew"] = fixture.Knet(st, 100, 3920, 8388608, counts)
	files["demo.ud"] = fixture.Knet(st, 100, 3920, 8388608, counts)

	wave := fixture.Sine(n, 120)
	files["demo-ns.asc"] = fixture.Afad(st, 0.01, wave)
	files["demo-ew.asc"] = fixture.Afad(st, 0.01, wave)
	files["demo-ud.asc"] = fixture.Afad(st, 0.01, wave)

	files["demo.v2"] = fixture.Scsn(st, 0.01, wave, wave, wave)
	files["demo.v1a"] = fixture.Geonet(st, "V1A", 100, fixture.Sine(n, 1200), fixture.Sine(n, 1200), fixture.Sine(n, 600))
	files["demo.v2a"] = fixture.Geonet(st, "V2A", 100, wave, wave, wave)

	f32 := make([]float32, n)
	for i, s := range wave {
		f32[i] = float32(s)
	}
	files["demo.sac"] = fixture.Sac(st, 0.01, 1.0, f32, f32, f32)

	files["conversions.toml"] = []byte(sampleConfig(dir))

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
		fmt.Println("wrote", filepath.Join(dir, name))
	}
	return nil
}

func sampleConfig(dir string) string {
	return fmt.Sprintf(`[global.config]
name_format = "yyyymmdd-hhmmss-sn-n"
acc_calculate = false
unit_conversion = true

[[conversions]]
name = "knet-demo"
from = "jp_nied_knet"
to = "jp_jma_csv"
[[conversions.groups]]
files = [
  { path = %[1]q, component = "ns", g_key = 1 },
  { path = %[2]q, component = "ew", g_key = 1 },
  { path = %[3]q, component = "ud", g_key = 1 },
]

[[conversions]]
name = "scsn-demo"
from = "us_scsn_v2"
to = "jp_stera3d_txt"
[[conversions.groups]]
files = [{ path = %[4]q }]
`,
		filepath.Join(dir, "demo.ns"),
		filepath.Join(dir, "demo.ew"),
		filepath.Join(dir, "demo.ud"),
		filepath.Join(dir, "demo.v2"),
	)
}
