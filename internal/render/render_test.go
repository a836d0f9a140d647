package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismoworks/smconv/internal/domain"
	"github.com/seismoworks/smconv/internal/render"
)

func testWaveform() *domain.Waveform {
	return &domain.Waveform{
		SamplingRate: 100,
		NS:           []float64{1.5, -2.25},
		EW:           []float64{0.5, 0.75},
		UD:           []float64{-0.125, 0},
		Meta: domain.Metadata{
			SiteCode:  "ISK005",
			Lat:       34.6578,
			Lon:       135.4321,
			Unit:      "gal",
			StartTime: time.Date(2024, 1, 1, 16, 10, 18, 0, time.UTC),
			Source:    domain.JpNiedKnet,
		},
	}
}

func TestRenderJmaCsv(t *testing.T) {
	content, err := render.Render(testWaveform(), domain.JpJmaCsv)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "SITE CODE,ISK005", lines[0])
	assert.Equal(t, "LAT.,34.6578", lines[1])
	assert.Equal(t, "LONG.,135.4321", lines[2])
	assert.Equal(t, "SAMPLING RATE(Hz),100", lines[3])
	assert.Equal(t, "UNIT,gal", lines[4])
	assert.Equal(t, "INITIAL TIME,2024/01/01 16:10:18", lines[5])
	assert.Equal(t, "NS,EW,UD", lines[6])
	assert.Equal(t, "1.500000,0.500000,-0.125000", lines[7])
	assert.Equal(t, "-2.250000,0.750000,0.000000", lines[8])
}

func TestRenderStera3dTxt(t *testing.T) {
	content, err := render.Render(testWaveform(), domain.JpStera3dTxt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2 0.010000", lines[0])
	assert.Equal(t, "1.500000 0.500000 -0.125000", lines[1])
	assert.Equal(t, "-2.250000 0.750000 0.000000", lines[2])
}

func TestRenderUnknownTarget(t *testing.T) {
	_, err := render.Render(testWaveform(), domain.TargetFormat("yaml"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	t.Run("writes under the output directory with the derived name", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "out")

		path, err := render.WriteFile(testWaveform(), domain.JpJmaCsv, outDir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(outDir, "20240101-161018-ISK005-knet.csv"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "SITE CODE,ISK005\n"))
	})

	t.Run("creation failure surfaces as an error", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := render.WriteFile(testWaveform(), domain.JpJmaCsv, filepath.Join(blocker, "sub"))
		assert.Error(t, err)
	})
}
