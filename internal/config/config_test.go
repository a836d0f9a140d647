package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversions.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		path := writeConfig(t, `
[global.config]
name_format = "yyyymmdd-hhmmss-sn-n"
acc_calculate = false
unit_conversion = true

[[conversions]]
name = "knet-job"
from = "jp_nied_knet"
to = "jp_jma_csv"
[[conversions.groups]]
files = [
  { path = "a.ns", component = "ns", g_key = 1 },
  { path = "a.ew", component = "ew", g_key = 1 },
  { path = "a.ud", component = "ud", g_key = 1 },
]

[[conversions]]
name = "sac-job"
from = "tw_palert_sac"
to = "jp_stera3d_txt"
[[conversions.groups]]
files = [{ path = "b.sac" }]
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.True(t, cfg.Global.Config.UnitConversion)
		assert.False(t, cfg.Global.Config.AccCalculate)
		require.Len(t, cfg.Conversions, 2)

		knet := cfg.Conversions[0]
		assert.Equal(t, "knet-job", knet.Name)
		assert.Equal(t, domain.JpNiedKnet, knet.From)
		assert.Equal(t, domain.JpJmaCsv, knet.To)
		require.Len(t, knet.Groups, 1)
		require.Len(t, knet.Groups[0].Files, 3)

		f := knet.Groups[0].Files[0]
		assert.Equal(t, "a.ns", f.Path)
		require.NotNil(t, f.Component)
		assert.Equal(t, domain.AxisNS, *f.Component)
		require.NotNil(t, f.GKey)
		assert.Equal(t, uint32(1), *f.GKey)

		sac := cfg.Conversions[1]
		assert.Equal(t, domain.TwPalertSac, sac.From)
		require.Len(t, sac.Groups[0].Files, 1)
		assert.Nil(t, sac.Groups[0].Files[0].Component)
		assert.Nil(t, sac.Groups[0].Files[0].GKey)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := writeConfig(t, `
[global.config]
unit_converion = true
`)
		_, err := config.Load(path)
		require.Error(t, err)

		var perr *config.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Error(), "unit_converion")
	})

	t.Run("unknown format token fails decoding", func(t *testing.T) {
		path := writeConfig(t, `
[[conversions]]
name = "bad"
from = "knet"
to = "jp_jma_csv"
`)
		_, err := config.Load(path)
		var perr *config.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, err.Error(), "unknown source format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		var perr *config.ParseError
		require.ErrorAs(t, err, &perr)
	})
}
