package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
)

func TestGenerateEmitsLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generate(dir, 64))

	cfg, err := config.Load(filepath.Join(dir, "conversions.toml"))
	require.NoError(t, err, "the generated config must load with the converter's own decoder")

	require.Len(t, cfg.Conversions, 2)
	assert.Equal(t, domain.JpNiedKnet, cfg.Conversions[0].From)
	assert.Equal(t, domain.JpJmaCsv, cfg.Conversions[0].To)
	assert.Equal(t, domain.UsScsnV2, cfg.Conversions[1].From)
	assert.Equal(t, domain.JpStera3dTxt, cfg.Conversions[1].To)
	assert.True(t, cfg.Global.Config.UnitConversion)

	assert.Empty(t, config.Validate(cfg), "generated recordings must pass validation as-is")
}
