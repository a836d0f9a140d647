package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
)

func axisOf(a domain.Axis) *domain.Axis { return &a }
func keyOf(k uint32) *uint32            { return &k }

func TestResolve(t *testing.T) {
	t.Run("keys are scoped to the conversion, not the group table", func(t *testing.T) {
		job := config.Conversion{
			Name: "spread",
			From: domain.JpNiedKnet,
			Groups: []config.Group{
				{Files: []config.File{
					{Path: "a.ns", Component: axisOf(domain.AxisNS), GKey: keyOf(5)},
				}},
				{Files: []config.File{
					{Path: "a.ew", Component: axisOf(domain.AxisEW), GKey: keyOf(5)},
					{Path: "a.ud", Component: axisOf(domain.AxisUD), GKey: keyOf(5)},
				}},
			},
		}

		rg := config.Resolve(job)
		require.Len(t, rg.Recordings, 1)
		assert.Len(t, rg.Recordings[0].Files, 3)
		assert.Equal(t, "a.ns", rg.Recordings[0].Files[0].Path)
		assert.Equal(t, "a.ew", rg.Recordings[0].Files[1].Path)
		assert.Equal(t, "a.ud", rg.Recordings[0].Files[2].Path)
	})

	t.Run("keyless files form singleton recordings", func(t *testing.T) {
		job := config.Conversion{
			From: domain.UsScsnV2,
			Groups: []config.Group{
				{Files: []config.File{
					{Path: "one.v2"},
					{Path: "two.v2"},
				}},
			},
		}

		rg := config.Resolve(job)
		require.Len(t, rg.Recordings, 2)
		assert.Equal(t, "one.v2", rg.Recordings[0].Files[0].Path)
		assert.Equal(t, "two.v2", rg.Recordings[1].Files[0].Path)
	})

	t.Run("recordings keep first-appearance order", func(t *testing.T) {
		job := config.Conversion{
			From: domain.JpNiedKnet,
			Groups: []config.Group{
				{Files: []config.File{
					{Path: "b.ns", Component: axisOf(domain.AxisNS), GKey: keyOf(9)},
					{Path: "a.ns", Component: axisOf(domain.AxisNS), GKey: keyOf(2)},
					{Path: "b.ew", Component: axisOf(domain.AxisEW), GKey: keyOf(9)},
					{Path: "a.ew", Component: axisOf(domain.AxisEW), GKey: keyOf(2)},
					{Path: "b.ud", Component: axisOf(domain.AxisUD), GKey: keyOf(9)},
					{Path: "a.ud", Component: axisOf(domain.AxisUD), GKey: keyOf(2)},
				}},
			},
		}

		rg := config.Resolve(job)
		require.Len(t, rg.Recordings, 2)
		assert.Equal(t, "b.ns", rg.Recordings[0].Files[0].Path)
		assert.Equal(t, "a.ns", rg.Recordings[1].Files[0].Path)
	})

	t.Run("repeated runs resolve identically", func(t *testing.T) {
		job := config.Conversion{
			From: domain.TkAfadAsc,
			Groups: []config.Group{
				{Files: []config.File{
					{Path: "x-ns.asc", Component: axisOf(domain.AxisNS), GKey: keyOf(1)},
					{Path: "y.asc"},
					{Path: "x-ew.asc", Component: axisOf(domain.AxisEW), GKey: keyOf(1)},
					{Path: "x-ud.asc", Component: axisOf(domain.AxisUD), GKey: keyOf(1)},
				}},
			},
		}

		first := config.Resolve(job)
		for i := 0; i < 50; i++ {
			if diff := cmp.Diff(first, config.Resolve(job)); diff != "" {
				t.Fatalf("resolution changed between runs (-first +now):\n%s", diff)
			}
		}
	})

	t.Run("empty conversion resolves to nothing", func(t *testing.T) {
		rg := config.Resolve(config.Conversion{From: domain.UsScsnV2})
		assert.Empty(t, rg.Recordings)
		assert.Equal(t, domain.UsScsnV2, rg.Format)
	})
}
