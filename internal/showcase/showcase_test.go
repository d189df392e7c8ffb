package showcase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	c, err := LoadCatalog()
	require.NoError(t, err)
	m, err := NewModel(c)
	require.NoError(t, err)
	return m
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"field-agent", "warehouse", "branch", "operations", "finance", "rider"}, c.IDs())

	wh, err := c.Role("warehouse")
	require.NoError(t, err)
	assert.Equal(t, "Scan-driven efficiency", wh.Tagline)
	assert.Len(t, wh.Features, 5)
	assert.Equal(t, "#06b6d4", c.Accent(wh.Color))

	rider, err := c.Role("rider")
	require.NoError(t, err)
	assert.Len(t, rider.Features, 4)
	_, pod, err := rider.Feature("pod-capture")
	require.NoError(t, err)
	assert.Equal(t, layout.Packages, pod.Visualization)

	_, err = c.Role("pilot")
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Equal(t, layout.DefaultAccent, c.Accent("magenta"))
}

func TestParseCatalogRejects(t *testing.T) {
	tests := map[string]string{
		"no roles":      "colors: {orange: \"#f97316\"}\nroles: []\n",
		"bad color":     "colors: {orange: \"#f97316\"}\nroles:\n  - id: a\n    color: pink\n    features: [{id: f, visualization: packages}]\n",
		"bad kind":      "colors: {orange: \"#f97316\"}\nroles:\n  - id: a\n    color: orange\n    features: [{id: f, visualization: hologram}]\n",
		"dup feature":   "colors: {orange: \"#f97316\"}\nroles:\n  - id: a\n    color: orange\n    features: [{id: f, visualization: packages}, {id: f, visualization: packages}]\n",
		"unknown field": "colors: {}\nicons: []\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestFeatureTour(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	r, err := c.Role("field-agent")
	require.NoError(t, err)

	tr, err := FeatureTour(r, 5, 1)
	require.NoError(t, err)
	require.Len(t, tr.Stops, 5)
	assert.Equal(t, 30.0, tr.CycleLength())
	assert.Equal(t, "Customer Capture", tr.Stops[0].Annotation.Title)
	assert.InDelta(t, 4, tr.Stops[0].Camera.Z, 1e-6)

	_, err = FeatureTour(r, 0, 1)
	assert.ErrorIs(t, err, tour.ErrInvalidDuration)
}

func TestModelTourDrivesSelection(t *testing.T) {
	m := newModel(t)
	s := m.State()
	assert.Equal(t, Selection{Role: "field-agent", Feature: "customer-capture"}, s.Selection)
	assert.False(t, s.Override)
	assert.Equal(t, layout.DataFlow, s.Kind)
	assert.Equal(t, "#f97316", s.Accent)

	s, err := m.Dispatch(Tick{Dt: 6.5})
	require.NoError(t, err)
	assert.Equal(t, "package-cart", s.Selection.Feature)
	assert.Equal(t, tour.Holding, s.Frame.State.Phase)
	assert.Equal(t, "Package Cart", s.Frame.Annotation.Title)
}

func TestModelUserSelectionWins(t *testing.T) {
	m := newModel(t)
	s, err := m.Dispatch(SelectFeature{ID: "offline-mode"})
	require.NoError(t, err)
	assert.True(t, s.Override)
	assert.Equal(t, layout.OfflineSync, s.Kind)
	assert.Nil(t, s.Frame.Annotation)

	for i := 0; i < 50; i++ {
		s, err = m.Dispatch(Tick{Dt: 1})
		require.NoError(t, err)
		assert.Equal(t, "offline-mode", s.Selection.Feature)
	}
	assert.Equal(t, 0, s.Frame.State.Stop)

	s, err = m.Dispatch(Resume{})
	require.NoError(t, err)
	assert.False(t, s.Override)

	s, err = m.Dispatch(Tick{Dt: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "awb-generation", s.Selection.Feature)
}

func TestModelSelectRoleRestartsTour(t *testing.T) {
	m := newModel(t)
	_, err := m.Dispatch(Tick{Dt: 13})
	require.NoError(t, err)

	s, err := m.Dispatch(SelectRole{ID: "finance"})
	require.NoError(t, err)
	assert.Equal(t, Selection{Role: "finance", Feature: "revenue-analytics"}, s.Selection)
	assert.True(t, s.Override)
	assert.Equal(t, 0, s.Frame.State.Stop)
	assert.Equal(t, "#3b82f6", s.Accent)
	assert.Len(t, m.Tour().Stops, 4)

	_, err = m.Dispatch(Resume{})
	require.NoError(t, err)
	s, err = m.Dispatch(Tick{Dt: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "container-metrics", s.Selection.Feature)
	assert.Equal(t, layout.Containers, s.Kind)
}

func TestModelUnknownIDsKeepState(t *testing.T) {
	m := newModel(t)
	_, err := m.Dispatch(Tick{Dt: 7})
	require.NoError(t, err)
	before := m.State()

	s, err := m.Dispatch(SelectRole{ID: "pilot"})
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Equal(t, before, s)

	s, err = m.Dispatch(SelectFeature{ID: "pod-capture"})
	assert.ErrorIs(t, err, ErrUnknownFeature)
	assert.Equal(t, before, s)
	assert.Equal(t, "field-agent", m.Role().ID)
}
