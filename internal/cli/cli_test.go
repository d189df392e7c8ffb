package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/showcase"
	"github.com/voxarel/showcase/internal/tour"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLayoutTable(t *testing.T) {
	out, err := execute(t, "layout")
	require.NoError(t, err)
	assert.Contains(t, out, "efficient layout")
	assert.Contains(t, out, "250")
	assert.Contains(t, out, "uniform")

	out, err = execute(t, "layout", "before")
	require.NoError(t, err)
	for _, tier := range []string{"large", "medium", "small"} {
		assert.Contains(t, out, tier)
	}
}

func TestLayoutExport(t *testing.T) {
	out, err := execute(t, "layout", "inefficient", "--format", "json")
	require.NoError(t, err)
	var doc layout.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 200, doc.Count)

	out, err = execute(t, "layout", "feature", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "policy: feature")

	_, err = execute(t, "layout", "random")
	assert.ErrorIs(t, err, layout.ErrUnknownPolicy)
	_, err = execute(t, "layout", "-f", "xml")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare")
	require.NoError(t, err)
	assert.Contains(t, out, "+50 boxes, 25% more capacity")
	assert.Contains(t, out, "AI-optimized")
}

func TestTourPlan(t *testing.T) {
	out, err := execute(t, "tour", "plan", "--policy", "inefficient")
	require.NoError(t, err)
	planned, err := tour.DecodeTour(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, planned.Stops, 4)

	path := filepath.Join(t.TempDir(), "plan.yaml")
	out, err = execute(t, "tour", "plan", "--hold", "2", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	fromFile, err := tour.ReadTour(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, fromFile.Stops[0].Hold)
}

func TestTourInspect(t *testing.T) {
	out, err := execute(t, "tour", "inspect", "container-comparison", "--at", "1, 3.75")
	require.NoError(t, err)
	assert.Contains(t, out, "container-comparison")
	assert.Contains(t, out, "holding")
	assert.Contains(t, out, "transitioning")
	assert.Contains(t, out, "0.500")

	_, err = execute(t, "tour", "inspect", "nope")
	assert.ErrorIs(t, err, tour.ErrUnknownPreset)
	_, err = execute(t, "tour", "inspect", "container-comparison", "--at", "soon")
	assert.Error(t, err)
}

func TestTourPresets(t *testing.T) {
	out, err := execute(t, "tour", "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "container-comparison")
	assert.Contains(t, out, "feature-spotlight")
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	out, err := execute(t, "snapshot", "--width", "64", "--height", "36", "--at", "2", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = execute(t, "snapshot", "--width", "63", "-o", path)
	assert.Error(t, err, "odd width is rejected")
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 640\nheight = 360\npolicy = \"inefficient\"\n"), 0o644))

	c := New(io.Discard, LogInfo)
	c.configPath = path
	cmd := &cobra.Command{Use: "x"}
	bindFlags(cmd, sceneFlags)
	require.NoError(t, cmd.ParseFlags([]string{"--policy", "efficient", "--compare"}))

	cfg, err := c.loadConfig(cmd, sceneFlags)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width, "file over default")
	assert.Equal(t, "efficient", cfg.Policy, "flag over file")
	assert.True(t, cfg.Compare)
	assert.Equal(t, 30, cfg.FPS, "default kept")
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m previewModel, msg tea.Msg) previewModel {
	next, _ := m.Update(msg)
	return next.(previewModel)
}

func TestTourPreview(t *testing.T) {
	tr, err := tour.Preset("container-comparison")
	require.NoError(t, err)
	m, err := newTourPreview(tr, nil)
	require.NoError(t, err)

	start := time.Unix(1000, 0)
	m = send(m, tickMsg(start))
	m = send(m, tickMsg(start.Add(time.Second)))
	assert.InDelta(t, 1, m.ctrl.Elapsed(), 1e-9)
	assert.Contains(t, m.View(), "container-comparison")
	assert.Contains(t, m.View(), "playing")

	m = send(m, key(" "))
	assert.True(t, m.ctrl.ManualOverride())
	assert.True(t, m.stepper.Paused())
	m = send(m, tickMsg(start.Add(2*time.Second)))
	assert.InDelta(t, 1, m.ctrl.Elapsed(), 1e-9, "frozen while manual")
	assert.Contains(t, m.View(), "manual")

	m = send(m, key(" "))
	assert.False(t, m.ctrl.ManualOverride())

	m = send(m, key("r"))
	assert.Zero(t, m.ctrl.Elapsed())

	m = send(m, key("t"))
	assert.True(t, m.stepper.Interacted())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRolePreview(t *testing.T) {
	catalog, err := showcase.LoadCatalog()
	require.NoError(t, err)
	m, err := newRolePreview(catalog, "")
	require.NoError(t, err)
	role := m.roles.Role()

	m = send(m, key("down"))
	st := m.roles.State()
	assert.Equal(t, role.Features[1].ID, st.Selection.Feature)
	assert.True(t, st.Override)

	start := time.Unix(1000, 0)
	m = send(m, tickMsg(start))
	m = send(m, tickMsg(start.Add(20*time.Second)))
	assert.Equal(t, role.Features[1].ID, m.roles.State().Selection.Feature, "user choice sticks")

	m = send(m, key(" "))
	assert.False(t, m.roles.State().Override)

	m = send(m, key("right"))
	assert.NotEqual(t, role.ID, m.roles.Role().ID)
	assert.Contains(t, m.View(), m.roles.Role().Title)

	ids := catalog.IDs()
	last, err := newRolePreview(catalog, ids[len(ids)-1])
	require.NoError(t, err)
	assert.Equal(t, ids[len(ids)-1], last.roles.Role().ID)
	assert.False(t, last.roles.State().Override)
}

func TestLoggerFromContext(t *testing.T) {
	c := New(io.Discard, LogDebug)
	ctx := withLogger(context.Background(), c.Logger)
	assert.Same(t, c.Logger, loggerFromContext(ctx))
	assert.NotNil(t, loggerFromContext(context.Background()))
}
