package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/voxarel/showcase/internal/config"
	"github.com/voxarel/showcase/internal/engine"
	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/showcase"
	"github.com/voxarel/showcase/internal/tour"
)

const previewTick = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(previewTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// previewModel plays a tour in the terminal. In role mode the tour is the
// active role's feature tour and selections go through showcase.Model.
type previewModel struct {
	ctrl    *tour.Controller
	roles   *showcase.Model
	catalog *showcase.Catalog
	stepper *tour.Stepper
	tips    []string
	last    time.Time
	status  string
}

func newTourPreview(t *tour.Tour, tips []string) (previewModel, error) {
	s, err := tour.NewStepper(tour.DefaultAnchors, 3*time.Second)
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{ctrl: tour.NewController(t), stepper: s, tips: tips}, nil
}

func newRolePreview(c *showcase.Catalog, role string) (previewModel, error) {
	m, err := showcase.NewModel(c)
	if err != nil {
		return previewModel{}, err
	}
	if role != "" && role != m.Role().ID {
		// starting on a role is not a user choice: keep the tour playing
		if _, err := m.Dispatch(showcase.SelectRole{ID: role}); err != nil {
			return previewModel{}, err
		}
		m.Dispatch(showcase.Resume{})
	}
	s, err := tour.NewStepper(tour.DefaultAnchors, 3*time.Second)
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{roles: m, catalog: c, stepper: s}, nil
}

func (m previewModel) Init() tea.Cmd {
	return tick()
}

func (m previewModel) frame() tour.Frame {
	if m.roles != nil {
		return m.roles.State().Frame
	}
	return m.ctrl.Frame()
}

func (m previewModel) activeTour() *tour.Tour {
	if m.roles != nil {
		return m.roles.Tour()
	}
	return m.ctrl.Tour()
}

func (m previewModel) overridden() bool {
	if m.roles != nil {
		return m.roles.State().Override
	}
	return m.ctrl.ManualOverride()
}

// advance steps the tour by dt seconds.
func (m previewModel) advance(dt float64) previewModel {
	if m.roles != nil {
		m.roles.Dispatch(showcase.Tick{Dt: dt})
	} else {
		m.ctrl.Advance(dt)
	}
	return m
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m = m.advance(now.Sub(m.last).Seconds())
			m.stepTooltip(now)
		}
		m.last = now
		return m, tick()
	case tea.KeyMsg:
		return m.key(msg.String())
	}
	return m, nil
}

// stepTooltip moves the tooltip once per stepper interval of wall time.
func (m *previewModel) stepTooltip(now time.Time) {
	iv := m.stepper.Interval()
	if now.Truncate(iv) != m.last.Truncate(iv) {
		m.stepper.Tick()
	}
}

func (m previewModel) key(k string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch k {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "space":
		if m.roles != nil {
			if m.overridden() {
				m.roles.Dispatch(showcase.Resume{})
			} else {
				// pin the current feature
				m.roles.Dispatch(showcase.SelectFeature{ID: m.roles.State().Selection.Feature})
			}
		} else {
			m.ctrl.SetManualOverride(!m.ctrl.ManualOverride())
		}
		m.stepper.SetPaused(m.overridden())
	case "r":
		if m.roles != nil {
			m.roles.Dispatch(showcase.SelectRole{ID: m.roles.Role().ID})
			m.roles.Dispatch(showcase.Resume{})
		} else {
			m.ctrl.Reset(nil)
		}
		m.stepper.SetPaused(false)
	case "t":
		m.stepper.Interact()
		m.status = "tooltip pinned"
	case "up", "k", "down", "j":
		if m.roles != nil {
			m.moveFeature(k == "down" || k == "j")
		}
	case "left", "h", "right", "l":
		if m.roles != nil {
			m.moveRole(k == "right" || k == "l")
		}
	}
	return m, nil
}

func (m *previewModel) moveFeature(next bool) {
	r := m.roles.Role()
	i, _, _ := r.Feature(m.roles.State().Selection.Feature)
	i = wrap(i, len(r.Features), next)
	m.roles.Dispatch(showcase.SelectFeature{ID: r.Features[i].ID})
	m.stepper.SetPaused(true)
}

func (m *previewModel) moveRole(next bool) {
	ids := m.catalog.IDs()
	i := 0
	for j, id := range ids {
		if id == m.roles.Role().ID {
			i = j
		}
	}
	i = wrap(i, len(ids), next)
	m.roles.Dispatch(showcase.SelectRole{ID: ids[i]})
	m.stepper.SetPaused(true)
}

func wrap(i, n int, next bool) int {
	if next {
		return (i + 1) % n
	}
	return (i - 1 + n) % n
}

func progressBar(v float64, width int) string {
	full := int(v*float64(width) + 0.5)
	if full > width {
		full = width
	}
	if full < 0 {
		full = 0
	}
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}

func (m previewModel) View() string {
	var b strings.Builder
	t := m.activeTour()
	f := m.frame()

	b.WriteString(styleTitle.Render(t.Name))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("space pause/resume  r restart  t pin tooltip  q quit"))
	if m.roles != nil {
		b.WriteString(styleDim.Render("  ←/→ role  ↑/↓ feature"))
	}
	b.WriteString("\n\n")

	if m.roles != nil {
		st := m.roles.State()
		accent := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Accent)).Bold(true)
		fmt.Fprintf(&b, "%s  %s\n", accent.Render(m.roles.Role().Title), styleDim.Render(m.roles.Role().Tagline))
		for _, feat := range m.roles.Role().Features {
			cursor := "  "
			style := styleDim
			if feat.ID == st.Selection.Feature {
				cursor = "▸ "
				style = accent
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, style.Render(feat.Label), styleDim.Render(string(feat.Visualization)))
		}
		b.WriteString("\n")
	}

	mode := styleSuccess.Render("playing")
	if m.overridden() {
		mode = styleWarning.Render("manual")
	}
	fmt.Fprintf(&b, "%s  stop %d/%d  %s  %.1fs\n",
		mode, f.State.Stop+1, len(t.Stops), f.State.Phase, f.State.Elapsed)
	fmt.Fprintf(&b, "%s %.0f%%\n", progressBar(f.State.Eased, 30), f.State.Eased*100)
	cam := f.Pose.Camera
	fmt.Fprintf(&b, "%s (%.2f, %.2f, %.2f)\n", styleDim.Render("camera"), cam.X, cam.Y, cam.Z)
	if f.Visible() {
		fmt.Fprintf(&b, "%s %s\n", styleValue.Render(f.Annotation.Title), styleDim.Render(f.Annotation.Subtitle))
	}

	anchor := m.stepper.Anchor()
	tip := anchor.String()
	if len(m.tips) > 0 {
		tip = m.tips[m.stepper.Step()%len(m.tips)]
	}
	fmt.Fprintf(&b, "\n%s %s %s\n", styleDim.Render("tooltip"), styleValue.Render(anchor.String()), styleDim.Render(tip))
	if m.status != "" {
		b.WriteString(styleDim.Render(m.status) + "\n")
	}
	return b.String()
}

func (c *CLI) previewCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play a tour in the terminal",
		Long: `Play a tour in the terminal with live state.

By default the configured tour plays over its layout. With --role the
feature tour of that role plays instead and features can be picked by hand;
space hands control back to the tour.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, sceneFlags)
			if err != nil {
				return err
			}
			m, err := c.newPreview(cfg, role, cmd.Flags().Changed("role"))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	bindFlags(cmd, sceneFlags)
	cmd.Flags().StringVar(&role, "role", "", "play a role's feature tour")
	return cmd
}

func (c *CLI) newPreview(cfg *config.Config, role string, roleMode bool) (previewModel, error) {
	if roleMode {
		catalog, err := showcase.LoadCatalog()
		if err != nil {
			return previewModel{}, err
		}
		return newRolePreview(catalog, role)
	}
	p, err := layout.ParsePolicy(cfg.Policy)
	if err != nil {
		return previewModel{}, err
	}
	l, err := layout.Generate(p)
	if err != nil {
		return previewModel{}, err
	}
	t, err := engine.ResolveTour(cfg.Tour, l)
	if err != nil {
		return previewModel{}, err
	}
	tips := []string{
		fmt.Sprintf("%d boxes loaded", l.Len()),
		fmt.Sprintf("%.0f%% of the container used", l.Utilization()*100),
	}
	return newTourPreview(t, tips)
}
