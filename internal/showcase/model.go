package showcase

import (
	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

// Feature tour timing.
const (
	DefaultHold       = 5.0
	DefaultTransition = 1.0
)

// Selection is what the user (or the tour, on their behalf) is looking at.
type Selection struct {
	Role    string `json:"role"`
	Feature string `json:"feature"`
}

// State is the composed view of selection and tour.
type State struct {
	Selection Selection
	Override  bool
	Frame     tour.Frame
	Kind      layout.VisualizationType // canvas for the selected feature
	Accent    string                   // hex accent of the selected role
}

// Action is an input to Model.Dispatch.
type Action interface {
	action()
}

// SelectRole is a user click on a role tab.
type SelectRole struct{ ID string }

// SelectFeature is a user click on a feature of the current role.
type SelectFeature struct{ ID string }

// Tick is a render-loop time step in seconds.
type Tick struct{ Dt float64 }

// Resume hands control back to the tour.
type Resume struct{}

func (SelectRole) action()    {}
func (SelectFeature) action() {}
func (Tick) action()          {}
func (Resume) action()        {}

// Model composes the user's selection with the auto-playing feature tour.
// A user action always wins and sets the override flag; while it is set the
// tour never moves the selection.
type Model struct {
	catalog    *Catalog
	role       *Role
	sel        Selection
	ctrl       *tour.Controller
	Hold       float64
	Transition float64
}

// NewModel starts on the first role and feature with the tour playing.
func NewModel(c *Catalog) (*Model, error) {
	m := &Model{catalog: c, Hold: DefaultHold, Transition: DefaultTransition}
	if len(c.Roles) == 0 {
		return nil, ErrUnknownRole
	}
	if err := m.enter(c.Roles[0].ID); err != nil {
		return nil, err
	}
	return m, nil
}

// enter switches to role id and restarts its feature tour at stop 0.
func (m *Model) enter(id string) error {
	r, err := m.catalog.Role(id)
	if err != nil {
		return err
	}
	t, err := FeatureTour(r, m.Hold, m.Transition)
	if err != nil {
		return err
	}
	if m.ctrl == nil {
		m.ctrl = tour.NewController(t)
	} else {
		m.ctrl.Reset(t)
	}
	m.role = r
	m.sel = Selection{Role: r.ID, Feature: r.Features[0].ID}
	return nil
}

// Dispatch applies a and returns the resulting state. Unknown role or
// feature ids leave the state untouched.
func (m *Model) Dispatch(a Action) (State, error) {
	switch a := a.(type) {
	case SelectRole:
		if err := m.enter(a.ID); err != nil {
			return m.State(), err
		}
		m.ctrl.SetManualOverride(true)
	case SelectFeature:
		if _, _, err := m.role.Feature(a.ID); err != nil {
			return m.State(), err
		}
		m.sel.Feature = a.ID
		m.ctrl.SetManualOverride(true)
	case Tick:
		f := m.ctrl.Advance(a.Dt)
		if !m.ctrl.ManualOverride() {
			m.sel.Feature = m.role.Features[f.State.Stop].ID
		}
	case Resume:
		m.ctrl.SetManualOverride(false)
	}
	return m.State(), nil
}

// State returns the current composed state.
func (m *Model) State() State {
	s := State{
		Selection: m.sel,
		Override:  m.ctrl.ManualOverride(),
		Frame:     m.ctrl.Frame(),
		Accent:    m.catalog.Accent(m.role.Color),
	}
	if _, f, err := m.role.Feature(m.sel.Feature); err == nil {
		s.Kind = f.Visualization
	}
	return s
}

// Role returns the active role.
func (m *Model) Role() *Role { return m.role }

// Tour returns the active feature tour.
func (m *Model) Tour() *tour.Tour { return m.ctrl.Tour() }
