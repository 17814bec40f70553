package cli

import (
	"testing"

	"github.com/dagimg/prdesk/internal/domain"
	"github.com/dagimg/prdesk/internal/teatest"
)

// TestDriver wraps teatest.Driver with shell-specific inspection helpers.
// It exposes appModel internals (view stack, shared state, banner text)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel for the given App, runs Init (which
// loads the request list and notification center through the fakes), and
// sets a terminal size.
func NewTestDriver(t *testing.T, a *App, notifCh <-chan domain.Notification) *TestDriver {
	t.Helper()

	d := teatest.New(t, newAppModel(a, notifCh))
	d.Init()
	d.Resize(120, 40)

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the shell has signaled a quit, either through
// the model flag or an observed tea.QuitMsg.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quit
}

// SessionExpired reports whether the shell quit because the session was
// invalidated.
func (d *TestDriver) SessionExpired() bool {
	return d.appModel().sessionExpired
}

// LastOutput returns the transient banner shown above the active view.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}
