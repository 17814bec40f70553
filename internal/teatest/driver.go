// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of spinning up a tea.Program, the Driver feeds messages straight
// into Update and immediately executes any returned Cmds, so view behavior
// can be asserted without goroutines or timing. Cmds that block (cursor
// blink timers, channel reads with nothing pending) are abandoned after a
// short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds recursive Cmd execution so a misbehaving model cannot
// loop the test forever.
const maxDepth = 100

// cmdWait separates real Cmds from blocking ones. Message factories and
// in-memory work return in microseconds; blink timers and idle channel
// reads do not.
const cmdWait = 10 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quit is set when a tea.QuitMsg is observed. The bubbletea runtime
	// normally swallows it, so the driver records it explicitly.
	Quit bool
}

// New wraps model in a Driver. Call Init() afterwards to run the model's
// startup command.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{T: t, Model: model}
}

// Resize delivers a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// Init executes the model's Init command and everything it produces.
func (d *Driver) Init() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send feeds one message through Update and executes the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quit {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.run(cmd, 0)
}

// Press sends a single character key.
func (d *Driver) Press(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends a string one key at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Press(r)
	}
}

// Enter sends the enter key.
func (d *Driver) Enter() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

// Esc sends the escape key.
func (d *Driver) Esc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

// Down sends the down-arrow key.
func (d *Driver) Down() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyDown})
}

// Up sends the up-arrow key.
func (d *Driver) Up() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyUp})
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// run executes a Cmd tree depth-first, feeding produced messages back into
// the model.
func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: command depth limit (%d) hit", maxDepth)
		return
	}

	msg := await(cmd)
	if msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			if sub != nil {
				d.run(sub, depth+1)
			}
		}
		return
	case tea.QuitMsg:
		d.Quit = true
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	if !d.Quit {
		d.run(next, depth+1)
	}
}

// await runs cmd with a timeout so blocking Cmds cannot hang the test.
func await(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdWait):
		return nil
	}
}

// isBlink filters cursor blink messages from bubbles/textinput, whose
// follow-up Cmds park on half-second timers.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(fmt.Sprintf("%T", msg), "link")
}
