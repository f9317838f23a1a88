// Package teatest provides a synchronous test driver for bubbletea models:
// it calls Update() directly and drains returned Cmds inline, so tea.Model
// implementations can be exercised deterministically without a running
// tea.Program. Cursor-blink Cmds, which block on timer channels, are run
// with a short timeout and skipped when they do not return promptly.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds recursive command draining.
const maxDrainDepth = 100

// cmdTimeout separates real Cmds (message factories, DB calls — microseconds)
// from blocking blink Cmds (~530ms).
const cmdTimeout = 10 * time.Millisecond

// Driver drives any tea.Model synchronously.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when tea.QuitMsg is seen during drain; the runtime
	// normally intercepts it before the model does.
	Quitting bool
}

func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{T: t, Model: model}
}

// Resize sends a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// DrainInit executes the model's Init() command and drains the result.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches a message through Update and drains all resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressSpecial sends a named key ("enter", "esc", "up", "down", "left",
// "right", "shift+left", "shift+right").
func (d *Driver) PressSpecial(name string) {
	d.T.Helper()
	types := map[string]tea.KeyType{
		"enter":       tea.KeyEnter,
		"esc":         tea.KeyEsc,
		"up":          tea.KeyUp,
		"down":        tea.KeyDown,
		"left":        tea.KeyLeft,
		"right":       tea.KeyRight,
		"shift+left":  tea.KeyShiftLeft,
		"shift+right": tea.KeyShiftRight,
		"shift+up":    tea.KeyShiftUp,
		"shift+down":  tea.KeyShiftDown,
		"space":       tea.KeySpace,
	}
	kt, ok := types[name]
	if !ok {
		d.T.Fatalf("teatest: unknown key %q", name)
	}
	d.Send(tea.KeyMsg{Type: kt})
}

// Type sends a string rune by rune.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the current rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", maxDrainDepth)
		return
	}

	msg := execWithTimeout(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub != nil {
				d.drainCmd(sub, depth+1)
			}
		}
		return
	}

	if _, isQuit := msg.(tea.QuitMsg); isQuit {
		d.Quitting = true
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	if !d.Quitting {
		d.drainCmd(next, depth+1)
	}
}

func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink detects the bubbles/cursor blink messages, whose types are
// unexported and chain into blocking timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
