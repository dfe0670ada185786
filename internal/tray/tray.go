// Package tray provides the macOS system tray interface for the
// fingerspelling recognizer.
package tray

import (
	"strings"
	"sync"

	"github.com/getlantern/systray"
)

// transcriptTail is how many trailing characters of the transcript the
// menu shows.
const transcriptTail = 24

// Tray is the system tray application: a recognition toggle, a live
// transcript tail, and clear/quit actions.
type Tray struct {
	onToggle func(enabled bool)
	onClear  func()
	onOpenUI func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle     *systray.MenuItem
	menuTranscript *systray.MenuItem
}

// New creates a new Tray instance with recognition enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback for toggling recognition on or off.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnClear sets the callback for the clear-transcript menu item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnOpenUI sets the callback for the open-captions menu item.
func (t *Tray) OnOpenUI(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenUI = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Fingerspell")
	systray.SetTooltip("Fingerspelling Recognition")

	t.menuToggle = systray.AddMenuItem("● Signing", "Toggle fingerspelling recognition")
	systray.AddSeparator()

	t.menuTranscript = systray.AddMenuItem("Transcript: (empty)", "Tail of the current transcript")
	t.menuTranscript.Disable()
	menuClear := systray.AddMenuItem("Clear Transcript", "Empty the current transcript")
	systray.AddSeparator()

	menuOpenUI := systray.AddMenuItem("Open Captions...", "Open live captions in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Fingerspell")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuClear.ClickedCh:
				t.handleClear()
			case <-menuOpenUI.ClickedCh:
				t.handleOpenUI()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Signing")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleClear() {
	t.mu.RLock()
	callback := t.onClear
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	t.SetTranscript("")
}

func (t *Tray) handleOpenUI() {
	t.mu.RLock()
	callback := t.onOpenUI
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetTranscript updates the transcript tail shown in the menu.
func (t *Tray) SetTranscript(text string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuTranscript == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		t.menuTranscript.SetTitle("Transcript: (empty)")
		return
	}
	if r := []rune(text); len(r) > transcriptTail {
		text = "…" + string(r[len(r)-transcriptTail:])
	}
	t.menuTranscript.SetTitle("Transcript: " + text)
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
