package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomopro/internal/core/model"
	"pomopro/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnTogglePause func()
	OnSkip        func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	trayMenu   *fyne.Menu
	phase      model.Phase
	remaining  string
	paused     bool
	running    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		phase:     model.PhaseIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start focus", func() { invoke(manager.callbacks.OnStart) })
	manager.pauseItem = fyne.NewMenuItem("Pause", func() { invoke(manager.callbacks.OnTogglePause) })
	manager.skipItem = fyne.NewMenuItem("Skip", func() { invoke(manager.callbacks.OnSkip) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { invoke(manager.callbacks.OnReset) })

	manager.refreshItems()
	manager.refreshMenu()
	return manager
}

// ApplyEventUnsafe updates the menu from a timer event. Call only on the Fyne goroutine.
func (manager *Manager) ApplyEventUnsafe(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventPhaseChange, timekeeper.EventProgress, timekeeper.EventPauseChange:
	default:
		return
	}
	changed := event.Phase != manager.phase || event.Paused != manager.paused || event.Running != manager.running
	manager.phase = event.Phase
	manager.paused = event.Paused
	manager.running = event.Running
	manager.remaining = timekeeper.FormatRemaining(event.RemainingSeconds)
	manager.refreshItems()
	// Ticks only change the status label.
	if changed {
		manager.refreshMenu()
		return
	}
	manager.refreshStatus()
}

// StatusLabel returns the text shown in the first menu item.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshItems() {
	manager.statusItem.Label = statusText(manager.phase, manager.remaining, manager.paused)
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	idle := manager.phase == model.PhaseIdle
	manager.startItem.Disabled = manager.running
	manager.pauseItem.Disabled = !manager.running
	manager.skipItem.Disabled = idle
	manager.resetItem.Disabled = idle
}

func (manager *Manager) refreshStatus() {
	if manager.trayMenu == nil {
		return
	}
	manager.trayMenu.Refresh()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.trayMenu = manager.menu()
	manager.app.SetSystemTrayMenu(manager.trayMenu)
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu("Pomopro",
		manager.statusItem,
		fyne.NewMenuItem("Show window", func() { invoke(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { invoke(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) }),
	)
}

func statusText(phase model.Phase, remaining string, paused bool) string {
	if phase == model.PhaseIdle || remaining == "" {
		return fmt.Sprintf("Status: %s", phase.Label())
	}
	status := fmt.Sprintf("%s %s", phase.Label(), remaining)
	if paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func invoke(fn func()) {
	if fn != nil {
		fn()
	}
}
