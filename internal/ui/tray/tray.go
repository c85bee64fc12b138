package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleTimer func()
	OnShow        func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	timerItem  *fyne.MenuItem
	showItem   *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
	running    bool
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    "Idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.timerItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnToggleTimer != nil {
			manager.callbacks.OnToggleTimer()
		}
	})
	manager.showItem = fyne.NewMenuItem("Show", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.refresh()
	return manager
}

// Update shows the timer status, e.g. "00:12:03 - Work", and whether the
// timer item starts or stops.
func (manager *Manager) Update(status string, running bool) {
	if status == manager.status && running == manager.running {
		return
	}
	manager.status = status
	manager.running = running
	manager.refresh()
}

// Status returns the status line shown in the menu.
func (manager *Manager) Status() string { return manager.statusItem.Label }

// TimerLabel returns the label of the start/stop item.
func (manager *Manager) TimerLabel() string { return manager.timerItem.Label }

func (manager *Manager) refresh() {
	manager.statusItem.Label = "Status: " + manager.status
	if manager.running {
		manager.timerItem.Label = "Stop Timer"
	} else {
		manager.timerItem.Label = "Start Timer"
	}
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("Time Tracker",
			manager.statusItem,
			fyne.NewMenuItemSeparator(),
			manager.timerItem,
			manager.showItem,
			fyne.NewMenuItemSeparator(),
			manager.quitItem,
		))
	}
}
