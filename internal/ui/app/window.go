// Package app is the main timer window.
package app

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomopro/internal/core/model"
	"pomopro/internal/core/timekeeper"
)

// Controls are the actions behind the window's buttons. They are called on the
// Fyne goroutine and are expected to hand work to the control loop.
type Controls struct {
	OnStart       func()
	OnTogglePause func()
	OnSkip        func()
	OnReset       func()
	OnClearStats  func()
	OnSetTask     func(task string)
	OnSetAlarm    func(value string) error
	OnJournal     func()
	OnExport      func()
	OnPreferences func()
}

// Window shows the countdown, the controls and the focus statistics.
type Window struct {
	window   fyne.Window
	controls Controls

	phase    *widget.Label
	clock    *canvas.Text
	progress *widget.ProgressBar
	status   *widget.Label
	stats    *widget.Label
	heatmap  *fyne.Container
	task     *widget.Entry
	alarm    *widget.Entry
	pause    *widget.Button
}

// New creates the main window. Call Show to display it.
func New(app fyne.App, controls Controls) *Window {
	win := &Window{
		window:   app.NewWindow("Pomopro"),
		controls: controls,
		phase:    widget.NewLabelWithStyle(model.PhaseIdle.Label(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		clock:    canvas.NewText("00:00", theme.Color(theme.ColorNameForeground)),
		progress: widget.NewProgressBar(),
		status:   widget.NewLabel("Ready"),
		stats:    widget.NewLabel(""),
		heatmap:  container.NewGridWithColumns(7),
		task:     widget.NewEntry(),
		alarm:    widget.NewEntry(),
	}
	win.clock.TextSize = 48
	win.clock.Alignment = fyne.TextAlignCenter
	win.clock.TextStyle = fyne.TextStyle{Monospace: true}

	win.task.SetPlaceHolder("Current task")
	win.task.OnSubmitted = func(task string) {
		call1(controls.OnSetTask, strings.TrimSpace(task))
	}
	win.alarm.SetPlaceHolder("HH:MM or HH:MM:SS")

	start := widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() { call(controls.OnStart) })
	win.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() { call(controls.OnTogglePause) })
	skip := widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), func() { call(controls.OnSkip) })
	reset := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() { call(controls.OnReset) })

	setAlarm := widget.NewButton("Set Alarm", win.handleSetAlarm)
	clearStats := widget.NewButtonWithIcon("Clear Stats", theme.DeleteIcon(), win.handleClearStats)
	journal := widget.NewButtonWithIcon("Journal", theme.DocumentIcon(), func() { call(controls.OnJournal) })
	export := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() { call(controls.OnExport) })
	settings := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() { call(controls.OnPreferences) })

	content := container.NewVBox(
		win.phase,
		win.clock,
		win.progress,
		container.NewGridWithColumns(4, start, win.pause, skip, reset),
		win.task,
		container.NewBorder(nil, nil, nil, setAlarm, win.alarm),
		widget.NewSeparator(),
		win.stats,
		win.heatmap,
		container.NewHBox(journal, export, clearStats, layout.NewSpacer(), settings),
		win.status,
	)
	win.window.SetContent(container.NewPadded(content))
	win.window.Resize(fyne.NewSize(440, 520))

	return win
}

// Window returns the underlying Fyne window, used as dialog parent.
func (win *Window) Window() fyne.Window {
	return win.window
}

// Show displays the window.
func (win *Window) Show() {
	win.window.Show()
}

// SetCloseIntercept replaces the close behavior, e.g. to hide into the tray.
func (win *Window) SetCloseIntercept(callback func()) {
	win.window.SetCloseIntercept(callback)
}

// ApplyEvent schedules an event update on the Fyne goroutine.
func (win *Window) ApplyEvent(event timekeeper.Event) {
	fyne.Do(func() {
		win.ApplyEventUnsafe(event)
	})
}

// ApplyEventUnsafe updates widgets directly. Call only on the Fyne goroutine.
func (win *Window) ApplyEventUnsafe(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventPhaseChange, timekeeper.EventProgress, timekeeper.EventPauseChange:
		win.phase.SetText(event.Phase.Label())
		win.clock.Text = timekeeper.FormatRemaining(event.RemainingSeconds)
		win.clock.Refresh()
		win.progress.SetValue(event.Progress)
		if event.Paused {
			win.pause.SetText("Resume")
			win.pause.SetIcon(theme.MediaPlayIcon())
		} else {
			win.pause.SetText("Pause")
			win.pause.SetIcon(theme.MediaPauseIcon())
		}
	case timekeeper.EventSessionEnd:
		win.status.SetText(event.Message)
		win.setStatisticsUnsafe(event.Stats)
	case timekeeper.EventStatus, timekeeper.EventAlarm:
		win.status.SetText(event.Message)
	}
}

// SetStatistics schedules a statistics and heatmap update on the Fyne goroutine.
func (win *Window) SetStatistics(stats model.Statistics, heatmap []model.DayCount) {
	fyne.Do(func() {
		win.setStatisticsUnsafe(stats)
		win.SetHeatmapUnsafe(heatmap)
	})
}

// SetStatus schedules a status line update on the Fyne goroutine.
func (win *Window) SetStatus(status string) {
	fyne.Do(func() {
		win.status.SetText(status)
	})
}

// SetHeatmapUnsafe redraws the heatmap. Call only on the Fyne goroutine.
func (win *Window) SetHeatmapUnsafe(heatmap []model.DayCount) {
	win.heatmap.RemoveAll()
	peak := 0
	for _, day := range heatmap {
		peak = max(peak, day.Count)
	}
	for _, day := range heatmap {
		cell := canvas.NewRectangle(heatColor(day.Count, peak))
		cell.SetMinSize(fyne.NewSize(40, 28))
		cell.CornerRadius = 4
		label := widget.NewLabelWithStyle(fmt.Sprintf("%s\n%d", weekday(day.Date), day.Count), fyne.TextAlignCenter, fyne.TextStyle{})
		win.heatmap.Add(container.NewStack(cell, label))
	}
	win.heatmap.Refresh()
}

func (win *Window) setStatisticsUnsafe(stats model.Statistics) {
	win.stats.SetText(FormatStatistics(stats))
}

func (win *Window) handleSetAlarm() {
	if win.controls.OnSetAlarm == nil {
		return
	}
	if err := win.controls.OnSetAlarm(win.alarm.Text); err != nil {
		dialog.ShowError(err, win.window)
	}
}

func (win *Window) handleClearStats() {
	dialog.ShowConfirm("Clear Statistics", "Reset total sessions, minutes and streak?", func(confirmed bool) {
		if confirmed {
			call(win.controls.OnClearStats)
		}
	}, win.window)
}

// FormatStatistics renders the statistics summary line.
func FormatStatistics(stats model.Statistics) string {
	return fmt.Sprintf("Sessions: %d   Minutes: %d   Streak: %d day(s)",
		stats.TotalFocusSessions, stats.TotalFocusMinutes, stats.CurrentStreak)
}

func heatColor(count, peak int) color.Color {
	if count == 0 || peak == 0 {
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x40}
	}
	alpha := 0x50 + (0xff-0x50)*count/peak
	return color.NRGBA{R: 0xd9, G: 0x3f, B: 0x3f, A: uint8(alpha)}
}

func weekday(date string) string {
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("Mon")
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func call1(fn func(string), value string) {
	if fn != nil {
		fn(value)
	}
}
