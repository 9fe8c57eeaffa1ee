package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	focus      *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	cycles     *widget.Entry
	autoStart  *widget.Check
	smart      *widget.Check
	alarmSound *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomopro Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		focus:      widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		cycles:     widget.NewEntry(),
		autoStart:  widget.NewCheck("Start the next session automatically", nil),
		smart:      widget.NewCheck("Adjust session length to recent sessions", nil),
		alarmSound: widget.NewEntry(),
	}
	prefs.alarmSound.SetPlaceHolder("default bell")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.cycles, widget.NewLabel("focus sessions")),
		prefs.autoStart,
		prefs.smart,
		widget.NewLabel("Alarm sound file"),
		prefs.alarmSound,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(fmt.Sprintf("%d", settings.FocusMinutes))
	prefs.shortBreak.SetText(fmt.Sprintf("%d", settings.ShortBreakMinutes))
	prefs.longBreak.SetText(fmt.Sprintf("%d", settings.LongBreakMinutes))
	prefs.cycles.SetText(fmt.Sprintf("%d", settings.CyclesBeforeLongBreak))
	prefs.autoStart.SetChecked(settings.AutoStartNext)
	prefs.smart.SetChecked(settings.SmartAdjust)
	prefs.alarmSound.SetText(settings.AlarmSound)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focus.Text); ok {
		settings.FocusMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.shortBreak.Text); ok {
		settings.ShortBreakMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.longBreak.Text); ok {
		settings.LongBreakMinutes = minutes
	}
	if cycles, ok := parsePositiveInt(prefs.cycles.Text); ok {
		settings.CyclesBeforeLongBreak = cycles
	}
	settings.AutoStartNext = prefs.autoStart.Checked
	settings.SmartAdjust = prefs.smart.Checked
	settings.AlarmSound = strings.TrimSpace(prefs.alarmSound.Text)

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
