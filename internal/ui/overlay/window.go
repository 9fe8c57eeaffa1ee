// Package overlay shows a compact break reminder above other windows while a
// break runs.
package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomopro/internal/core/model"
	"pomopro/internal/core/timekeeper"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
}

// DefaultConfig is a translucent window in the middle of the screen.
func DefaultConfig() Config {
	return Config{Opacity: 220}
}

// Window is the break reminder.
type Window struct {
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	timerLabel    *canvas.Text
	skipButton    *widget.Button
	phase         model.Phase
	visible       bool
}

const (
	overlayWidthFraction  = float32(0.2)
	overlayHeightFraction = float32(0.16)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

var breakMessages = map[model.Phase]string{
	model.PhaseShortBreak: "Stand up and stretch",
	model.PhaseLongBreak:  "Step away from the screen",
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay. onSkip runs on the Fyne goroutine when the user
// skips the break.
func New(app fyne.App, config Config, onSkip func()) *Window {
	window := app.NewWindow("Break")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText(model.PhaseShortBreak.Label(), white)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	subtitleLabel := canvas.NewText("", white)
	subtitleLabel.TextSize = 14

	timerLabel := canvas.NewText("00:00", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 28

	skipButton := widget.NewButton("Skip break", func() {
		if onSkip != nil {
			onSkip()
		}
	})

	content := container.New(&panelLayout{}, titleLabel, subtitleLabel, timerLabel, skipButton)
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		window:        window,
		config:        config,
		background:    background,
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		timerLabel:    timerLabel,
		skipButton:    skipButton,
		phase:         model.PhaseIdle,
	}
	return overlay
}

// ApplyEventUnsafe shows the overlay while a break runs and hides it otherwise.
// Call only on the Fyne goroutine.
func (overlay *Window) ApplyEventUnsafe(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventPhaseChange, timekeeper.EventProgress, timekeeper.EventPauseChange:
	default:
		return
	}
	if !event.Phase.IsBreak() || !event.Running {
		overlay.Hide()
		return
	}

	if event.Phase != overlay.phase {
		overlay.phase = event.Phase
		overlay.titleLabel.Text = event.Phase.Label()
		overlay.subtitleLabel.Text = breakMessages[event.Phase]
		overlay.titleLabel.Refresh()
		overlay.subtitleLabel.Refresh()
	}
	text := timekeeper.FormatRemaining(event.RemainingSeconds)
	if event.Paused {
		text += " (paused)"
	}
	overlay.timerLabel.Text = text
	overlay.timerLabel.Refresh()

	if !overlay.visible {
		overlay.visible = true
		overlay.applyWindowMode()
		overlay.window.Show()
		overlay.window.RequestFocus()
	}
}

// Hide closes the overlay.
func (overlay *Window) Hide() {
	overlay.phase = model.PhaseIdle
	if !overlay.visible {
		return
	}
	overlay.visible = false
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

// Visible reports whether the overlay is on screen.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{A: config.Opacity}
	canvas.Refresh(overlay.background)
	if overlay.visible {
		overlay.applyWindowMode()
	}
}

func (overlay *Window) applyWindowMode() {
	overlay.applyNativeOpacity(overlay.config.Opacity)
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	minSize := overlay.window.Content().MinSize()
	width := max(screenSize.Width*overlayWidthFraction, minSize.Width)
	height := max(screenSize.Height*overlayHeightFraction, minSize.Height)

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// panelLayout stacks title and subtitle at the top left, the countdown at the
// bottom left and the skip button at the bottom right.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	title, subtitle, timer, skip := objects[0], objects[1], objects[2], objects[3]

	pad := size.Height * 0.08
	availableWidth := max(size.Width-pad*2, 0)

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	subtitleSize := subtitle.MinSize()
	subtitle.Move(fyne.NewPos(pad, pad+titleSize.Height+6))
	subtitle.Resize(fyne.NewSize(availableWidth, subtitleSize.Height))

	timerSize := timer.MinSize()
	timer.Move(fyne.NewPos(pad, max(size.Height-pad-timerSize.Height, 0)))
	timer.Resize(timerSize)

	skipSize := skip.MinSize()
	skipWidth := min(skipSize.Width*1.4, size.Width)
	skip.Move(fyne.NewPos(max(size.Width-pad-skipWidth, 0), max(size.Height-pad-skipSize.Height, 0)))
	skip.Resize(fyne.NewSize(skipWidth, skipSize.Height))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	titleSize := objects[0].MinSize()
	subtitleSize := objects[1].MinSize()
	timerSize := objects[2].MinSize()
	skipSize := objects[3].MinSize()

	width := max(titleSize.Width, subtitleSize.Width, timerSize.Width+skipSize.Width*1.4)
	height := titleSize.Height + subtitleSize.Height + max(timerSize.Height, skipSize.Height) + 40
	return fyne.NewSize(width+20, height)
}
