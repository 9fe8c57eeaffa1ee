// Package console provides terminal collaborators for running the timer headless.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pomopro/internal/core/model"
	"pomopro/internal/core/timekeeper"
)

const barWidth = 24

var (
	phaseStyles = map[model.Phase]lipgloss.Style{
		model.PhaseFocus:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		model.PhaseShortBreak: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		model.PhaseLongBreak:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		model.PhaseIdle:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Printer renders timer events as a single updating progress line.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Run prints events until the channel is closed.
func (printer *Printer) Run(events <-chan timekeeper.Event) {
	for event := range events {
		if line := Render(event); line != "" {
			fmt.Fprint(printer.out, line)
		}
	}
}

// Render returns the terminal text for one event. Progress lines start with a
// carriage return so they overwrite each other.
func Render(event timekeeper.Event) string {
	switch event.Type {
	case timekeeper.EventPhaseChange:
		if event.Phase == model.PhaseIdle {
			return "\n" + PhaseLabel(model.PhaseIdle) + "\n"
		}
		return "\n" + progressLine(event)
	case timekeeper.EventProgress, timekeeper.EventPauseChange:
		return "\r" + progressLine(event)
	case timekeeper.EventSessionEnd:
		if event.Record == nil {
			return ""
		}
		outcome := "completed"
		if event.Record.Skipped {
			outcome = "skipped"
		}
		return fmt.Sprintf("\n%s %s (%d min)  %s\n",
			PhaseLabel(event.Phase),
			outcome,
			event.Record.DurationMinutes,
			mutedStyle.Render(fmt.Sprintf("total %d sessions, streak %d", event.Stats.TotalFocusSessions, event.Stats.CurrentStreak)),
		)
	case timekeeper.EventAlarm:
		return "\n" + event.Message + "\n"
	default:
		return ""
	}
}

// PhaseLabel renders the phase name in its color.
func PhaseLabel(phase model.Phase) string {
	style, ok := phaseStyles[phase]
	if !ok {
		style = phaseStyles[model.PhaseIdle]
	}
	return style.Render(phase.Label())
}

// Bar renders a fraction in [0, 1] as a fixed width bar.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return filledStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func progressLine(event timekeeper.Event) string {
	line := fmt.Sprintf("%s %s %s %3.0f%%",
		PhaseLabel(event.Phase),
		timekeeper.FormatRemaining(event.RemainingSeconds),
		Bar(event.Progress, barWidth),
		event.Progress*100,
	)
	if event.Paused {
		line += " " + mutedStyle.Render("paused")
	}
	return line
}
