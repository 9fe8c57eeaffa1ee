// Package journal asks for and shows session notes.
package journal

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pomopro/internal/core/ledger"
)

// Question is asked after each completed focus session.
const Question = "What did you accomplish?"

// Prompter shows the journal dialog. Prompt blocks its caller, which must not be
// the Fyne goroutine.
type Prompter struct {
	parent fyne.Window
}

// NewPrompter creates a prompter whose dialogs attach to parent.
func NewPrompter(parent fyne.Window) *Prompter {
	return &Prompter{parent: parent}
}

// Prompt implements timekeeper.JournalPrompter. Dismissing the dialog answers "".
func (prompter *Prompter) Prompt(ctx context.Context) (string, error) {
	answer := make(chan string, 1)
	fyne.Do(func() {
		entry := widget.NewMultiLineEntry()
		entry.SetMinRowsVisible(3)
		items := []*widget.FormItem{widget.NewFormItem(Question, entry)}
		form := dialog.NewForm("Session Journal", "Save", "Skip", items, func(save bool) {
			if save {
				answer <- entry.Text
				return
			}
			answer <- ""
		}, prompter.parent)
		form.Resize(fyne.NewSize(420, 220))
		form.Show()
		prompter.parent.RequestFocus()
	})

	select {
	case text := <-answer:
		return strings.TrimSpace(text), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Format renders journal days as plain text, newest day last.
func Format(days []ledger.JournalDay) string {
	if len(days) == 0 {
		return "No journal entries yet."
	}
	var builder strings.Builder
	for i, day := range days {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(day.Date)
		builder.WriteString("\n")
		for _, entry := range day.Entries {
			builder.WriteString("  ")
			builder.WriteString(entry.Timestamp.Format("15:04"))
			if entry.Task != "" {
				builder.WriteString(" [")
				builder.WriteString(entry.Task)
				builder.WriteString("]")
			}
			builder.WriteString(" ")
			builder.WriteString(strings.ReplaceAll(entry.Notes, "\n", "\n        "))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// ShowUnsafe opens a read-only journal dialog. Call only on the Fyne goroutine.
func ShowUnsafe(parent fyne.Window, days []ledger.JournalDay) {
	text := widget.NewLabel(Format(days))
	text.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(text)
	scroll.SetMinSize(fyne.NewSize(400, 300))
	dialog.ShowCustom("Journal", "Close", scroll, parent)
}
