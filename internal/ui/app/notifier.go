package app

import (
	"fyne.io/fyne/v2"
)

// Notifier sends desktop notifications through Fyne.
type Notifier struct {
	app fyne.App
}

// NewNotifier creates a desktop notifier.
func NewNotifier(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

// Notify implements timekeeper.Notifier.
func (notifier *Notifier) Notify(title, message string) error {
	fyne.Do(func() {
		notifier.app.SendNotification(fyne.NewNotification(title, message))
	})
	return nil
}
