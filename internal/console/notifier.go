package console

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Notifier prints notifications to the terminal and logs them.
type Notifier struct {
	out    io.Writer
	logger zerolog.Logger
}

// NewNotifier creates a notifier writing to out.
func NewNotifier(out io.Writer, logger zerolog.Logger) *Notifier {
	return &Notifier{out: out, logger: logger}
}

// Notify implements timekeeper.Notifier.
func (notifier *Notifier) Notify(title, message string) error {
	notifier.logger.Info().Str("title", title).Msg(message)
	if _, err := fmt.Fprintf(notifier.out, "\n%s: %s\n", title, message); err != nil {
		return fmt.Errorf("print notification: %w", err)
	}
	return nil
}
