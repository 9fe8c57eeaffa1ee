package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// JournalQuestion is asked after each completed focus session.
const JournalQuestion = "What did you accomplish? "

// Input splits terminal lines between control commands and journal answers.
// While a journal prompt is waiting, the next line answers it; every other line
// is a command.
type Input struct {
	out io.Writer

	mu      sync.Mutex
	waiting chan string

	commands chan string
	closed   chan struct{}
}

// NewInput starts reading lines from in. Prompts are written to out.
func NewInput(in io.Reader, out io.Writer) *Input {
	input := &Input{
		out:      out,
		commands: make(chan string, 16),
		closed:   make(chan struct{}),
	}
	go input.read(in)
	return input
}

// Commands returns the lines not consumed by a journal prompt. It is closed at end of input.
func (input *Input) Commands() <-chan string {
	return input.commands
}

// Prompt asks the journal question and waits for the next line.
func (input *Input) Prompt(ctx context.Context) (string, error) {
	answer := make(chan string, 1)
	input.mu.Lock()
	input.waiting = answer
	input.mu.Unlock()
	defer func() {
		input.mu.Lock()
		if input.waiting == answer {
			input.waiting = nil
		}
		input.mu.Unlock()
	}()

	fmt.Fprint(input.out, "\n"+JournalQuestion)
	select {
	case line := <-answer:
		return strings.TrimSpace(line), nil
	case <-input.closed:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (input *Input) read(in io.Reader) {
	defer close(input.closed)
	defer close(input.commands)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()

		input.mu.Lock()
		answer := input.waiting
		input.waiting = nil
		input.mu.Unlock()

		if answer != nil {
			answer <- line
			continue
		}
		input.commands <- line
	}
}
