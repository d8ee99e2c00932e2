package presentation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt is the content of a two-choice confirmation.
type Prompt struct {
	Title        string
	Message      string
	CancelLabel  string
	ConfirmLabel string
}

// DeleteEventPrompt guards event deletion.
var DeleteEventPrompt = Prompt{
	Title:        "Delete event?",
	Message:      "This action cannot be undone",
	CancelLabel:  "Cancel",
	ConfirmLabel: "Delete",
}

// Confirmer asks the user to confirm a destructive action. It returns true
// for the confirm choice and false for cancel. It never fails.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, p Prompt) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, p Prompt) bool {
	return f(ctx, p)
}

// AutoConfirm returns a Confirmer that always answers with decision.
func AutoConfirm(decision bool) Confirmer {
	return ConfirmerFunc(func(context.Context, Prompt) bool { return decision })
}

// Gate runs exactly one of onConfirm or onCancel depending on the user's
// choice. Either continuation may be nil.
func Gate(ctx context.Context, c Confirmer, p Prompt, onConfirm, onCancel func()) {
	if c.Confirm(ctx, p) {
		if onConfirm != nil {
			onConfirm()
		}
		return
	}
	if onCancel != nil {
		onCancel()
	}
}

// PromptConfirmer asks on a line-oriented terminal. Anything other than an
// explicit yes (or the confirm label) counts as cancel, including EOF.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer returns a PromptConfirmer reading answers from in and
// writing questions to out.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *PromptConfirmer) Confirm(ctx context.Context, p Prompt) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(c.out, "%s\n%s\n[%s/%s] (y/N): ", p.Title, p.Message, p.ConfirmLabel, p.CancelLabel)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", strings.ToLower(p.ConfirmLabel):
		return true
	default:
		return false
	}
}
