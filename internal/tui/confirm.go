package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"agenda/internal/presentation"
)

// confirmRequestMsg asks the model to show the confirmation modal. The
// answer is delivered on reply exactly once.
type confirmRequestMsg struct {
	prompt presentation.Prompt
	reply  chan bool
}

// ModalConfirmer implements presentation.Confirmer on top of the running
// program: Confirm posts a request to the model and blocks until the modal
// is answered or ctx is done. It must be called off the event loop, which is
// the case for commands.
type ModalConfirmer struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// Bind sets the function used to post messages, normally tea.Program.Send.
func (c *ModalConfirmer) Bind(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

func (c *ModalConfirmer) Confirm(ctx context.Context, p presentation.Prompt) bool {
	c.mu.Lock()
	send := c.send
	c.mu.Unlock()
	if send == nil {
		return false
	}
	reply := make(chan bool, 1)
	send(confirmRequestMsg{prompt: p, reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

var _ presentation.Confirmer = (*ModalConfirmer)(nil)
