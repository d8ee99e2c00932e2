package presentation

import "sync"

// EditorState is an Editor that only tracks visibility, the form being
// edited and the last submit error. Front ends render from it.
type EditorState struct {
	mu      sync.Mutex
	visible bool
	form    EditableEventForm
	err     string
}

func (e *EditorState) Open(form EditableEventForm) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = true
	e.form = form
	e.err = ""
}

func (e *EditorState) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = false
	e.err = ""
}

func (e *EditorState) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// Form returns the form the editor was opened with.
func (e *EditorState) Form() EditableEventForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetError records an error to display while the editor stays open.
func (e *EditorState) SetError(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = msg
}

// LastError returns the last recorded error message.
func (e *EditorState) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
