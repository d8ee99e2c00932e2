package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// MutationPolicy decides what happens after a failed update or delete.
type MutationPolicy int

const (
	// ProceedOnError refreshes and navigates back even when the mutation
	// failed. The failure is returned to the caller.
	ProceedOnError MutationPolicy = iota
	// HaltOnError stops after a failed mutation: no refresh, the editor
	// stays open, no navigation.
	HaltOnError
)

func (p MutationPolicy) String() string {
	switch p {
	case HaltOnError:
		return "halt"
	default:
		return "proceed"
	}
}

// ParseMutationPolicy accepts "proceed" or "halt". Empty means proceed.
func ParseMutationPolicy(s string) (MutationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "proceed":
		return ProceedOnError, nil
	case "halt":
		return HaltOnError, nil
	default:
		return ProceedOnError, fmt.Errorf("unknown mutation policy %q", s)
	}
}

// Mutation operations.
const (
	OpUpdate = "update"
	OpDelete = "delete"
)

// MutationError reports a failed update or delete. Its message is the data
// layer's message, shown verbatim.
type MutationError struct {
	Op      string
	EventID string
	Err     error
}

func (e *MutationError) Error() string {
	return e.Err.Error()
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// MutationCoordinator runs the mutate, refresh, close/navigate choreography.
// It keeps no state of its own.
type MutationCoordinator struct {
	source EventSource
	list   ListRefresher
	editor Editor
	nav    Navigator
	gate   Confirmer
	policy MutationPolicy
	logger *slog.Logger
}

// NewMutationCoordinator wires the coordinator to its collaborators.
func NewMutationCoordinator(source EventSource, list ListRefresher, editor Editor, nav Navigator, gate Confirmer, policy MutationPolicy, logger *slog.Logger) *MutationCoordinator {
	return &MutationCoordinator{
		source: source,
		list:   list,
		editor: editor,
		nav:    nav,
		gate:   gate,
		policy: policy,
		logger: logger,
	}
}

// Policy returns the configured failure policy.
func (m *MutationCoordinator) Policy() MutationPolicy {
	return m.policy
}

// SubmitEdit updates the event with the full form, then refreshes the list,
// closes the editor and navigates back, each step after the previous one
// completes. The returned error is the update failure, if any.
func (m *MutationCoordinator) SubmitEdit(ctx context.Context, form EditableEventForm) error {
	var mutErr error
	if err := m.source.Update(ctx, form); err != nil {
		mutErr = &MutationError{Op: OpUpdate, EventID: form.ID, Err: err}
		m.logger.ErrorContext(ctx, "update event failed", "event_id", form.ID, "policy", m.policy.String(), "err", err)
		if m.policy == HaltOnError {
			return mutErr
		}
	}
	m.refresh(ctx)
	m.editor.Close()
	m.nav.GoBack()
	return mutErr
}

// ConfirmDelete asks for confirmation and, when confirmed, deletes the event,
// refreshes the list and navigates back. An open editor is closed before
// navigating. It reports whether the user confirmed. On cancel nothing else
// happens.
func (m *MutationCoordinator) ConfirmDelete(ctx context.Context, id string) (bool, error) {
	var (
		confirmed bool
		mutErr    error
	)
	Gate(ctx, m.gate, DeleteEventPrompt, func() {
		confirmed = true
		mutErr = m.delete(ctx, id)
	}, nil)
	return confirmed, mutErr
}

func (m *MutationCoordinator) delete(ctx context.Context, id string) error {
	var mutErr error
	if err := m.source.Delete(ctx, id); err != nil {
		mutErr = &MutationError{Op: OpDelete, EventID: id, Err: err}
		m.logger.ErrorContext(ctx, "delete event failed", "event_id", id, "policy", m.policy.String(), "err", err)
		if m.policy == HaltOnError {
			return mutErr
		}
	}
	m.refresh(ctx)
	if m.editor.Visible() {
		m.editor.Close()
	}
	m.nav.GoBack()
	return mutErr
}

// refresh failures surface through the list's own error state.
func (m *MutationCoordinator) refresh(ctx context.Context) {
	if err := m.list.Refresh(ctx); err != nil {
		m.logger.WarnContext(ctx, "refresh after mutation failed", "err", err)
	}
}
