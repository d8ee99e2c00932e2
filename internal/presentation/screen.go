package presentation

import (
	"context"
	"log/slog"
)

// DetailScreen hosts one event: its controller, the editor opened from it
// and the coordinator that runs edit and delete actions.
type DetailScreen struct {
	Controller  *DetailController
	Coordinator *MutationCoordinator
	Editor      *EditorState
	Contacts    *ContactList
}

// NewDetailScreen builds a detail screen over the given collaborators.
func NewDetailScreen(source EventSource, contacts *ContactList, list ListRefresher, nav Navigator, gate Confirmer, policy MutationPolicy, logger *slog.Logger) *DetailScreen {
	editor := &EditorState{}
	return &DetailScreen{
		Controller:  NewDetailController(source, logger),
		Coordinator: NewMutationCoordinator(source, list, editor, nav, gate, policy, logger),
		Editor:      editor,
		Contacts:    contacts,
	}
}

// Mount is called when the screen is shown with id, and again whenever the
// route's identifier changes.
func (s *DetailScreen) Mount(ctx context.Context, id string) DetailState {
	return s.Controller.OnIdentifierChanged(ctx, id)
}

// Edit opens the editor on the projection of the loaded event. It reports
// false when no event is ready.
func (s *DetailScreen) Edit() bool {
	ready, ok := s.Controller.State().(Ready)
	if !ok {
		return false
	}
	s.Editor.Open(Project(ready.Event))
	return true
}

// CloseEditor dismisses the editor without submitting.
func (s *DetailScreen) CloseEditor() {
	s.Editor.Close()
}

// Submit validates the form and hands it to the coordinator. Validation
// failures keep the editor open and never reach the data layer.
func (s *DetailScreen) Submit(ctx context.Context, form EditableEventForm) error {
	if fe := form.Validate(); fe != nil {
		s.Editor.SetError(fe.Error())
		return fe
	}
	err := s.Coordinator.SubmitEdit(ctx, form)
	if err != nil && s.Editor.Visible() {
		s.Editor.SetError(err.Error())
	}
	return err
}

// Delete routes deletion of the current event through the confirmation gate.
// It serves both the detail screen and the open editor.
func (s *DetailScreen) Delete(ctx context.Context) (bool, error) {
	return s.Coordinator.ConfirmDelete(ctx, s.Controller.ID())
}
