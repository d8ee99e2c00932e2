package presentation

import "sync"

// ScreenID names a screen of the client.
type ScreenID string

const (
	ScreenEventList   ScreenID = "eventList"
	ScreenEventDetail ScreenID = "eventDetail"
)

// Params are the typed parameters passed to a screen.
type Params struct {
	EventID string
}

// Route is one entry of the navigation stack.
type Route struct {
	Screen ScreenID
	Params Params
}

// Navigator is the navigation stack consumed by the presentation core.
type Navigator interface {
	GoBack()
	NavigateTo(screen ScreenID, params Params)
}

// Stack is an in-memory Navigator. The root route is never popped.
type Stack struct {
	mu     sync.Mutex
	routes []Route
}

// NewStack returns a stack holding only root.
func NewStack(root Route) *Stack {
	return &Stack{routes: []Route{root}}
}

func (s *Stack) GoBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.routes) > 1 {
		s.routes = s.routes[:len(s.routes)-1]
	}
}

func (s *Stack) NavigateTo(screen ScreenID, params Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, Route{Screen: screen, Params: params})
}

// Current returns the top route.
func (s *Stack) Current() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routes[len(s.routes)-1]
}

// Depth returns the number of routes on the stack.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.routes)
}
