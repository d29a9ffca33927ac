// Package language holds the app's active UI language selection.
package language

import (
	"sync"

	"github.com/citoyen-eclaire/appcore/internal/model"
)

// Selector is the process-wide active language. Profile updates that
// change preferred_language propagate here; UI collaborators subscribe
// for re-render.
type Selector struct {
	mu       sync.RWMutex
	current  model.Language
	onChange []func(model.Language)
}

// NewSelector returns a selector starting at initial. Invalid initial
// values fall back to French, the app default.
func NewSelector(initial model.Language) *Selector {
	if !initial.Valid() {
		initial = model.LanguageFR
	}
	return &Selector{current: initial}
}

// Current returns the active language.
func (s *Selector) Current() model.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches the active language and notifies subscribers. Invalid
// values and no-op changes are ignored.
func (s *Selector) Set(l model.Language) {
	if !l.Valid() {
		return
	}
	s.mu.Lock()
	if l == s.current {
		s.mu.Unlock()
		return
	}
	s.current = l
	subs := append(([]func(model.Language))(nil), s.onChange...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(l)
	}
}

// OnChange registers a callback invoked after every language switch.
func (s *Selector) OnChange(fn func(model.Language)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}
