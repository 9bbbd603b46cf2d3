// Package style keeps the ordered, switchable list of a project's styles and
// reconciles it against the authoritative style list of the project document.
package style

import (
	"slices"
	"sync"
)

// Entry is one style in the rendering order.
type Entry struct {
	Style  string `json:"style"`
	Active bool   `json:"active"`
}

// Model holds the style universe of a project folder and the user's
// active style order. It is safe for concurrent use.
type Model struct {
	known     map[string]struct{}
	listeners map[int]func()
	styles    []string
	knownList []string // порядок, в котором стили стали известны
	active    []Entry
	nextID    int
	mu        sync.Mutex
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		known:     make(map[string]struct{}),
		listeners: make(map[int]func()),
	}
}

// SetStyles replaces the universe of style names available in the project folder.
func (m *Model) SetStyles(names []string) {
	m.mu.Lock()
	m.styles = slices.Clone(names)
	m.mu.Unlock()

	m.notify()
}

// SetProjectStyles reconciles the active order against names, the ordered
// list the project document currently claims. Known names are activated in
// place, unknown names are inserted right after their predecessor from names
// (or at the head), and entries missing from names are deactivated but kept.
func (m *Model) SetProjectStyles(names []string) {
	m.mu.Lock()
	incoming := make(map[string]struct{}, len(names))
	for i, name := range names {
		incoming[name] = struct{}{}

		if _, ok := m.known[name]; ok {
			if idx := m.indexLocked(name); idx >= 0 {
				m.active[idx].Active = true
			}
			continue
		}

		pos := 0
		if i > 0 {
			if prev := m.indexLocked(names[i-1]); prev >= 0 {
				pos = prev + 1
			}
		}
		m.active = slices.Insert(m.active, pos, Entry{Style: name, Active: true})
		m.rememberLocked(name)
	}

	for i := range m.active {
		if _, ok := incoming[m.active[i].Style]; !ok {
			m.active[i].Active = false
		}
	}
	m.mu.Unlock()

	m.notify()
}

// ToggleStyle flips the active flag of name. An unknown name is appended as
// an active entry.
func (m *Model) ToggleStyle(name string) {
	m.mu.Lock()
	if idx := m.indexLocked(name); idx >= 0 {
		m.active[idx].Active = !m.active[idx].Active
	} else {
		m.active = append(m.active, Entry{Style: name, Active: true})
		m.rememberLocked(name)
	}
	m.mu.Unlock()

	m.notify()
}

// InActiveStyles reports whether name was ever seen in the active order.
func (m *Model) InActiveStyles(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.known[name]
	return ok
}

// Styles returns the universe of style names.
func (m *Model) Styles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.styles)
}

// ActiveStyles returns the rendering order with on/off flags.
func (m *Model) ActiveStyles() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.active)
}

// KnownStyles returns every name seen in the active order, in discovery order.
func (m *Model) KnownStyles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.knownList)
}

// ProjectStyles returns the names of active entries in rendering order.
// This is what the project document's Stylesheet list is written from.
func (m *Model) ProjectStyles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.active))
	for _, e := range m.active {
		if e.Active {
			out = append(out, e.Style)
		}
	}
	return out
}

// Unlisted returns universe names that are not part of the active order yet.
func (m *Model) Unlisted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, name := range m.styles {
		if _, ok := m.known[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Reset returns the model to its empty state. Listeners stay registered.
func (m *Model) Reset() {
	m.mu.Lock()
	m.styles = nil
	m.active = nil
	m.knownList = nil
	m.known = make(map[string]struct{})
	m.mu.Unlock()

	m.notify()
}

// OnChange registers fn to be called after every mutation. The returned
// function removes the listener.
func (m *Model) OnChange(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Model) indexLocked(name string) int {
	return slices.IndexFunc(m.active, func(e Entry) bool { return e.Style == name })
}

func (m *Model) rememberLocked(name string) {
	m.known[name] = struct{}{}
	m.knownList = append(m.knownList, name)
}

// notify вызывает слушателей вне блокировки
func (m *Model) notify() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
