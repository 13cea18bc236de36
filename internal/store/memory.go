package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/carpoolnu/sestmpl/internal/catalog"
)

// Call records one request made against a Memory store.
type Call struct {
	Op       string
	Template catalog.Template
}

// Memory is an in-process template store with SES create/update semantics.
// Errors registered with FailCreate and FailUpdate are returned instead of
// performing the operation.
type Memory struct {
	mu         sync.Mutex
	templates  map[string]catalog.Template
	calls      []Call
	failCreate map[string]error
	failUpdate map[string]error
}

// NewMemory returns a store pre-populated with the given templates.
func NewMemory(seed ...catalog.Template) *Memory {
	m := &Memory{
		templates:  make(map[string]catalog.Template),
		failCreate: make(map[string]error),
		failUpdate: make(map[string]error),
	}
	for _, t := range seed {
		m.templates[t.Name] = t
	}
	return m
}

// FailCreate makes CreateTemplate for name return err.
func (m *Memory) FailCreate(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCreate[name] = err
}

// FailUpdate makes UpdateTemplate for name return err.
func (m *Memory) FailUpdate(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failUpdate[name] = err
}

// CreateTemplate implements Client.
func (m *Memory) CreateTemplate(ctx context.Context, tmpl catalog.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "create", Template: tmpl})

	if err := ctx.Err(); err != nil {
		return &RemoteError{Op: "create", Name: tmpl.Name, Message: err.Error(), Err: err}
	}
	if err, ok := m.failCreate[tmpl.Name]; ok {
		return err
	}
	if _, exists := m.templates[tmpl.Name]; exists {
		return fmt.Errorf("create %s: %w", tmpl.Name, ErrConflict)
	}
	m.templates[tmpl.Name] = tmpl
	return nil
}

// UpdateTemplate implements Client.
func (m *Memory) UpdateTemplate(ctx context.Context, tmpl catalog.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "update", Template: tmpl})

	if err := ctx.Err(); err != nil {
		return &RemoteError{Op: "update", Name: tmpl.Name, Message: err.Error(), Err: err}
	}
	if err, ok := m.failUpdate[tmpl.Name]; ok {
		return err
	}
	if _, exists := m.templates[tmpl.Name]; !exists {
		return &RemoteError{Op: "update", Name: tmpl.Name, Code: "TemplateDoesNotExist", Message: "template does not exist", Err: ErrNotFound}
	}
	m.templates[tmpl.Name] = tmpl
	return nil
}

// Get returns the stored template with the given name.
func (m *Memory) Get(name string) (catalog.Template, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[name]
	return t, ok
}

// Names returns the stored template names, sorted.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.templates))
	for name := range m.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calls returns a copy of the request log.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}
