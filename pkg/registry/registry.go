package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/pkg/domain"
)

// Entry is a registered handler together with its description,
// computed once at registration time.
type Entry struct {
	Name        string
	Action      domain.Action
	ParamAction domain.ParamAction
	Description domain.Description
	// Described reports whether the handler implemented domain.Describer.
	Described bool
}

// Parameterized reports whether the entry accepts args/kwargs.
func (e Entry) Parameterized() bool { return e.ParamAction != nil }

// Registry manages the available actions.
// It is populated at startup and only read while serving.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
	logger  *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report overwritten registrations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds an action to the registry.
// The value must implement domain.Action or domain.ParamAction; values
// implementing both are treated as parameterized.
// If an action with the same name exists, it is overwritten and a warning is
// logged. The name keeps its original position in List.
func (r *Registry) Register(action any) error {
	entry, err := newEntry(action)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.Name]; exists {
		r.logger.Warn("Action registered twice, keeping the last registration", "action", entry.Name)
	} else {
		r.order = append(r.order, entry.Name)
	}
	r.entries[entry.Name] = entry
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(actions ...any) {
	for _, a := range actions {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// List describes every registered action in registration order.
func (r *Registry) List() []domain.ActionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ActionInfo, 0, len(r.order))
	for _, name := range r.order {
		desc := r.entries[name].Description.Normalized()
		out = append(out, domain.ActionInfo{
			Name:        name,
			Description: desc.Text,
			Args:        desc.Args,
			Kwargs:      desc.Kwargs,
		})
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func newEntry(action any) (Entry, error) {
	var entry Entry
	switch a := action.(type) {
	case nil:
		return entry, fmt.Errorf("%w: nil action", domain.ErrInvalidAction)
	case domain.ParamAction:
		entry.Name = a.Name()
		entry.ParamAction = a
	case domain.Action:
		entry.Name = a.Name()
		entry.Action = a
	default:
		return entry, fmt.Errorf("%w: %T implements neither Action nor ParamAction", domain.ErrInvalidAction, action)
	}

	if entry.Name == "" {
		return Entry{}, fmt.Errorf("%w: %T has an empty name", domain.ErrInvalidAction, action)
	}

	if d, ok := action.(domain.Describer); ok {
		entry.Description = d.Description()
		entry.Described = true
	}
	return entry, nil
}
