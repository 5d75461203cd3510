package actionserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/internal/metrics"
	httpAdapter "github.com/aretw0/actionserver/pkg/adapters/http"
	"github.com/aretw0/actionserver/pkg/adapters/mcp"
	"github.com/aretw0/actionserver/pkg/catalog"
	"github.com/aretw0/actionserver/pkg/domain"
	"github.com/aretw0/actionserver/pkg/executor"
	"github.com/aretw0/actionserver/pkg/registry"
)

// Engine is the high-level entry point of the library. It owns the registry
// built at startup and the executor that dispatches calls against it.
type Engine struct {
	registry      *registry.Registry
	executor      *executor.Executor
	catalog       *catalog.Catalog
	specifier     string
	discover      bool
	actions       []any
	actionTimeout time.Duration
	logger        *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithActionsPackage loads the actions registered in the catalog under
// specifier (and its dotted sub-packages). An empty specifier loads every
// known package.
func WithActionsPackage(specifier string) Option {
	return func(e *Engine) {
		e.specifier = specifier
		e.discover = true
	}
}

// WithCatalog replaces the process-wide catalog used for discovery.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithActions registers handlers directly, after any discovered package.
func WithActions(actions ...any) Option {
	return func(e *Engine) {
		e.actions = append(e.actions, actions...)
	}
}

// WithActionTimeout bounds every dispatch. Zero means no bound.
func WithActionTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.actionTimeout = d
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New discovers and registers the configured actions. It fails with
// domain.ErrInvalidActionsSpecifier when the package cannot be found, so
// callers can abort before binding a port.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{catalog: catalog.Default()}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.registry = registry.NewRegistry(registry.WithLogger(eng.logger))

	handlers := make([]any, 0, len(eng.actions))
	if eng.discover {
		found, err := eng.catalog.Discover(eng.specifier)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, found...)
	}
	handlers = append(handlers, eng.actions...)

	for _, h := range handlers {
		if err := eng.registry.Register(h); err != nil {
			return nil, fmt.Errorf("register action: %w", err)
		}
	}
	metrics.RegisteredActions.Set(float64(eng.registry.Len()))

	if eng.discover {
		eng.logger.Info("Registered actions", "package", eng.specifier, "count", eng.registry.Len())
	}
	for _, name := range eng.registry.Names() {
		eng.logger.Debug("Registered action", "action", name)
	}

	eng.executor = executor.New(eng.registry,
		executor.WithLogger(eng.logger),
		executor.WithTimeout(eng.actionTimeout),
	)
	return eng, nil
}

// Run dispatches a single action call.
func (e *Engine) Run(ctx context.Context, call *domain.ActionCall) (*domain.ActionResult, error) {
	return e.executor.Run(ctx, call)
}

// Actions lists the registered actions in registration order.
func (e *Engine) Actions() []domain.ActionInfo {
	return e.executor.Actions()
}

// Registry returns the underlying registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// HTTPHandler builds the webhook HTTP handler.
func (e *Engine) HTTPHandler(opts ...httpAdapter.Option) http.Handler {
	opts = append([]httpAdapter.Option{httpAdapter.WithLogger(e.logger)}, opts...)
	return httpAdapter.NewHandler(e.executor, opts...)
}

// MCPServer builds an MCP server exposing every action as a tool.
func (e *Engine) MCPServer() *mcp.Server {
	return mcp.NewServer(e.executor, Version, mcp.WithLogger(e.logger))
}
