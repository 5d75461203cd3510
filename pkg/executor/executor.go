package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/internal/metrics"
	"github.com/aretw0/actionserver/pkg/domain"
	"github.com/aretw0/actionserver/pkg/registry"
)

// Registry is the read side of the action registry.
type Registry interface {
	Lookup(name string) (registry.Entry, bool)
	List() []domain.ActionInfo
}

// Executor dispatches action calls to registered handlers.
// It holds no per-request state and is safe for concurrent use.
type Executor struct {
	registry Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures the Executor.
type Option func(*Executor)

// WithLogger sets the logger for dispatch events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithTimeout bounds every handler invocation. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.timeout = d
	}
}

// New creates an Executor over the given registry.
func New(reg Registry, opts ...Option) *Executor {
	e := &Executor{
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Actions describes the registered actions.
func (e *Executor) Actions() []domain.ActionInfo {
	return e.registry.List()
}

// ValidateCall rejects calls that cannot be dispatched.
func ValidateCall(call *domain.ActionCall) error {
	if call == nil {
		return fmt.Errorf("%w: empty request", domain.ErrMalformedRequest)
	}
	if call.NextAction == "" {
		return fmt.Errorf("%w: missing next_action", domain.ErrMalformedRequest)
	}
	return nil
}

// Run dispatches a single call.
//
// It returns *domain.ActionNotFoundError when the (alias-resolved) name is not
// registered, *domain.ActionRejectedError when the handler declines to run, and
// *domain.ActionExecutionError for any other handler failure, including panics,
// context cancellation and results that cannot be encoded as JSON.
func (e *Executor) Run(ctx context.Context, call *domain.ActionCall) (*domain.ActionResult, error) {
	if err := ValidateCall(call); err != nil {
		return nil, err
	}

	res := ResolveAction(call.NextAction, call.Domain)
	logger := e.logger.With("dispatch_id", uuid.NewString(), "action", res.ActionName)
	if res.Aliased {
		logger = logger.With("alias", res.RequestedName)
	}

	entry, ok := e.registry.Lookup(res.ActionName)
	if !ok {
		logger.Warn("Action not found")
		metrics.ActionsDispatched.WithLabelValues(metrics.UnknownAction, metrics.OutcomeNotFound).Inc()
		return nil, &domain.ActionNotFoundError{ActionName: res.ActionName}
	}

	var args []any
	var kwargs map[string]any
	if entry.Parameterized() {
		var desc *domain.Description
		if entry.Described {
			desc = &entry.Description
		}
		args, kwargs = ResolveParams(desc, res.Args, res.Kwargs)
	} else if res.Aliased && (len(res.Args) > 0 || len(res.Kwargs) > 0) {
		logger.Debug("Discarding params for action without parameters")
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger.Debug("Running action")
	dispatcher := domain.NewCollectingDispatcher()
	start := time.Now()
	events, err := invoke(ctx, entry, dispatcher, call.Tracker, call.Domain, args, kwargs)
	metrics.ActionDuration.WithLabelValues(entry.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		var rejected *domain.ActionRejectedError
		if errors.As(err, &rejected) {
			// handlers may return a shared value, so name a copy
			named := *rejected
			if named.ActionName == "" {
				named.ActionName = entry.Name
			}
			logger.Info("Action rejected execution", "error", err)
			metrics.ActionsDispatched.WithLabelValues(entry.Name, metrics.OutcomeRejected).Inc()
			return nil, &named
		}
		logger.Error("Action failed", "error", err)
		metrics.ActionsDispatched.WithLabelValues(entry.Name, metrics.OutcomeFailed).Inc()
		return nil, &domain.ActionExecutionError{ActionName: entry.Name, Err: err}
	}

	if events == nil {
		events = []domain.Event{}
	}
	result := &domain.ActionResult{
		Events:    events,
		Responses: dispatcher.Messages(),
	}
	if _, err := json.Marshal(result); err != nil {
		logger.Error("Action returned a result that cannot be encoded", "error", err)
		metrics.ActionsDispatched.WithLabelValues(entry.Name, metrics.OutcomeFailed).Inc()
		return nil, &domain.ActionExecutionError{
			ActionName: entry.Name,
			Err:        fmt.Errorf("encode result: %w", err),
		}
	}

	logger.Debug("Action finished", "events", len(events))
	metrics.ActionsDispatched.WithLabelValues(entry.Name, metrics.OutcomeSuccess).Inc()
	return result, nil
}

type outcome struct {
	events []domain.Event
	err    error
}

// invoke runs the handler on its own goroutine so that a panic is contained
// and the caller can stop waiting when ctx is done.
func invoke(
	ctx context.Context,
	entry registry.Entry,
	dispatcher *domain.CollectingDispatcher,
	tracker domain.Tracker,
	dom domain.Domain,
	args []any,
	kwargs map[string]any,
) ([]domain.Event, error) {
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()

		var out outcome
		if entry.Parameterized() {
			out.events, out.err = entry.ParamAction.RunWithParams(ctx, dispatcher, tracker, dom, args, kwargs)
		} else {
			out.events, out.err = entry.Action.Run(ctx, dispatcher, tracker, dom)
		}
		done <- out
	}()

	select {
	case out := <-done:
		return out.events, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
