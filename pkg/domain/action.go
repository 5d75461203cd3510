package domain

import "context"

// Action is a handler that runs without externally supplied parameters.
type Action interface {
	// Name returns the stable, non-empty name the action is registered under.
	Name() string
	Run(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain Domain) ([]Event, error)
}

// ParamAction is a handler that accepts positional and keyword parameters
// supplied by an action-parameter binding.
type ParamAction interface {
	Name() string
	RunWithParams(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain Domain, args []any, kwargs map[string]any) ([]Event, error)
}

// Describer is implemented by handlers that document themselves.
// Description is read once, at registration time.
type Describer interface {
	Description() Description
}

// RunFunc is the function form of Action.Run.
type RunFunc func(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain Domain) ([]Event, error)

// RunWithParamsFunc is the function form of ParamAction.RunWithParams.
type RunWithParamsFunc func(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain Domain, args []any, kwargs map[string]any) ([]Event, error)

// ActionFunc adapts a function into an Action.
type ActionFunc struct {
	ActionName string
	Desc       Description
	Fn         RunFunc
}

// NewAction builds an Action from a function.
func NewAction(name string, fn RunFunc) *ActionFunc {
	return &ActionFunc{ActionName: name, Fn: fn}
}

// WithDescription attaches a description to the action.
func (a *ActionFunc) WithDescription(desc Description) *ActionFunc {
	a.Desc = desc
	return a
}

func (a *ActionFunc) Name() string { return a.ActionName }

func (a *ActionFunc) Description() Description { return a.Desc }

func (a *ActionFunc) Run(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain Domain) ([]Event, error) {
	return a.Fn(ctx, dispatcher, tracker, domain)
}

// ParamActionFunc adapts a function into a ParamAction.
type ParamActionFunc struct {
	ActionName string
	Desc       Description
	Fn         RunWithParamsFunc
}

// NewParamAction builds a ParamAction from a function.
func NewParamAction(name string, fn RunWithParamsFunc) *ParamActionFunc {
	return &ParamActionFunc{ActionName: name, Fn: fn}
}

// WithDescription attaches a description to the action.
func (a *ParamActionFunc) WithDescription(desc Description) *ParamActionFunc {
	a.Desc = desc
	return a
}

func (a *ParamActionFunc) Name() string { return a.ActionName }

func (a *ParamActionFunc) Description() Description { return a.Desc }

func (a *ParamActionFunc) RunWithParams(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain Domain, args []any, kwargs map[string]any) ([]Event, error) {
	return a.Fn(ctx, dispatcher, tracker, domain, args, kwargs)
}
