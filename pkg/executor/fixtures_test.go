package executor_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/actionserver/pkg/domain"
	"github.com/aretw0/actionserver/pkg/registry"
)

type customAction struct{}

func (customAction) Name() string { return "custom_action" }
func (customAction) Run(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	return []domain.Event{domain.SlotSet("test", "bar")}, nil
}

type customActionWithParams struct{}

func (customActionWithParams) Name() string { return "custom_action_with_params" }
func (customActionWithParams) Description() domain.Description {
	return domain.Description{
		Text: "CustomActionWithParams description",
		Kwargs: []domain.KwargSpec{
			{Name: "test_kwarg1", Description: "kwarg1_description", Type: "int"},
		},
	}
}
func (customActionWithParams) RunWithParams(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain, args []any, kwargs map[string]any) ([]domain.Event, error) {
	return []domain.Event{
		domain.SlotSet("args", fmt.Sprint(args)),
		domain.SlotSet("kwargs", fmt.Sprint(kwargs)),
	}, nil
}

// echoParams declares nothing, so params pass through unfiltered.
var echoParams = domain.NewParamAction("echo_params", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain, args []any, kwargs map[string]any) ([]domain.Event, error) {
	return []domain.Event{
		domain.SlotSet("args", fmt.Sprint(args)),
		domain.SlotSet("kwargs", fmt.Sprint(kwargs)),
	}, nil
})

var errBoom = errors.New("boom")

var failing = domain.NewAction("failing", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	return nil, errBoom
})

var panicking = domain.NewAction("panicking", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	panic("kaboom")
})

var rejecting = domain.NewAction("rejecting", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	return nil, domain.NewActionRejectedError("", "cannot run now")
})

var talking = domain.NewAction("talking", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	d.Utter("hello " + t.SenderID())
	d.UtterTemplate("utter_goodbye", nil)
	return nil, nil
})

var blocking = domain.NewAction("blocking", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
	<-ctx.Done()
	return nil, ctx.Err()
})

func newTestRegistry() *registry.Registry {
	reg := registry.NewRegistry()
	reg.MustRegister(customAction{}, customActionWithParams{}, echoParams, failing, panicking, rejecting, talking, blocking)
	return reg
}

func tracker() domain.Tracker {
	return domain.Tracker{"sender_id": "1", "conversation_id": "default"}
}

func aliasDomain(alias, base string, args []any, kwargs map[string]any) domain.Domain {
	return domain.Domain{
		"actions_params": map[string]any{
			alias: map[string]any{
				"base_action": base,
				"args":        args,
				"kwargs":      kwargs,
			},
		},
	}
}
