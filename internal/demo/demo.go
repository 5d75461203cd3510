// Package demo ships a handful of sample actions so the server binary is
// usable out of the box. Importing it registers them under the "demo" and
// "demo.params" specifiers.
package demo

import (
	"context"
	"fmt"

	"github.com/aretw0/actionserver/pkg/catalog"
	"github.com/aretw0/actionserver/pkg/domain"
)

const (
	Specifier       = "demo"
	ParamsSpecifier = "demo.params"
)

func init() {
	catalog.Register(Specifier, Greet(), Restart())
	catalog.Register(ParamsSpecifier, SetSlot(), Remind())
}

// Greet utters a greeting to the sender and records that it did.
func Greet() domain.Action {
	return domain.NewAction("action_greet", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
		name := t.SenderID()
		if v, ok := t.Slot("name"); ok {
			if s, ok := v.(string); ok && s != "" {
				name = s
			}
		}
		if name == "" {
			name = "there"
		}
		d.Utter(fmt.Sprintf("Hello, %s!", name))
		return []domain.Event{domain.SlotSet("greeted", true)}, nil
	}).WithDescription(domain.Description{Text: "Greets the user by slot name or sender id"})
}

// Restart resets the conversation.
func Restart() domain.Action {
	return domain.NewAction("action_restart", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain) ([]domain.Event, error) {
		d.UtterTemplate("utter_restarted", nil)
		return []domain.Event{domain.Restarted(), domain.AllSlotsReset()}, nil
	}).WithDescription(domain.Description{Text: "Restarts the conversation and clears every slot"})
}

// SetSlot sets the slot named by the first positional parameter to the
// "value" keyword parameter.
func SetSlot() domain.ParamAction {
	return domain.NewParamAction("action_set_slot", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain, args []any, kwargs map[string]any) ([]domain.Event, error) {
		if len(args) == 0 {
			return nil, domain.NewActionRejectedError("action_set_slot", "a slot name is required")
		}
		slot, ok := args[0].(string)
		if !ok || slot == "" {
			return nil, domain.NewActionRejectedError("action_set_slot", "slot name must be a string")
		}
		return []domain.Event{domain.SlotSet(slot, kwargs["value"])}, nil
	}).WithDescription(domain.Description{
		Text: "Sets a slot to a value",
		Args: []domain.ArgSpec{{Description: "slot name", Type: "string"}},
		Kwargs: []domain.KwargSpec{
			{Name: "value", Description: "new slot value", Type: "any"},
		},
	})
}

// Remind utters a reminder and schedules a followup action.
func Remind() domain.ParamAction {
	return domain.NewParamAction("action_remind", func(ctx context.Context, d *domain.CollectingDispatcher, t domain.Tracker, dom domain.Domain, args []any, kwargs map[string]any) ([]domain.Event, error) {
		text, _ := kwargs["text"].(string)
		if text == "" {
			text = "Don't forget!"
		}
		d.Utter(text)

		events := []domain.Event{}
		if next, ok := kwargs["followup"].(string); ok && next != "" {
			events = append(events, domain.FollowupAction(next))
		}
		return events, nil
	}).WithDescription(domain.Description{
		Text: "Utters a reminder and optionally triggers a followup action",
		Kwargs: []domain.KwargSpec{
			{Name: "text", Description: "reminder text", Type: "string"},
			{Name: "followup", Description: "action to run next", Type: "string"},
		},
	})
}
