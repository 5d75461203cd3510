package domain

// Event is a single state mutation for the caller to apply to the conversation.
// It serializes as {"event": <kind>, "timestamp": <ts>, ...fields}.
type Event map[string]any

// Event kinds understood by the conversation manager.
const (
	EventSlot                    = "slot"
	EventResetSlots              = "reset_slots"
	EventRestart                 = "restart"
	EventFollowup                = "followup"
	EventRewind                  = "rewind"
	EventUndo                    = "undo"
	EventActionExecutionRejected = "action_execution_rejected"
	EventPause                   = "pause"
	EventResume                  = "resume"
)

func newEvent(kind string, fields map[string]any) Event {
	ev := Event{"event": kind, "timestamp": nil}
	for k, v := range fields {
		ev[k] = v
	}
	return ev
}

// Kind returns the event's kind, or "" if it carries none.
func (e Event) Kind() string {
	kind, _ := e["event"].(string)
	return kind
}

// WithTimestamp returns a copy of the event stamped with ts (seconds since epoch).
func (e Event) WithTimestamp(ts float64) Event {
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}
	out["timestamp"] = ts
	return out
}

// SlotSet sets a slot to a value.
func SlotSet(key string, value any) Event {
	return newEvent(EventSlot, map[string]any{"name": key, "value": value})
}

// AllSlotsReset clears every slot.
func AllSlotsReset() Event {
	return newEvent(EventResetSlots, nil)
}

// Restarted resets the whole conversation.
func Restarted() Event {
	return newEvent(EventRestart, nil)
}

// FollowupAction forces the next action to be name.
func FollowupAction(name string) Event {
	return newEvent(EventFollowup, map[string]any{"name": name})
}

// UserUtteranceReverted undoes everything up to and including the last user message.
func UserUtteranceReverted() Event {
	return newEvent(EventRewind, nil)
}

// ActionReverted undoes the previous action.
func ActionReverted() Event {
	return newEvent(EventUndo, nil)
}

// ActionExecutionRejected tells the caller the named action declined to run.
func ActionExecutionRejected(actionName string) Event {
	return newEvent(EventActionExecutionRejected, map[string]any{"name": actionName})
}

// ConversationPaused stops the bot from responding until resumed.
func ConversationPaused() Event {
	return newEvent(EventPause, nil)
}

// ConversationResumed resumes a paused conversation.
func ConversationResumed() Event {
	return newEvent(EventResume, nil)
}
