package domain

// Tracker is the conversation state snapshot sent by the caller.
// It is passed through to handlers untouched.
type Tracker map[string]any

// Domain is the assistant configuration sent by the caller.
// Besides being passed to handlers, it may carry the actions_params alias table.
type Domain map[string]any

// SenderID returns the conversation's sender id, if present.
func (t Tracker) SenderID() string {
	id, _ := t["sender_id"].(string)
	return id
}

// Slot returns the current value of a slot.
func (t Tracker) Slot(name string) (any, bool) {
	slots, ok := t["slots"].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := slots[name]
	return v, ok
}

// LatestMessage returns the last user message, or nil.
func (t Tracker) LatestMessage() map[string]any {
	msg, _ := t["latest_message"].(map[string]any)
	return msg
}

// ActionParams is a request-scoped binding of an invocation name to a base
// action and fixed call parameters.
type ActionParams struct {
	BaseAction string         `json:"base_action" mapstructure:"base_action"`
	Args       []any          `json:"args" mapstructure:"args"`
	Kwargs     map[string]any `json:"kwargs" mapstructure:"kwargs"`
}

// ActionCall is a single dispatch request.
type ActionCall struct {
	NextAction string  `json:"next_action"`
	SenderID   string  `json:"sender_id,omitempty"`
	Tracker    Tracker `json:"tracker"`
	Domain     Domain  `json:"domain,omitempty"`
	Version    string  `json:"version,omitempty"`
}

// ActionResult is the normalized outcome of a successful dispatch.
type ActionResult struct {
	Events    []Event   `json:"events"`
	Responses []Message `json:"responses"`
}
