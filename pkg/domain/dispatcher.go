package domain

// Message is a response directive emitted by a handler.
// Empty fields are omitted on the wire.
type Message struct {
	Text       string           `json:"text,omitempty"`
	Image      string           `json:"image,omitempty"`
	Template   string           `json:"template,omitempty"`
	Buttons    []map[string]any `json:"buttons,omitempty"`
	Elements   []map[string]any `json:"elements,omitempty"`
	Attachment any              `json:"attachment,omitempty"`
	Custom     map[string]any   `json:"custom,omitempty"`
	Kwargs     map[string]any   `json:"kwargs,omitempty"`
}

// CollectingDispatcher collects the response directives a handler emits.
// A fresh dispatcher is created for every invocation.
type CollectingDispatcher struct {
	messages []Message
}

// NewCollectingDispatcher returns an empty dispatcher.
func NewCollectingDispatcher() *CollectingDispatcher {
	return &CollectingDispatcher{messages: []Message{}}
}

// UtterMessage appends a message.
func (d *CollectingDispatcher) UtterMessage(msg Message) {
	d.messages = append(d.messages, msg)
}

// Utter appends a plain text message.
func (d *CollectingDispatcher) Utter(text string) {
	d.UtterMessage(Message{Text: text})
}

// UtterTemplate asks the caller to render a response template.
func (d *CollectingDispatcher) UtterTemplate(template string, kwargs map[string]any) {
	d.UtterMessage(Message{Template: template, Kwargs: kwargs})
}

// Messages returns the collected messages in emission order.
func (d *CollectingDispatcher) Messages() []Message {
	out := make([]Message, len(d.messages))
	copy(out, d.messages)
	return out
}
