package entity

import "encoding/json"

// InboundEvent is the webhook body posted by the messaging gateway. Only the
// first element of Messages is processed per event.
type InboundEvent struct {
	Messages []InboundMessage `json:"messages"`
	Source   string           `json:"source,omitempty"`
}

// InboundMessage is one gateway message envelope. Gateways disagree on field
// names, so every accepted alternative is declared here and resolved in
// order by SenderKey and MessageText.
type InboundMessage struct {
	From     string      `json:"from"`
	Sender   string      `json:"sender"`
	FromName string      `json:"from_name"`
	Pushname string      `json:"pushname"`
	Text     textPayload `json:"text"`
	Body     string      `json:"body"`
	Message  string      `json:"message"`
}

// textPayload accepts both the structured `{"body": "..."}` shape and a bare
// JSON string.
type textPayload struct {
	Body  string
	Plain string
}

func (t *textPayload) UnmarshalJSON(data []byte) error {
	var obj struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		t.Body = obj.Body
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Plain = s
		return nil
	}
	// unknown shape, treated as absent
	return nil
}

// SenderKey returns the external contact key of the sender, empty if absent.
func (m *InboundMessage) SenderKey() string {
	if m.From != "" {
		return m.From
	}
	return m.Sender
}

// SenderName returns the optional display name supplied by the gateway.
func (m *InboundMessage) SenderName() string {
	if m.FromName != "" {
		return m.FromName
	}
	return m.Pushname
}

// MessageText resolves the message text from the accepted payload shapes,
// first non-empty match wins: nested text object, flat body, flat message,
// bare text string.
func (m *InboundMessage) MessageText() string {
	if m.Text.Body != "" {
		return m.Text.Body
	}
	if m.Body != "" {
		return m.Body
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Text.Plain
}

// ParseInboundEvent decodes a webhook body and extracts the first message
// envelope. It returns false for anything malformed: events without a
// message list, without a sender, or without text. Malformed events are
// ignored by the router, never errored.
func ParseInboundEvent(raw []byte) (sender, name, text string, ok bool) {
	var event InboundEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return "", "", "", false
	}
	if len(event.Messages) == 0 {
		return "", "", "", false
	}
	msg := event.Messages[0]
	sender = msg.SenderKey()
	text = msg.MessageText()
	if sender == "" || text == "" {
		return "", "", "", false
	}
	return sender, msg.SenderName(), text, true
}
