package entity

// DispatchResult is the outcome of one outbound gateway call. Failures live
// here and nowhere else; the inbound transaction has already committed by
// the time a dispatch runs.
type DispatchResult struct {
	Ok         bool   `json:"ok"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}

// WebhookResult is the router's response to an inbound gateway event.
type WebhookResult struct {
	Status     string `json:"status"` // "ignored" | "ok" | "error"
	Reason     string `json:"reason,omitempty"`
	Mode       string `json:"mode,omitempty"`
	ChatID     string `json:"chat_id,omitempty"`
	BotReplied bool   `json:"bot_replied,omitempty"`
}
