package entity

import (
	"AsmiDesk/internal/lib/validate"
	"net/http"
)

// AdminMessagePost is the request body for posting into an agent's admin
// side-channel. Sender and mode are validated before any mutation.
type AdminMessagePost struct {
	Text       string        `json:"text" validate:"required"`
	Sender     AdminSender   `json:"sender" validate:"required,oneof=agent admin"`
	SenderName string        `json:"sender_name" validate:"omitempty"`
	Mode       AdminChatMode `json:"mode" validate:"required,oneof=bot manual"`
}

func (p *AdminMessagePost) Bind(_ *http.Request) error {
	return validate.Struct(p)
}
