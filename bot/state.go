package bot

import (
	"strings"

	"AsmiDesk/entity"
)

// Mode switch acknowledgments sent back to the customer.
const (
	PauseAck  = "Bot dihentikan sementara."
	ResumeAck = "Bot diaktifkan kembali."
)

// Decision is the outcome of feeding one customer message through the mode
// state machine.
type Decision struct {
	Next entity.ChatMode
	// Reply is the fixed acknowledgment to persist and dispatch, empty for
	// silent transitions.
	Reply string
	// Classify tells the router to hand the text to the reply classifier.
	// Only set when the chat stays in bot mode on a non-keyword message.
	Classify bool
}

// Transition is the pure mode transition function for customer-sent text.
//
// Triggers are case-insensitive exact tokens:
//
//	any mode        + "agent" -> agent, silence (a human takes over)
//	any mode        + "pause" -> paused, pause acknowledgment
//	agent or paused + "bot"   -> bot, resume acknowledgment
//	bot             + other   -> bot, defer to the classifier
//	other modes     + other   -> unchanged, no reply
//
// closed is terminal for the bot: no keyword reactivates it, only an
// administrative mode update does.
func Transition(mode entity.ChatMode, text string) Decision {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "agent":
		return Decision{Next: entity.ModeAgent}
	case "pause":
		return Decision{Next: entity.ModePaused, Reply: PauseAck}
	case "bot":
		if mode == entity.ModeAgent || mode == entity.ModePaused {
			return Decision{Next: entity.ModeBot, Reply: ResumeAck}
		}
		return Decision{Next: mode}
	}
	if mode == entity.ModeBot {
		return Decision{Next: mode, Classify: true}
	}
	return Decision{Next: mode}
}
