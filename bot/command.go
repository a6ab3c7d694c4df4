package bot

import "strings"

// Command verbs accepted from allow-listed administrators. These bypass the
// mode state machine and act on another contact's chat.
const (
	CmdAssign   = "assign"
	CmdUnassign = "unassign"
	CmdReply    = "reply"
)

// Command is a parsed administrator instruction.
type Command struct {
	Verb   string
	Target string
	// Text is the message to deliver, set only for the reply verb.
	Text string
}

// ParseCommand parses an administrator message into a command. Returns
// false when the message is not a recognized command; administrators never
// receive automated replies, so unrecognized input is dropped silently by
// the caller.
func ParseCommand(text string) (Command, bool) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 3)
	if len(parts) == 0 || parts[0] == "" {
		return Command{}, false
	}
	verb := strings.ToLower(parts[0])
	switch verb {
	case CmdAssign, CmdUnassign:
		if len(parts) < 2 {
			return Command{}, false
		}
		return Command{Verb: verb, Target: parts[1]}, true
	case CmdReply:
		if len(parts) < 3 {
			return Command{}, false
		}
		return Command{Verb: verb, Target: parts[1], Text: parts[2]}, true
	}
	return Command{}, false
}
