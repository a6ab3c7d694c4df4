package bot

import (
	"testing"

	"AsmiDesk/entity"
)

func TestTransitionKeywords(t *testing.T) {
	cases := []struct {
		name     string
		mode     entity.ChatMode
		text     string
		next     entity.ChatMode
		reply    string
		classify bool
	}{
		{"agent from bot", entity.ModeBot, "agent", entity.ModeAgent, "", false},
		{"agent from paused", entity.ModePaused, "agent", entity.ModeAgent, "", false},
		{"pause from bot", entity.ModeBot, "pause", entity.ModePaused, PauseAck, false},
		{"pause from agent", entity.ModeAgent, "pause", entity.ModePaused, PauseAck, false},
		{"bot from agent", entity.ModeAgent, "bot", entity.ModeBot, ResumeAck, false},
		{"bot from paused", entity.ModePaused, "bot", entity.ModeBot, ResumeAck, false},
		{"bot from bot is noop", entity.ModeBot, "bot", entity.ModeBot, "", false},
		{"bot does not reopen closed", entity.ModeClosed, "bot", entity.ModeClosed, "", false},
		{"uppercase trigger", entity.ModeBot, "  PAUSE ", entity.ModePaused, PauseAck, false},
		{"plain text in bot mode", entity.ModeBot, "stok habis", entity.ModeBot, "", true},
		{"plain text in agent mode", entity.ModeAgent, "stok habis", entity.ModeAgent, "", false},
		{"plain text in paused mode", entity.ModePaused, "halo", entity.ModePaused, "", false},
		{"plain text in closed mode", entity.ModeClosed, "halo", entity.ModeClosed, "", false},
	}

	for _, tc := range cases {
		d := Transition(tc.mode, tc.text)
		if d.Next != tc.next {
			t.Errorf("%s: next mode = %q, want %q", tc.name, d.Next, tc.next)
		}
		if d.Reply != tc.reply {
			t.Errorf("%s: reply = %q, want %q", tc.name, d.Reply, tc.reply)
		}
		if d.Classify != tc.classify {
			t.Errorf("%s: classify = %v, want %v", tc.name, d.Classify, tc.classify)
		}
	}
}

func TestTransitionKeywordIsExactToken(t *testing.T) {
	// "bot" embedded in a sentence must not trigger a mode switch
	d := Transition(entity.ModeAgent, "saya mau bicara dengan bot dong")
	if d.Next != entity.ModeAgent || d.Reply != "" {
		t.Errorf("embedded keyword must not switch mode, got next=%q reply=%q", d.Next, d.Reply)
	}
}
