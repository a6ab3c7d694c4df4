package entity

import "testing"

func TestNewAdminThreadMode(t *testing.T) {
	empty := NewAdminThread("agent-1", nil)
	if empty.Mode != AdminModeBot {
		t.Errorf("empty thread mode = %q, want bot", empty.Mode)
	}
	if empty.Messages == nil || len(empty.Messages) != 0 {
		t.Error("empty thread must carry an empty, non-nil message slice")
	}

	history := []AdminMessage{
		{AgentID: "agent-1", Text: "halo", Sender: AdminSideAgent, Mode: AdminModeBot},
		{AgentID: "agent-1", Text: "saya ambil alih", Sender: AdminSideAdmin, Mode: AdminModeManual},
	}
	thread := NewAdminThread("agent-1", history)
	if thread.Mode != AdminModeManual {
		t.Errorf("thread mode = %q, want the latest message's mode", thread.Mode)
	}

	// mode follows the last message even when an earlier one was manual
	history = append(history, AdminMessage{AgentID: "agent-1", Text: "lanjut bot", Sender: AdminSideAdmin, Mode: AdminModeBot})
	if got := NewAdminThread("agent-1", history).Mode; got != AdminModeBot {
		t.Errorf("thread mode = %q, want bot after the last message", got)
	}
}
