package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"AsmiDesk/bot"
	"AsmiDesk/entity"
)

const (
	testAdmin   = "628999@c.us"
	testContact = "628111@c.us"
)

func newTestCore(repo *fakeRepo, disp *fakeDispatcher) *Core {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(log)
	c.SetRepository(repo)
	c.SetDispatcher(disp)
	c.SetResponder(bot.KeywordResponder{})
	c.SetAdmins(testAdmin)
	return c
}

func inboundPayload(from, name, text string) []byte {
	return []byte(fmt.Sprintf(
		`{"messages":[{"from":%q,"from_name":%q,"text":{"body":%q}}]}`,
		from, name, text,
	))
}

func TestInboundFreshContactGetsKeywordReply(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	result := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "Budi", "stok barang habis"))

	if result.Status != "ok" {
		t.Fatalf("status = %q, want ok", result.Status)
	}
	if result.Mode != "bot" {
		t.Errorf("mode = %q, want bot", result.Mode)
	}
	if !result.BotReplied {
		t.Error("expected a bot reply for a keyword message")
	}

	chat := repo.chatByContact(testContact)
	if chat == nil {
		t.Fatal("chat was not created")
	}
	if chat.Mode != entity.ModeBot {
		t.Errorf("chat mode = %q, want bot", chat.Mode)
	}
	if chat.CustomerName != "Budi" {
		t.Errorf("customer name = %q, want Budi", chat.CustomerName)
	}

	msgs := repo.messagesFor(chat.ID)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want inbound plus reply", len(msgs))
	}
	if msgs[0].Sender != entity.SenderCustomer || msgs[1].Sender != entity.SenderAgent {
		t.Errorf("message senders = %q, %q", msgs[0].Sender, msgs[1].Sender)
	}
	if msgs[1].AgentID != "" {
		t.Error("bot reply must not carry an agent id")
	}

	sends := disp.sent()
	if len(sends) != 1 {
		t.Fatalf("dispatched %d sends, want 1", len(sends))
	}
	if sends[0].To != testContact || !strings.Contains(sends[0].Text, "restock") {
		t.Errorf("dispatched %+v", sends[0])
	}
}

func TestInboundAgentModeStaysSilent(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "Budi", "agent"))

	result := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "Budi", "stok habis"))
	if result.Status != "ok" || result.Mode != "agent" {
		t.Fatalf("result = %+v", result)
	}
	if result.BotReplied {
		t.Error("agent mode must suppress automated replies")
	}
	if len(disp.sent()) != 0 {
		t.Errorf("dispatched %d sends, want none", len(disp.sent()))
	}

	chat := repo.chatByContact(testContact)
	msgs := repo.messagesFor(chat.ID)
	// the "agent" trigger and the follow-up, both persisted, neither answered
	if len(msgs) != 2 {
		t.Errorf("messages = %d, want 2 inbound", len(msgs))
	}
}

func TestInboundPauseAndResumeAcks(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	result := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "pause"))
	if result.Mode != "paused" || !result.BotReplied {
		t.Fatalf("pause result = %+v", result)
	}
	sends := disp.sent()
	if len(sends) != 1 || sends[0].Text != bot.PauseAck {
		t.Fatalf("pause sends = %+v", sends)
	}

	result = c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "bot"))
	if result.Mode != "bot" || !result.BotReplied {
		t.Fatalf("resume result = %+v", result)
	}
	sends = disp.sent()
	if len(sends) != 2 || sends[1].Text != bot.ResumeAck {
		t.Fatalf("resume sends = %+v", sends)
	}
}

func TestInboundClosedChatStaysClosed(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	chat, _ := repo.ResolveOrCreateChat(context.Background(), testContact, "", entity.ChannelWhatsApp)
	_ = repo.SetChatMode(context.Background(), chat.ID, entity.ModeClosed)

	result := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "bot"))
	if result.Mode != "closed" || result.BotReplied {
		t.Fatalf("closed chat result = %+v", result)
	}
	if len(disp.sent()) != 0 {
		t.Error("closed chat must not produce outbound sends")
	}
}

func TestInboundHumanCooldownSuppressesReply(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	chat, _ := repo.ResolveOrCreateChat(context.Background(), testContact, "", entity.ChannelWhatsApp)
	_ = repo.TouchHumanReply(context.Background(), chat.ID, time.Now().Add(-10*time.Minute))

	result := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "stok habis"))
	if result.Status != "ok" || result.BotReplied {
		t.Fatalf("cooldown result = %+v", result)
	}
	if len(disp.sent()) != 0 {
		t.Error("cooldown must suppress the automated reply")
	}

	// the keyword mode triggers still work during cooldown
	result = c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "pause"))
	if result.Mode != "paused" || !result.BotReplied {
		t.Fatalf("pause during cooldown = %+v", result)
	}
}

func TestInboundReplyReturnsAfterCooldownExpires(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)
	c.SetCooldown(5 * time.Minute)

	chat, _ := repo.ResolveOrCreateChat(context.Background(), testContact, "", entity.ChannelWhatsApp)
	_ = repo.TouchHumanReply(context.Background(), chat.ID, time.Now().Add(-6*time.Minute))

	result := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "stok habis"))
	if !result.BotReplied {
		t.Fatalf("expected a reply after the cooldown window, got %+v", result)
	}
}

func TestInboundMalformedEventIgnored(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	for _, raw := range []string{`{}`, `{"messages":[]}`, `{"messages":[{"from":"x@c.us"}]}`, `broken`} {
		result := c.HandleInboundEvent(context.Background(), []byte(raw))
		if result.Status != "ignored" {
			t.Errorf("payload %q: status = %q, want ignored", raw, result.Status)
		}
	}
	if len(repo.chats) != 0 {
		t.Error("malformed events must not create chats")
	}
}

func TestInboundNameReplacementHeuristic(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "halo"))
	if got := repo.chatByContact(testContact).CustomerName; got != "628111" {
		t.Fatalf("initial name = %q, want the derived key", got)
	}

	c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "Budi Santoso", "halo lagi"))
	if got := repo.chatByContact(testContact).CustomerName; got != "Budi Santoso" {
		t.Errorf("name = %q, want the pushed display name", got)
	}

	// a later raw-number event must not clobber the human name
	c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "628111", "halo"))
	if got := repo.chatByContact(testContact).CustomerName; got != "Budi Santoso" {
		t.Errorf("name = %q, raw identifier must not overwrite it", got)
	}
}

func TestAdminAssignAndUnassign(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	result := c.HandleInboundEvent(context.Background(),
		inboundPayload(testAdmin, "Admin", "assign "+testContact))
	if result.Status != "ok" || result.Reason != "admin" {
		t.Fatalf("assign result = %+v", result)
	}

	chat := repo.chatByContact(testContact)
	if chat == nil || chat.Mode != entity.ModeAgent {
		t.Fatalf("target chat = %+v, want mode agent", chat)
	}

	sends := disp.sent()
	if len(sends) != 1 || sends[0].To != testAdmin {
		t.Fatalf("assign ack = %+v, want one send to the admin", sends)
	}

	c.HandleInboundEvent(context.Background(),
		inboundPayload(testAdmin, "Admin", "unassign "+testContact))
	if got := repo.chatByContact(testContact).Mode; got != entity.ModeBot {
		t.Errorf("mode after unassign = %q, want bot", got)
	}
}

func TestAdminReplyCommand(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	result := c.HandleInboundEvent(context.Background(),
		inboundPayload(testAdmin, "Admin", "reply "+testContact+" pesanan sedang diproses"))
	if result.Status != "ok" || result.Reason != "admin" {
		t.Fatalf("reply result = %+v", result)
	}

	chat := repo.chatByContact(testContact)
	if chat == nil {
		t.Fatal("target chat was not created")
	}
	if chat.LastHumanReply.IsZero() {
		t.Error("admin reply must stamp the human cooldown")
	}

	msgs := repo.messagesFor(chat.ID)
	if len(msgs) != 1 || msgs[0].Sender != entity.SenderAgent || msgs[0].Text != "pesanan sedang diproses" {
		t.Fatalf("persisted messages = %+v", msgs)
	}

	sends := disp.sent()
	if len(sends) != 1 || sends[0].To != testContact || sends[0].Text != "pesanan sedang diproses" {
		t.Fatalf("dispatched = %+v", sends)
	}

	// the next customer message falls under the cooldown
	inbound := c.HandleInboundEvent(context.Background(), inboundPayload(testContact, "", "stok habis"))
	if inbound.BotReplied {
		t.Error("cooldown after an admin reply must suppress the bot")
	}
}

func TestAdminUnrecognizedCommandDropped(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	c := newTestCore(repo, disp)

	result := c.HandleInboundEvent(context.Background(),
		inboundPayload(testAdmin, "Admin", "halo semuanya apa kabar"))
	if result.Status != "ok" || result.Reason != "admin" {
		t.Fatalf("result = %+v", result)
	}
	if len(repo.chats) != 0 {
		t.Error("unrecognized admin input must not create chats")
	}
	if len(disp.sent()) != 0 {
		t.Error("unrecognized admin input must not produce sends, admins get no automated replies")
	}
}
