package gpt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"AsmiDesk/bot"
	"AsmiDesk/internal/config"
	"AsmiDesk/internal/lib/sl"
)

// Responder generates customer replies with a chat completion and falls
// back to the keyword table on any failure. Callers always get a usable
// reply string; no error ever surfaces from here.
type Responder struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewResponder(conf *config.Config, log *slog.Logger) *Responder {
	if conf.OpenAI.ApiKey == "" {
		return nil
	}
	return &Responder{
		client: openai.NewClient(conf.OpenAI.ApiKey),
		model:  conf.OpenAI.Model,
		log:    log.With(sl.Module("gpt.responder")),
	}
}

const systemPrompt = "Customer support assistant."

// Reply answers a customer message. Contact is included for logging only.
func (r *Responder) Reply(ctx context.Context, contact, text string) string {
	prompt := fmt.Sprintf(
		"You are a helpful customer support assistant. Reply concisely and politely to the user message: %q",
		text,
	)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   250,
		Temperature: 0.2,
	})
	if err != nil {
		r.log.With(
			slog.String("contact", contact),
			sl.Err(err),
		).Warn("chat completion failed, using keyword fallback")
		return bot.Classify(text)
	}
	if len(resp.Choices) == 0 {
		r.log.With(
			slog.String("contact", contact),
		).Warn("empty completion, using keyword fallback")
		return bot.Classify(text)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return bot.Classify(text)
	}
	return reply
}
