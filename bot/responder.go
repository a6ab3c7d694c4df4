package bot

import "context"

// KeywordResponder is the keyword-only reply generator, used when no AI
// backend is configured.
type KeywordResponder struct{}

func (KeywordResponder) Reply(_ context.Context, _ string, text string) string {
	return Classify(text)
}
