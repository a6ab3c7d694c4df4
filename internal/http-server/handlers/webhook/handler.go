package webhook

import (
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"AsmiDesk/internal/lib/sl"
)

// maxBodySize bounds gateway payloads; real events are a few kilobytes.
const maxBodySize = 1 << 20

// Handler ingests gateway events. The endpoint always answers 200 with a
// router result; malformed bodies come back as status "ignored" so the
// gateway never retries garbage.
func Handler(log *slog.Logger, secret string, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("webhook"))

		if secret != "" {
			provided := r.Header.Get("X-Api-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				logger.Warn("webhook rejected: bad api key")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			logger.Error("read webhook body", sl.Err(err))
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		result := handler.HandleInboundEvent(r.Context(), body)

		logger.With(
			slog.String("status", result.Status),
			slog.String("mode", result.Mode),
			slog.Bool("bot_replied", result.BotReplied),
		).Debug("webhook processed")

		render.JSON(w, r, result)
	}
}
