package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"AsmiDesk/internal/lib/api/response"
)

// MarkRead marks every customer message in the chat as read and resets the
// unread counter.
func MarkRead(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "chatID")

		if err := handler.MarkChatRead(r.Context(), id); err != nil {
			writeChatError(w, r, log, "mark chat read", err)
			return
		}

		render.JSON(w, r, response.Ok("Messages marked as read"))
	}
}
