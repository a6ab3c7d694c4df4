package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"AsmiDesk/internal/lib/api/cont"
	"AsmiDesk/internal/lib/api/response"
)

// List returns all chats for the caller, newest activity first.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := cont.GetUser(r.Context())

		chats, err := handler.ListChats(r.Context(), caller)
		if err != nil {
			log.Error("list chats", slog.Any("error", err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list chats"))
			return
		}

		render.JSON(w, r, chats)
	}
}
