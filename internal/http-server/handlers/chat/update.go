package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/api/response"
)

// Update patches a chat's mode, assignment or counters. This is the
// administrative escape hatch that reopens closed chats.
func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "chatID")

		var req entity.ChatUpdate
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		detail, err := handler.UpdateChat(r.Context(), id, req)
		if err != nil {
			writeChatError(w, r, log, "update chat", err)
			return
		}

		render.JSON(w, r, detail)
	}
}
