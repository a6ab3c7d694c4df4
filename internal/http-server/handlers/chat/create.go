package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/api/response"
)

// Create creates a chat from the dashboard, idempotent on the contact key.
func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.ChatCreate
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		detail, err := handler.CreateChat(r.Context(), req)
		if err != nil {
			writeChatError(w, r, log, "create chat", err)
			return
		}

		render.JSON(w, r, detail)
	}
}
