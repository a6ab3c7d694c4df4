package adminchat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/api/response"
)

// Post appends a message to the agent's admin channel. Invalid sender or
// mode values are rejected before any mutation.
func Post(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID := chi.URLParam(r, "agentID")

		var req entity.AdminMessagePost
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		msg, err := handler.PostAdminMessage(r.Context(), agentID, req)
		if err != nil {
			log.Error("post admin message", slog.Any("error", err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to send admin message"))
			return
		}

		render.JSON(w, r, msg)
	}
}
