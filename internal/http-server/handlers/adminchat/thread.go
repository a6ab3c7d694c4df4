package adminchat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"AsmiDesk/internal/lib/api/response"
)

// Thread returns the agent's admin conversation. The mode field is derived
// from the latest message, bot for an empty thread.
func Thread(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID := chi.URLParam(r, "agentID")

		thread, err := handler.GetAdminThread(r.Context(), agentID)
		if err != nil {
			log.Error("get admin thread", slog.Any("error", err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load admin chat"))
			return
		}

		render.JSON(w, r, thread)
	}
}
