package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/api/cont"
	"AsmiDesk/internal/lib/api/response"
)

// SendMessage posts a message into a chat. Agent sends without an explicit
// agent_id are attributed to the authenticated caller.
func SendMessage(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.MessageCreate
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		caller := cont.GetUser(r.Context())

		msg, err := handler.SendMessage(r.Context(), req, caller)
		if err != nil {
			writeChatError(w, r, log, "send message", err)
			return
		}

		render.JSON(w, r, msg)
	}
}
