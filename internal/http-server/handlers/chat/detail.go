package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"AsmiDesk/impl/core"
	"AsmiDesk/internal/lib/api/response"
)

// Detail returns one chat with its transcript.
func Detail(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "chatID")

		detail, err := handler.GetChatDetail(r.Context(), id)
		if err != nil {
			writeChatError(w, r, log, "get chat detail", err)
			return
		}

		render.JSON(w, r, detail)
	}
}

// writeChatError maps core errors onto API status codes.
func writeChatError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, core.ErrChatNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Chat not found"))
	case errors.Is(err, core.ErrInvalidID):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid chat id"))
	default:
		log.Error(op, slog.Any("error", err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal error"))
	}
}
