package ws

import (
	"log/slog"
	"net/http"

	"AsmiDesk/internal/lib/api/cont"
	"AsmiDesk/internal/ws"
)

// Handler upgrades the connection and subscribes the caller to live chat
// events. Anonymous connections are allowed and tagged as such.
func Handler(log *slog.Logger, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := "anonymous"
		if user := cont.GetUser(r.Context()); user != nil {
			caller = user.ID
		}

		ws.ServeWs(hub, caller, log, w, r)
	}
}
