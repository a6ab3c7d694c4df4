package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"AsmiDesk/internal/config"
	"AsmiDesk/internal/http-server/handlers/adminchat"
	"AsmiDesk/internal/http-server/handlers/chat"
	"AsmiDesk/internal/http-server/handlers/errors"
	"AsmiDesk/internal/http-server/handlers/webhook"
	wshandler "AsmiDesk/internal/http-server/handlers/ws"
	"AsmiDesk/internal/http-server/middleware/authenticate"
	"AsmiDesk/internal/http-server/middleware/timeout"
	"AsmiDesk/internal/lib/sl"
	"AsmiDesk/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	webhook.Core
	chat.Core
	adminchat.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(15))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(authenticate.New(log, conf.Auth.JwtSecret))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/webhook", func(r chi.Router) {
			r.Post("/whapi", webhook.Handler(log, conf.Whapi.WebhookSecret, handler))
		})
		v1.Route("/chats", func(r chi.Router) {
			r.Get("/", chat.List(log, handler))
			r.Post("/", chat.Create(log, handler))
			r.Post("/messages", chat.SendMessage(log, handler))
			r.Get("/{chatID}", chat.Detail(log, handler))
			r.Patch("/{chatID}", chat.Update(log, handler))
			r.Post("/{chatID}/read", chat.MarkRead(log, handler))
		})
		v1.Route("/admin-chat", func(r chi.Router) {
			r.Get("/{agentID}", adminchat.Thread(log, handler))
			r.Post("/{agentID}", adminchat.Post(log, handler))
		})
		v1.Get("/ws", wshandler.Handler(log, hub))
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
