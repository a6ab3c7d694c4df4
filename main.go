package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"AsmiDesk/ai/gpt"
	"AsmiDesk/bot"
	"AsmiDesk/impl/core"
	"AsmiDesk/internal/config"
	repository "AsmiDesk/internal/database"
	"AsmiDesk/internal/http-server/api"
	"AsmiDesk/internal/lib/logger"
	"AsmiDesk/internal/lib/sl"
	"AsmiDesk/internal/service/dispatch"
	"AsmiDesk/internal/service/gateway"
	"AsmiDesk/internal/service/mail"
	"AsmiDesk/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting asmidesk", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAdmins(conf.Whapi.Admins)
	handler.SetCooldown(time.Duration(conf.Bot.CooldownMinutes) * time.Minute)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		if err := db.EnsureIndexes(context.Background()); err != nil {
			lg.With(
				sl.Err(err),
			).Error("ensure indexes")
		}
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	sender := gateway.NewService(conf, lg)
	dispatcher := dispatch.NewDispatcher(sender, lg)
	handler.SetDispatcher(dispatcher)
	lg.With(
		slog.String("url", conf.Whapi.BaseURL),
		sl.Secret("token", conf.Whapi.Token),
	).Info("gateway sender initialized")

	if conf.Gmail.Enabled {
		mailSender, err := mail.NewService(context.Background(), conf, lg)
		if err != nil {
			lg.With(
				sl.Err(err),
			).Error("gmail sender")
		} else {
			handler.SetMailSender(mailSender)
			lg.With(
				slog.String("from", conf.Gmail.From),
			).Info("gmail sender initialized")
		}
	}

	if responder := gpt.NewResponder(conf, lg); responder != nil {
		handler.SetResponder(responder)
		lg.With(
			sl.Secret("openai_key", conf.OpenAI.ApiKey),
			slog.String("model", conf.OpenAI.Model),
		).Info("ai responder initialized")
	} else {
		handler.SetResponder(bot.KeywordResponder{})
		lg.Info("keyword responder initialized")
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetEventHub(hub)

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
