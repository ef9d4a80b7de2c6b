package main

import (
	"flag"
	"log/slog"

	"github.com/aeg58/crm-v2/ai/analyzer"
	"github.com/aeg58/crm-v2/bot"
	"github.com/aeg58/crm-v2/impl/core"
	"github.com/aeg58/crm-v2/internal/config"
	repository "github.com/aeg58/crm-v2/internal/database"
	"github.com/aeg58/crm-v2/internal/http-server/api"
	"github.com/aeg58/crm-v2/internal/lib/logger"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/service/auth"
	"github.com/aeg58/crm-v2/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			// Route error-level records to the admin chat
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting crm server", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)

	authService := auth.NewAuthService(conf, lg)

	db, err := repository.NewPostgres(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("postgres client")
		return
	}
	authService.SetRepository(db)
	handler.SetRepository(db)
	handler.SetAuthService(authService)
	lg.With(
		slog.String("host", conf.Postgres.Host),
		slog.String("port", conf.Postgres.Port),
		slog.String("user", conf.Postgres.User),
		slog.String("database", conf.Postgres.Database),
	).Info("postgres client initialized")

	ai := analyzer.New(conf, lg)
	handler.SetAnalyzer(ai)
	lg.With(
		sl.Secret("openai_key", conf.OpenAI.ApiKey),
		slog.String("model", conf.OpenAI.Model),
	).Info("analyzer initialized")

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetNotifier(hub)
	lg.Debug("websocket hub started")

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
