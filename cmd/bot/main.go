// Command bot runs the Telegram file-share bot: long polling against the Bot
// API, MongoDB persistence, and a keep-alive HTTP server for hosting
// platforms. The process shuts down cleanly on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-fileshare-bot/internal/bot"
	"github.com/tbourn/go-fileshare-bot/internal/config"
	"github.com/tbourn/go-fileshare-bot/internal/gate"
	httpapi "github.com/tbourn/go-fileshare-bot/internal/http"
	"github.com/tbourn/go-fileshare-bot/internal/notify"
	"github.com/tbourn/go-fileshare-bot/internal/observability"
	"github.com/tbourn/go-fileshare-bot/internal/repo"
	"github.com/tbourn/go-fileshare-bot/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	client, store, err := repo.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("bot api authorization failed")
	}
	log.Info().Str("username", api.Self.UserName).Str("version", version).Msg("bot authorized")

	checker := gate.NewChecker(api, cfg.Telegram.RequiredChannels)
	notifier := notify.NewChannelNotifier(api, cfg.Telegram.NotifyChannelID)
	b := bot.New(api, api.Self, store, checker, notifier, cfg)

	srv := httpapi.NewServer(cfg)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("keep-alive server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("keep-alive server failed")
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.UpdateTimeout
	updates := api.GetUpdatesChan(u)

	// Blocks until the signal context is canceled or the update stream closes.
	b.Run(ctx, updates)

	log.Info().Msg("shutting down")
	api.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("keep-alive server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
}
