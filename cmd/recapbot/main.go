package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/recapbot/internal/api/espn"
	"github.com/omarshaarawi/recapbot/internal/api/fantasy"
	"github.com/omarshaarawi/recapbot/internal/bot"
	"github.com/omarshaarawi/recapbot/internal/config"
	"github.com/omarshaarawi/recapbot/internal/narrative"
	"github.com/omarshaarawi/recapbot/internal/rankings"
	"github.com/omarshaarawi/recapbot/internal/repository/memory"
	"github.com/omarshaarawi/recapbot/internal/scheduler"
	"github.com/omarshaarawi/recapbot/internal/service"
	"github.com/omarshaarawi/recapbot/internal/web"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	repo := memory.NewRepository()
	if cfg.Rankings.Path != "" {
		records, err := rankings.LoadFile(cfg.Rankings.Path)
		if err != nil {
			return err
		}
		repo.SaveRankings(records)
		slog.Info("Loaded rankings", "path", cfg.Rankings.Path, "players", len(records))
	} else {
		slog.Warn("RANKINGS_FILE not set, analysis will have no ranks or waiver candidates")
	}

	var personas map[narrative.Mode]narrative.Persona
	if cfg.OpenAI.PersonasFile != "" {
		personas, err = narrative.LoadPersonas(cfg.OpenAI.PersonasFile)
		if err != nil {
			return err
		}
	}
	generator := narrative.NewGenerator(narrative.Config{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		Personas: personas,
	})

	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI)
	fantasyService := service.NewFantasyService(fantasyAPI, repo, generator)

	handler, err := web.NewServer(fantasyService, cfg.Server.CORSOrigins)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var telegramBot *bot.TelegramBot
	if cfg.TelegramBot.Enabled() {
		creds := cfg.League.Credentials()
		if err := creds.Validate(); err != nil {
			return err
		}

		telegramBot, err = bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService, creds)
		if err != nil {
			return err
		}

		sched, err := scheduler.NewScheduler(cfg.Schedule.Location, fantasyService, creds, telegramBot.SendMessage)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, Telegram bot and weekly recap disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if telegramBot != nil {
		g.Go(func() error {
			return telegramBot.Start(ctx)
		})
	}

	return g.Wait()
}
