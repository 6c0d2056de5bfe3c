package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetdesk/internal/config"
	"assetdesk/internal/database"
	"assetdesk/internal/events"
	"assetdesk/internal/mailer"
	"assetdesk/internal/notify"
	"assetdesk/internal/router"
	"assetdesk/internal/ws"
	"assetdesk/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// db
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := database.Bootstrap(context.Background(), pool); err != nil {
		l.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	// optional integrations
	var bus *events.Publisher
	if cfg.NATSURL != "" {
		bus, err = events.Connect(cfg.NATSURL, "assetdesk", l)
		if err != nil {
			l.Fatal().Err(err).Str("url", cfg.NATSURL).Msg("nats connect failed")
		}
		defer bus.Close()
	}

	var mail notify.Mailer
	if m := mailer.New(cfg, l); m != nil {
		mail = m
	}

	hub := ws.NewHub(l)

	// http
	r := router.New(l, pool, cfg, hub, mail, bus)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
