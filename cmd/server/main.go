package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studylink/cnxparse/internal/api"
	"github.com/studylink/cnxparse/internal/cnxml"
	"github.com/studylink/cnxparse/internal/config"
	"github.com/studylink/cnxparse/internal/library"
	"github.com/studylink/cnxparse/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	parser := &cnxml.Parser{MaxDepth: cfg.MaxDepth}
	lib := library.New(cfg.BundlePath, parser)
	batch := pipeline.NewBatch(lib, log, cfg.WorkerCount)

	srv := api.NewServer(lib, batch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		httpServer.Close()
	}()

	log.Info("starting cnxparse", "port", cfg.Port, "bundle", cfg.BundlePath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
