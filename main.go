package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/danielhkuo/classengage/classroom"
	"github.com/danielhkuo/classengage/cliparse"
	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/middleware"
	"github.com/danielhkuo/classengage/router"
	"github.com/danielhkuo/classengage/seed"
)

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	var err error
	ctx := context.Background()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat))

	dialect, err := db.ParseDialect(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("invalid database type", "error", err)
		os.Exit(1)
	}

	// Connect and verify
	dbConn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "dialect", dialect, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn, dialect); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "dialect", dialect)

	if cfg.Seed {
		n, err := seed.Run(ctx, classroom.NewService(dbConn))
		if err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seed complete", "created", n)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
