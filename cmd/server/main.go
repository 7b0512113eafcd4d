package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"clientdesk/internal/config"
	"clientdesk/internal/httpserver"
	"clientdesk/internal/logger"
	"clientdesk/internal/models"
	"clientdesk/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db open failed", "path", cfg.DatabasePath, "error", err)
	}
	if err := db.AutoMigrate(&models.Client{}); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	st := store.New(db)
	sess := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	router := httpserver.NewRouter(st, sess, lg)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Infow("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
