package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/auth"
	"github.com/BuzzLyutic/task-market/internal/config"
	"github.com/BuzzLyutic/task-market/internal/handler"
	"github.com/BuzzLyutic/task-market/internal/moderation"
	"github.com/BuzzLyutic/task-market/internal/service"
)

func serve(cfg config.Config, logger *zap.Logger, verifier *auth.Verifier, tasks *service.TaskService, mod *moderation.Service) {
	router := handler.NewRouter(handler.RouterConfig{
		Tasks:          handler.NewTaskHandler(tasks, logger),
		Moderation:     handler.NewModerationHandler(mod, logger),
		Content:        handler.NewContentHandler(cfg.WalletMockBalanceCents, logger),
		Verifier:       verifier,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully")
}
