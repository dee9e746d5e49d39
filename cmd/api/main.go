package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/victor-devv/todo-list/internal/config"
	"github.com/victor-devv/todo-list/internal/db"
	"github.com/victor-devv/todo-list/internal/es"
	"github.com/victor-devv/todo-list/internal/events"
	"github.com/victor-devv/todo-list/internal/httpserver"
	"github.com/victor-devv/todo-list/internal/logging"
	loggingmw "github.com/victor-devv/todo-list/internal/middleware/logging"
	"github.com/victor-devv/todo-list/internal/repo"
	"github.com/victor-devv/todo-list/internal/service"
	"github.com/victor-devv/todo-list/internal/tokens"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	tokenSvc := tokens.NewService(cfg.JWTSecret, cfg.TokenTTL)
	gormRepo := &repo.GormRepo{DB: gormDB}

	authSvc := &service.AuthService{Repo: gormRepo, Tokens: tokenSvc, Producer: producer}
	userSvc := &service.UserService{Repo: gormRepo}
	todoSvc := &service.TodoService{Repo: gormRepo, ES: esClient, Producer: producer}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: authSvc},
		UserHandler: &httpserver.UserHTTP{Svc: userSvc},
		TodoHandler: &httpserver.TodoHTTP{Svc: todoSvc},
		Tokens:      tokenSvc,
	})

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
