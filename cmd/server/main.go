package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/campusmart/campus_market/internal/config"
	"github.com/campusmart/campus_market/internal/es"
	"github.com/campusmart/campus_market/internal/httpserver"
	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/logging"
	loggingmw "github.com/campusmart/campus_market/internal/middleware/logging"
	"github.com/campusmart/campus_market/internal/mykafka"
	"github.com/campusmart/campus_market/internal/repo"
	"github.com/campusmart/campus_market/internal/service"
)

const productIndex = "products"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Error("db init failed", "error", err)
		os.Exit(1)
	}

	producer := mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})

	var events service.Publisher
	if cfg.KAFKA_ADDRESS != "" {
		events = producer
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		// Search degrades to 503, everything else keeps working.
		log.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	hub := live.NewHub()

	store := &repo.GormRepo{DB: db}

	jwtSecret := []byte(cfg.JWT_SECRET)
	refreshSecret := []byte(cfg.REFRESH_SECRET)

	authSvc := &service.AuthService{Repo: store, Events: events, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	tokenSvc := &service.TokenService{Repo: store, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	productSvc := &service.ProductService{Repo: store, Events: events, ES: esClient, Index: productIndex}
	cartSvc := &service.CartService{Repo: store, Events: events, Hub: hub}
	purchaseSvc := &service.PurchaseService{Repo: store, Events: events, Hub: hub}
	notificationSvc := &service.NotificationService{Repo: store, Events: events, Hub: hub}
	reportSvc := &service.ReportService{Repo: store, Events: events, Hub: hub}
	chatSvc := &service.ChatService{Repo: store, Hub: hub}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(log))

	httpserver.Register(e, httpserver.Deps{
		Auth:          &httpserver.AuthHTTP{Svc: authSvc},
		Products:      &httpserver.ProductHTTP{Svc: productSvc},
		Search:        &httpserver.SearchHTTP{ES: esClient, Index: productIndex},
		Cart:          &httpserver.CartHTTP{Svc: cartSvc},
		Purchases:     &httpserver.PurchaseHTTP{Svc: purchaseSvc},
		Notifications: &httpserver.NotificationHTTP{Svc: notificationSvc, Hub: hub},
		Reports:       &httpserver.ReportHTTP{Svc: reportSvc},
		Chat:          &httpserver.ChatHTTP{Svc: chatSvc},
		Tokens:        tokenSvc,
	})

	port := cfg.SERVER_PORT
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Error("kafka close error", "error", err)
	}

	log.Info("shutdown complete")
}
