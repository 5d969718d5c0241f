package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mfood/config"
	httpapi "mfood/pos-svc/internal/api/http"
	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/metrics"
	"mfood/pos-svc/internal/service"
	"mfood/pos-svc/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	config.SetupLogger(cfg, "pos-svc")
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	db := config.MustInitPostgres(cfg.Database)
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := storage.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()
	cache := storage.NewRedisCache(rdb, cfg.Redis.MenuTTL)

	hub := httpapi.NewHub()
	defer hub.Close()

	sinks := []storage.EventSink{hub}
	if writer := config.NewKafkaWriter(cfg.Kafka); writer != nil {
		defer writer.Close()
		sinks = append(sinks, storage.NewKafkaPublisher(writer))
	}
	nc, err := config.ConnectNATS(cfg.NATS, "pos-svc")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to NATS")
	}
	if nc != nil {
		defer nc.Drain()
		sinks = append(sinks, storage.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix))
	}
	events := storage.NewFanOut(sinks...)

	repo := storage.NewPostgresRepository(db)
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	resolver := auth.NewResolver(repo, jwtManager)

	staff := service.NewStaffService(repo, repo, repo)
	if err := staff.EnsureAdmin(context.Background(), cfg.Bootstrap.Email, cfg.Bootstrap.Password); err != nil {
		log.Fatal().Err(err).Msg("Failed to create bootstrap admin")
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Auth:        service.NewAuthService(repo, jwtManager),
		Waitlist:    service.NewWaitlistService(repo, repo, repo, repo, repo, events),
		Orders:      service.NewOrderService(repo, repo, repo, repo, events),
		Menu:        service.NewMenuService(repo, repo, repo, repo, cache, cfg.UploadDir),
		Tables:      service.NewTableService(repo, repo, repo, cache, service.DefaultQRGenerator{}, cfg.PublicBaseURL),
		Restaurants: service.NewRestaurantService(repo, cache, cache),
		Staff:       staff,
	}, hub, resolver, cfg.IsDevelopment())

	metrics.Register(prometheus.DefaultRegisterer)

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler, cfg.UploadDir))

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("POS service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
