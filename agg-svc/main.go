package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mfood/agg-svc/internal/service"
	"mfood/agg-svc/internal/storage"
	"mfood/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	config.SetupLogger(cfg, "agg-svc")

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka)
	if reader == nil {
		log.Fatal().Msg("KAFKA_BROKER is not set")
	}
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb, cfg.Redis.StatsTTL))
	consumer.Start(ctx)
}
