package service

import (
	"context"

	"mfood/agg-svc/internal/domain"
	"mfood/agg-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	IncrementDaily(ctx context.Context, restaurantID uuid.UUID, date string, counters map[string]int64) error
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, ev domain.Event) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
