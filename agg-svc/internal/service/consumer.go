package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mfood/agg-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrInvalidEvent marks events that can never be counted; they are skipped, not retried.
var ErrInvalidEvent = errors.New("invalid event")

type Consumer struct {
	Reader     MessageReader
	Store      StoreInterface
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader:     reader,
		Store:      store,
		RetryDelay: time.Second,
	}
}

// Start reads until ctx is cancelled. An offset is committed only once its event
// has been counted or found to be uncountable.
func (c *Consumer) Start(ctx context.Context) {
	log.Info().Msg("Starting aggregation consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Aggregation consumer stopped")
				return
			}
			log.Error().Err(err).Msg("Error reading message")
			c.wait(ctx)
			continue
		}

		var ev domain.Event
		if err := json.Unmarshal(message.Value, &ev); err != nil {
			log.Warn().Err(err).Int64("offset", message.Offset).Msg("Error unmarshaling event")
		} else if !c.processWithRetry(ctx, ev) {
			return
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Int64("offset", message.Offset).Msg("Error committing message")
		}
	}
}

// processWithRetry reports false when ctx ended before the event was handled.
func (c *Consumer) processWithRetry(ctx context.Context, ev domain.Event) bool {
	for {
		err := c.Process(ctx, ev)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrInvalidEvent) {
			log.Warn().Err(err).Str("event", ev.Type).Msg("Skipping event")
			return true
		}
		log.Error().Err(err).
			Str("event", ev.Type).
			Str("restaurant_id", ev.RestaurantID.String()).
			Msg("Error updating daily stats")
		if !c.wait(ctx) {
			return false
		}
	}
}

func (c *Consumer) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.RetryDelay):
		return true
	}
}

func (c *Consumer) Process(ctx context.Context, ev domain.Event) error {
	counters := ev.Counters()
	if counters == nil {
		return nil
	}
	if ev.RestaurantID == uuid.Nil {
		return fmt.Errorf("%w: no restaurant_id", ErrInvalidEvent)
	}

	if err := c.Store.IncrementDaily(ctx, ev.RestaurantID, ev.Day(), counters); err != nil {
		return err
	}
	log.Debug().Str("event", ev.Type).Str("restaurant_id", ev.RestaurantID.String()).Msg("Counted event")
	return nil
}
