package storage_test

import (
	"context"
	"errors"
	"testing"

	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	events []domain.Event
	err    error
}

func (s *recordingSink) Publish(ctx context.Context, event domain.Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestFanOutDeliversToEverySink(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("broker down")}
	fan := storage.NewFanOut(ok, nil, failing)

	ev := domain.NewEvent(domain.EventOrderSent, uuid.New(), uuid.New(), "sent")
	err := fan.Publish(context.Background(), ev)

	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)
}

func TestNATSSubject(t *testing.T) {
	restID := uuid.New()
	p := storage.NewNATSPublisher(nil, "pos")

	subject := p.Subject(domain.NewEvent(domain.EventWaitlistCalled, restID, uuid.New(), "called"))

	assert.Equal(t, "pos."+restID.String()+".waitlist.called", subject)
}
