package service_test

import (
	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func ptr[T any](v T) *T { return &v }

func managerOf(restaurantID uuid.UUID) auth.Principal {
	return auth.Principal{UserID: ptr(uuid.New()), Role: domain.RoleManager, RestaurantID: ptr(restaurantID)}
}

func admin() auth.Principal {
	return auth.Principal{UserID: ptr(uuid.New()), Role: domain.RoleAdmin}
}

func eventOfType(typ string) interface{} {
	return mock.MatchedBy(func(ev domain.Event) bool { return ev.Type == typ })
}

func expectEvent(events *mocks.EventPublisher, typ string) {
	events.On("Publish", mock.Anything, eventOfType(typ)).Return(nil).Once()
}
