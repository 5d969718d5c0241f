package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventWaitlistRegistered = "waitlist.registered"
	EventWaitlistCalled     = "waitlist.called"
	EventWaitlistSeated     = "waitlist.seated"
	EventWaitlistCompleted  = "waitlist.completed"
	EventWaitlistCancelled  = "waitlist.cancelled"
	EventOrderOpened        = "order.opened"
	EventOrderItemAdded     = "order.item_added"
	EventOrderSent          = "order.sent"
	EventOrderCompleted     = "order.completed"
)

var waitlistEvents = map[WaitlistAction]string{
	WaitlistCall:     EventWaitlistCalled,
	WaitlistSeat:     EventWaitlistSeated,
	WaitlistComplete: EventWaitlistCompleted,
	WaitlistCancel:   EventWaitlistCancelled,
}

var orderEvents = map[OrderAction]string{
	OrderSend:     EventOrderSent,
	OrderComplete: EventOrderCompleted,
}

type Event struct {
	Type         string    `json:"type"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	EntityID     uuid.UUID `json:"entity_id"`
	Status       string    `json:"status,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewEvent(typ string, restaurantID, entityID uuid.UUID, status string) Event {
	return Event{
		Type:         typ,
		RestaurantID: restaurantID,
		EntityID:     entityID,
		Status:       status,
		Timestamp:    time.Now().UTC(),
	}
}

func WaitlistEvent(action WaitlistAction, entry *WaitlistEntry) Event {
	return NewEvent(waitlistEvents[action], entry.RestaurantID, entry.ID, string(entry.Status))
}

func OrderEvent(action OrderAction, order *Order) Event {
	return NewEvent(orderEvents[action], order.RestaurantID, order.ID, string(order.Status))
}
