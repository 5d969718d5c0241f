package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event mirrors the JSON that pos-svc writes to the events topic.
type Event struct {
	Type         string    `json:"type"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	EntityID     uuid.UUID `json:"entity_id"`
	Status       string    `json:"status,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// counterFields maps the event types that feed daily stats to their hash field.
var counterFields = map[string]string{
	"order.opened":        "orders_opened",
	"order.item_added":    "items_added",
	"order.sent":          "orders_sent",
	"order.completed":     "orders_completed",
	"waitlist.registered": "waitlist_registered",
	"waitlist.seated":     "waitlist_seated",
	"waitlist.cancelled":  "waitlist_cancelled",
}

// Counters returns the increments the event contributes, or nil if it is not counted.
func (e Event) Counters() map[string]int64 {
	field, ok := counterFields[e.Type]
	if !ok {
		return nil
	}
	delta := int64(1)
	if e.Type == "order.item_added" && e.Quantity > 0 {
		delta = int64(e.Quantity)
	}
	return map[string]int64{field: delta}
}

// Day is the UTC calendar date the event is counted under.
func (e Event) Day() string {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format("2006-01-02")
}
