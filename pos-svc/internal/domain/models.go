package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleGuest   Role = "guest"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Rank orders roles guest < manager < admin. Unknown roles rank as guest.
func (r Role) Rank() int {
	switch r {
	case RoleManager:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleManager || r == RoleAdmin
}

type Restaurant struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	WaitlistToken string    `json:"waitlist_token,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Identity is a login credential row. The profile row shares its id.
type Identity struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email,omitempty"`
	Role         Role       `json:"role"`
	RestaurantID *uuid.UUID `json:"restaurant_id"`
	DisplayName  string     `json:"display_name"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Table struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Token        string    `json:"token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type TableOverview struct {
	Table
	OpenOrder *Order `json:"open_order"`
}

type MenuCategory struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           uuid.UUID     `json:"id"`
	RestaurantID uuid.UUID     `json:"restaurant_id"`
	CategoryID   *uuid.UUID    `json:"category_id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Price        int64         `json:"price"`
	IsActive     bool          `json:"is_active"`
	ImageURL     string        `json:"image_url"`
	CreatedAt    time.Time     `json:"created_at"`
	OptionGroups []OptionGroup `json:"option_groups,omitempty"`
}

// MenuItemPatch carries a partial update; nil fields are left untouched.
type MenuItemPatch struct {
	Name          *string
	Description   *string
	Price         *int64
	CategoryID    *uuid.UUID
	ClearCategory bool
	ImageURL      *string
	IsActive      *bool
}

func (p MenuItemPatch) Apply(item *MenuItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.ClearCategory {
		item.CategoryID = nil
	} else if p.CategoryID != nil {
		id := *p.CategoryID
		item.CategoryID = &id
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.IsActive != nil {
		item.IsActive = *p.IsActive
	}
}

type OptionGroup struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	MenuItemID   uuid.UUID `json:"menu_item_id"`
	Name         string    `json:"name"`
	MinSelect    int       `json:"min_select"`
	MaxSelect    int       `json:"max_select"`
	IsRequired   bool      `json:"is_required"`
	Options      []Option  `json:"options"`
}

type Option struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	GroupID      uuid.UUID `json:"group_id"`
	Name         string    `json:"name"`
	PriceDelta   int64     `json:"price_delta"`
}

type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderSent      OrderStatus = "sent"
	OrderCompleted OrderStatus = "completed"
)

type Order struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurant_id"`
	TableID      uuid.UUID   `json:"table_id"`
	TableName    string      `json:"table_name,omitempty"`
	Status       OrderStatus `json:"status"`
	TotalAmount  int64       `json:"total_amount"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Items        []OrderItem `json:"items"`
}

// Total returns the stored aggregate, or the sum over the item snapshots when the
// aggregate is zero.
func (o *Order) Total() int64 {
	if o.TotalAmount != 0 {
		return o.TotalAmount
	}
	var sum int64
	for _, item := range o.Items {
		sum += item.LineTotal()
	}
	return sum
}

// MarshalJSON writes Total() as total_amount so every read path shows the fallback sum.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	out := plain(o)
	out.TotalAmount = o.Total()
	return json.Marshal(out)
}

type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	MenuItemID   uuid.UUID `json:"menu_item_id"`
	MenuItemName string    `json:"menu_item_name"`
	Quantity     int       `json:"quantity"`
	UnitPrice    int64     `json:"unit_price"`
	OptionNames  []string  `json:"option_names"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "waiting"
	WaitlistCalled    WaitlistStatus = "called"
	WaitlistSeated    WaitlistStatus = "seated"
	WaitlistCancelled WaitlistStatus = "cancelled"
	WaitlistCompleted WaitlistStatus = "completed"
)

func (s WaitlistStatus) Valid() bool {
	switch s {
	case WaitlistWaiting, WaitlistCalled, WaitlistSeated, WaitlistCancelled, WaitlistCompleted:
		return true
	}
	return false
}

type WaitlistEntry struct {
	ID           uuid.UUID      `json:"id"`
	RestaurantID uuid.UUID      `json:"restaurant_id"`
	Name         string         `json:"name"`
	Phone        string         `json:"-"`
	PartySize    int            `json:"party_size"`
	Status       WaitlistStatus `json:"status"`
	TableID      *uuid.UUID     `json:"table_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// GuestWaitlistEntry is the public projection of an entry.
type GuestWaitlistEntry struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	PartySize int            `json:"party_size"`
	Status    WaitlistStatus `json:"status"`
	Position  int            `json:"position"`
	CreatedAt time.Time      `json:"created_at"`
}

func (e WaitlistEntry) ForGuest(position int) GuestWaitlistEntry {
	return GuestWaitlistEntry{
		ID:        e.ID,
		Name:      MaskName(e.Name),
		PartySize: e.PartySize,
		Status:    e.Status,
		Position:  position,
		CreatedAt: e.CreatedAt,
	}
}

// MenuCatalog is the restaurant-wide guest menu, cached per restaurant.
type MenuCatalog struct {
	RestaurantID   uuid.UUID      `json:"restaurant_id"`
	RestaurantName string         `json:"restaurant_name"`
	Categories     []MenuCategory `json:"categories"`
	Items          []MenuItem     `json:"items"`
}

type GuestMenu struct {
	MenuCatalog
	TableID   uuid.UUID `json:"table_id"`
	TableName string    `json:"table_name"`
}

type DailyStats struct {
	RestaurantID uuid.UUID        `json:"restaurant_id"`
	Date         string           `json:"date"`
	Counters     map[string]int64 `json:"counters"`
}
