package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/metrics"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
)

type RegisterWaitlistInput struct {
	RestaurantID  uuid.UUID `json:"restaurant_id" validate:"required"`
	Name          string    `json:"name" validate:"required,max=50"`
	Phone         string    `json:"phone" validate:"required,max=20"`
	PartySize     int       `json:"party_size" validate:"min=1,max=50"`
	TableToken    string    `json:"table_token"`
	WaitlistToken string    `json:"waitlist_token"`
}

type WaitlistServiceInterface interface {
	Register(ctx context.Context, in RegisterWaitlistInput) (*domain.GuestWaitlistEntry, error)
	Status(ctx context.Context, restaurantID, id uuid.UUID) (*domain.GuestWaitlistEntry, error)
	ListWaiting(ctx context.Context, restaurantID uuid.UUID) ([]domain.GuestWaitlistEntry, error)
	ListForManager(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID, status string) ([]domain.WaitlistEntry, error)
	Call(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error)
	Seat(ctx context.Context, p auth.Principal, id, tableID uuid.UUID) (*domain.WaitlistEntry, *domain.Order, error)
	Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error)
	Cancel(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error)
}

type WaitlistService struct {
	tx          TxRunner
	waitlist    WaitlistRepository
	restaurants RestaurantRepository
	tables      TableRepository
	orders      OrderRepository
	events      EventPublisher
}

func NewWaitlistService(tx TxRunner, waitlist WaitlistRepository, restaurants RestaurantRepository, tables TableRepository, orders OrderRepository, events EventPublisher) *WaitlistService {
	return &WaitlistService{
		tx:          tx,
		waitlist:    waitlist,
		restaurants: restaurants,
		tables:      tables,
		orders:      orders,
		events:      events,
	}
}

func (s *WaitlistService) Register(ctx context.Context, in RegisterWaitlistInput) (*domain.GuestWaitlistEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.TableToken = strings.TrimSpace(in.TableToken)
	in.WaitlistToken = strings.TrimSpace(in.WaitlistToken)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.TableToken == "" && in.WaitlistToken == "" {
		return nil, invalid("table_token or waitlist_token is required")
	}

	rest, err := s.restaurants.GetRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	present, err := s.provesPresence(ctx, rest, in.TableToken, in.WaitlistToken)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, auth.ErrForbidden
	}

	entry := &domain.WaitlistEntry{
		RestaurantID: rest.ID,
		Name:         in.Name,
		Phone:        in.Phone,
		PartySize:    in.PartySize,
		Status:       domain.WaitlistWaiting,
	}
	if err := s.waitlist.CreateWaitlistEntry(ctx, entry); err != nil {
		return nil, err
	}
	publish(ctx, s.events, domain.NewEvent(domain.EventWaitlistRegistered, entry.RestaurantID, entry.ID, string(entry.Status)))

	position, err := s.waitlist.WaitlistPosition(ctx, entry.RestaurantID, entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	view := entry.ForGuest(position)
	return &view, nil
}

func (s *WaitlistService) provesPresence(ctx context.Context, rest *domain.Restaurant, tableToken, waitlistToken string) (bool, error) {
	if waitlistToken != "" && subtle.ConstantTimeCompare([]byte(waitlistToken), []byte(rest.WaitlistToken)) == 1 {
		return true, nil
	}
	if tableToken == "" {
		return false, nil
	}
	table, err := s.tables.GetTableByToken(ctx, tableToken)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return table.RestaurantID == rest.ID, nil
}

// Status reports a single entry; only waiting entries carry a non-zero position.
func (s *WaitlistService) Status(ctx context.Context, restaurantID, id uuid.UUID) (*domain.GuestWaitlistEntry, error) {
	entry, err := s.waitlist.GetWaitlistEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.RestaurantID != restaurantID {
		return nil, storage.ErrNotFound
	}

	position := 0
	if entry.Status == domain.WaitlistWaiting {
		position, err = s.waitlist.WaitlistPosition(ctx, restaurantID, entry.CreatedAt)
		if err != nil {
			return nil, err
		}
	}
	view := entry.ForGuest(position)
	return &view, nil
}

func (s *WaitlistService) ListWaiting(ctx context.Context, restaurantID uuid.UUID) ([]domain.GuestWaitlistEntry, error) {
	entries, err := s.waitlist.ListWaitlist(ctx, restaurantID, []domain.WaitlistStatus{domain.WaitlistWaiting})
	if err != nil {
		return nil, err
	}

	// entries are sorted by created_at, so the position is the index of the first later entry
	views := make([]domain.GuestWaitlistEntry, len(entries))
	next := 0
	for i, e := range entries {
		if next <= i {
			next = i + 1
		}
		for next < len(entries) && !entries[next].CreatedAt.After(e.CreatedAt) {
			next++
		}
		views[i] = e.ForGuest(next)
	}
	return views, nil
}

func (s *WaitlistService) ListForManager(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID, status string) ([]domain.WaitlistEntry, error) {
	rid, err := managerScope(p, restaurantID)
	if err != nil {
		return nil, err
	}

	var statuses []domain.WaitlistStatus
	for _, raw := range strings.Split(status, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		st := domain.WaitlistStatus(raw)
		if !st.Valid() {
			return nil, invalid("unknown waitlist status %q", raw)
		}
		statuses = append(statuses, st)
	}
	return s.waitlist.ListWaitlist(ctx, rid, statuses)
}

func (s *WaitlistService) load(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error) {
	if err := auth.Require(p, domain.RoleManager, nil); err != nil {
		return nil, err
	}
	entry, err := s.waitlist.GetWaitlistEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(p, domain.RoleManager, &entry.RestaurantID); err != nil {
		return nil, err
	}
	return entry, nil
}

// apply performs the action as a conditional write against the stored status.
func (s *WaitlistService) apply(ctx context.Context, entry *domain.WaitlistEntry, action domain.WaitlistAction, tableID *uuid.UUID) error {
	tr, ok := domain.WaitlistTransitionFor(action)
	if !ok {
		return invalid("unknown waitlist action %q", action)
	}
	changed, err := s.waitlist.TransitionWaitlist(ctx, entry.ID, tr.From, tr.To, tableID)
	if err != nil {
		return err
	}
	if !changed {
		return &TransitionError{Entity: "waitlist", Action: string(action), Reason: tr.Reject}
	}
	entry.Status = tr.To
	if tableID != nil {
		entry.TableID = tableID
	}
	return nil
}

func (s *WaitlistService) done(ctx context.Context, entry *domain.WaitlistEntry, action domain.WaitlistAction) {
	metrics.Transitions.WithLabelValues("waitlist", string(action)).Inc()
	publish(ctx, s.events, domain.WaitlistEvent(action, entry))
}

func (s *WaitlistService) Call(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error) {
	return s.simple(ctx, p, id, domain.WaitlistCall)
}

func (s *WaitlistService) Cancel(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error) {
	return s.simple(ctx, p, id, domain.WaitlistCancel)
}

func (s *WaitlistService) simple(ctx context.Context, p auth.Principal, id uuid.UUID, action domain.WaitlistAction) (*domain.WaitlistEntry, error) {
	entry, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, entry, action, nil); err != nil {
		return nil, err
	}
	s.done(ctx, entry, action)
	return entry, nil
}

// Seat moves a called party to a table of the same restaurant and opens that table's
// order in the same transaction.
func (s *WaitlistService) Seat(ctx context.Context, p auth.Principal, id, tableID uuid.UUID) (*domain.WaitlistEntry, *domain.Order, error) {
	if tableID == uuid.Nil {
		return nil, nil, invalid("table_id is required")
	}
	entry, err := s.load(ctx, p, id)
	if err != nil {
		return nil, nil, err
	}

	table, err := s.tables.GetTable(ctx, tableID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && table.RestaurantID != entry.RestaurantID) {
		return nil, nil, invalid("table does not belong to this restaurant")
	}
	if err != nil {
		return nil, nil, err
	}

	var (
		order   *domain.Order
		created bool
	)
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, entry, domain.WaitlistSeat, &table.ID); err != nil {
			return err
		}
		var err error
		order, created, err = getOrCreateOpenOrder(ctx, s.orders, table)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.done(ctx, entry, domain.WaitlistSeat)
	if created {
		publish(ctx, s.events, domain.NewEvent(domain.EventOrderOpened, order.RestaurantID, order.ID, string(order.Status)))
	}
	return entry, order, nil
}

// Complete finishes a seated party and closes its table's open order.
func (s *WaitlistService) Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error) {
	entry, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	var closed *uuid.UUID
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, entry, domain.WaitlistComplete, nil); err != nil {
			return err
		}
		if entry.TableID == nil {
			return nil
		}
		var err error
		closed, err = s.orders.CompleteOpenOrderForTable(ctx, *entry.TableID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.done(ctx, entry, domain.WaitlistComplete)
	if closed != nil {
		metrics.Transitions.WithLabelValues("order", string(domain.OrderComplete)).Inc()
		publish(ctx, s.events, domain.NewEvent(domain.EventOrderCompleted, entry.RestaurantID, *closed, string(domain.OrderCompleted)))
	}
	return entry, nil
}

var _ WaitlistServiceInterface = (*WaitlistService)(nil)
