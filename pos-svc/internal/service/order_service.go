package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/metrics"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
)

type OrderItemInput struct {
	MenuItemID uuid.UUID   `json:"menu_item_id" validate:"required"`
	Quantity   int         `json:"quantity" validate:"min=1,max=99"`
	Note       string      `json:"note" validate:"max=200"`
	OptionIDs  []uuid.UUID `json:"option_ids" validate:"max=20"`
	UnitPrice  *int64      `json:"unit_price,omitempty" validate:"omitempty,min=0"`
}

// GuestOrderInput accepts either a single item inline or an items list.
type GuestOrderInput struct {
	Token      string           `json:"token" validate:"required"`
	MenuItemID *uuid.UUID       `json:"menu_item_id"`
	Quantity   int              `json:"quantity"`
	Note       string           `json:"note"`
	OptionIDs  []uuid.UUID      `json:"option_ids"`
	Items      []OrderItemInput `json:"items" validate:"max=50"`
}

func (in GuestOrderInput) lines() []OrderItemInput {
	lines := in.Items
	if len(lines) == 0 && in.MenuItemID != nil {
		lines = []OrderItemInput{{
			MenuItemID: *in.MenuItemID,
			Quantity:   in.Quantity,
			Note:       in.Note,
			OptionIDs:  in.OptionIDs,
		}}
	}
	out := make([]OrderItemInput, len(lines))
	for i, l := range lines {
		l.UnitPrice = nil
		out[i] = l
	}
	return out
}

type OrderServiceInterface interface {
	PlaceGuestOrder(ctx context.Context, in GuestOrderInput) (*domain.Order, error)
	AddItems(ctx context.Context, p auth.Principal, orderID uuid.UUID, items []OrderItemInput) (*domain.Order, error)
	ListActive(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID) ([]domain.Order, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error)
	Send(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error)
	Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error)
	TablesOverview(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID) ([]domain.TableOverview, error)
}

type OrderService struct {
	tx     TxRunner
	orders OrderRepository
	tables TableRepository
	menu   MenuRepository
	events EventPublisher
}

func NewOrderService(tx TxRunner, orders OrderRepository, tables TableRepository, menu MenuRepository, events EventPublisher) *OrderService {
	return &OrderService{tx: tx, orders: orders, tables: tables, menu: menu, events: events}
}

func (s *OrderService) PlaceGuestOrder(ctx context.Context, in GuestOrderInput) (*domain.Order, error) {
	in.Token = strings.TrimSpace(in.Token)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	lines := in.lines()
	if len(lines) == 0 {
		return nil, invalid("menu_item_id or items is required")
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	table, err := s.tables.GetTableByToken(ctx, in.Token)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	var (
		orderID uuid.UUID
		created bool
		added   []domain.OrderItem
	)
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		order, isNew, err := getOrCreateOpenOrder(ctx, s.orders, table)
		if err != nil {
			return err
		}
		orderID, created = order.ID, isNew
		added, err = s.addLines(ctx, order, lines)
		return err
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if created {
		publish(ctx, s.events, domain.NewEvent(domain.EventOrderOpened, order.RestaurantID, order.ID, string(domain.OrderOpen)))
	}
	s.publishItems(ctx, order, added)
	return order, nil
}

// AddItems appends to an open order on behalf of staff, who may override unit prices.
func (s *OrderService) AddItems(ctx context.Context, p auth.Principal, orderID uuid.UUID, items []OrderItemInput) (*domain.Order, error) {
	if err := auth.Require(p, domain.RoleManager, nil); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalid("items is required")
	}
	if len(items) > 50 {
		return nil, invalid("items must be at most 50")
	}
	if err := validateLines(items); err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(p, domain.RoleManager, &order.RestaurantID); err != nil {
		return nil, err
	}
	if order.Status != domain.OrderOpen {
		return nil, &TransitionError{Entity: "order", Action: "add_items", Reason: "order is not open"}
	}

	var added []domain.OrderItem
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		added, err = s.addLines(ctx, order, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	order, err = s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publishItems(ctx, order, added)
	return order, nil
}

func validateLines(lines []OrderItemInput) error {
	for i := range lines {
		if lines[i].Quantity == 0 {
			lines[i].Quantity = 1
		}
		lines[i].Note = strings.TrimSpace(lines[i].Note)
		if err := validateStruct(lines[i]); err != nil {
			return err
		}
	}
	return nil
}

// addLines snapshots name, unit price and option names for each line and inserts it.
func (s *OrderService) addLines(ctx context.Context, order *domain.Order, lines []OrderItemInput) ([]domain.OrderItem, error) {
	added := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		item, err := s.menu.GetItem(ctx, order.RestaurantID, line.MenuItemID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("menu item %s: %w", line.MenuItemID, storage.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if !item.IsActive {
			return nil, invalid("%s is not available", item.Name)
		}

		groups, err := s.menu.ListOptionGroups(ctx, []uuid.UUID{item.ID})
		if err != nil {
			return nil, err
		}
		sel, err := domain.SelectOptions(groups, line.OptionIDs)
		if err != nil {
			return nil, invalid("%s", err.Error())
		}

		unitPrice := item.Price + sel.PriceDelta
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}

		row := domain.OrderItem{
			OrderID:      order.ID,
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			Quantity:     line.Quantity,
			UnitPrice:    unitPrice,
			OptionNames:  sel.Names,
			Note:         line.Note,
		}
		err = s.orders.InsertOrderItem(ctx, &row)
		if errors.Is(err, storage.ErrOrderNotOpen) {
			return nil, &TransitionError{Entity: "order", Action: "add_items", Reason: "order is not open"}
		}
		if err != nil {
			return nil, err
		}
		added = append(added, row)
	}
	return added, nil
}

func (s *OrderService) publishItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) {
	for _, item := range items {
		ev := domain.NewEvent(domain.EventOrderItemAdded, order.RestaurantID, order.ID, string(order.Status))
		ev.Quantity = item.Quantity
		publish(ctx, s.events, ev)
	}
}

func (s *OrderService) ListActive(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID) ([]domain.Order, error) {
	rid, err := managerScope(p, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListActiveOrders(ctx, rid)
}

func (s *OrderService) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error) {
	if err := auth.Require(p, domain.RoleManager, nil); err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(p, domain.RoleManager, &order.RestaurantID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Send(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, p, id, domain.OrderSend)
}

func (s *OrderService) Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, p, id, domain.OrderComplete)
}

func (s *OrderService) transition(ctx context.Context, p auth.Principal, id uuid.UUID, action domain.OrderAction) (*domain.Order, error) {
	order, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	tr, ok := domain.OrderTransitionFor(action)
	if !ok {
		return nil, invalid("unknown order action %q", action)
	}
	changed, err := s.orders.TransitionOrder(ctx, id, tr.From, tr.To)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, &TransitionError{Entity: "order", Action: string(action), Reason: tr.Reject}
	}

	order.Status = tr.To
	metrics.Transitions.WithLabelValues("order", string(action)).Inc()
	publish(ctx, s.events, domain.OrderEvent(action, order))
	return order, nil
}

func (s *OrderService) TablesOverview(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID) ([]domain.TableOverview, error) {
	rid, err := managerScope(p, restaurantID)
	if err != nil {
		return nil, err
	}

	tables, err := s.tables.ListTables(ctx, rid)
	if err != nil {
		return nil, err
	}
	active, err := s.orders.ListActiveOrders(ctx, rid)
	if err != nil {
		return nil, err
	}

	open := make(map[uuid.UUID]*domain.Order, len(active))
	for i := range active {
		if active[i].Status == domain.OrderOpen {
			open[active[i].TableID] = &active[i]
		}
	}

	overview := make([]domain.TableOverview, len(tables))
	for i, t := range tables {
		overview[i] = domain.TableOverview{Table: t, OpenOrder: open[t.ID]}
	}
	return overview, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
