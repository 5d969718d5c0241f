package service_test

import (
	"context"
	"testing"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/mocks"
	"mfood/pos-svc/internal/service"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders *mocks.OrderRepository
	tables *mocks.TableRepository
	menu   *mocks.MenuRepository
	events *mocks.EventPublisher
	svc    *service.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	f := &orderFixture{
		orders: mocks.NewOrderRepository(t),
		tables: mocks.NewTableRepository(t),
		menu:   mocks.NewMenuRepository(t),
		events: mocks.NewEventPublisher(t),
	}
	f.svc = service.NewOrderService(mocks.NewPassThroughTx(t), f.orders, f.tables, f.menu, f.events)
	return f
}

func TestOrderService_PlaceGuestOrderSnapshotsPrice(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	table := &domain.Table{ID: uuid.New(), RestaurantID: restID, Name: "Table 1", Token: "tok"}
	item := &domain.MenuItem{ID: uuid.New(), RestaurantID: restID, Name: "Ramen", Price: 9000, IsActive: true}
	large := domain.Option{ID: uuid.New(), Name: "Large", PriceDelta: 1500}
	groups := []domain.OptionGroup{{
		ID: uuid.New(), MenuItemID: item.ID, Name: "Size", MaxSelect: 1, IsRequired: true,
		Options: []domain.Option{large, {ID: uuid.New(), Name: "Regular"}},
	}}
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: table.ID, Status: domain.OrderOpen}

	f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
	f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(nil, storage.ErrNotFound).Once()
	f.orders.On("InsertOpenOrder", mock.Anything, restID, table.ID).Return(order, nil).Once()
	f.menu.On("GetItem", mock.Anything, restID, item.ID).Return(item, nil).Once()
	f.menu.On("ListOptionGroups", mock.Anything, []uuid.UUID{item.ID}).Return(groups, nil).Once()
	f.orders.On("InsertOrderItem", mock.Anything, mock.MatchedBy(func(row *domain.OrderItem) bool {
		return row.OrderID == order.ID &&
			row.MenuItemName == "Ramen" &&
			row.UnitPrice == 10500 &&
			row.Quantity == 2 &&
			assert.ObjectsAreEqual([]string{"Large"}, row.OptionNames)
	})).Return(nil).Once()
	f.orders.On("GetOrder", mock.Anything, order.ID).Return(&domain.Order{
		ID: order.ID, RestaurantID: restID, Status: domain.OrderOpen, TotalAmount: 21000,
	}, nil).Once()
	expectEvent(f.events, domain.EventOrderOpened)
	expectEvent(f.events, domain.EventOrderItemAdded)

	result, err := f.svc.PlaceGuestOrder(context.Background(), service.GuestOrderInput{
		Token:      "tok",
		MenuItemID: &item.ID,
		Quantity:   2,
		OptionIDs:  []uuid.UUID{large.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21000), result.Total())
}

func TestOrderService_PlaceGuestOrderIgnoresGuestPrice(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	table := &domain.Table{ID: uuid.New(), RestaurantID: restID, Token: "tok"}
	item := &domain.MenuItem{ID: uuid.New(), RestaurantID: restID, Name: "Tea", Price: 3000, IsActive: true}
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: table.ID, Status: domain.OrderOpen}

	f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
	f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(order, nil).Once()
	f.menu.On("GetItem", mock.Anything, restID, item.ID).Return(item, nil).Once()
	f.menu.On("ListOptionGroups", mock.Anything, []uuid.UUID{item.ID}).Return([]domain.OptionGroup{}, nil).Once()
	f.orders.On("InsertOrderItem", mock.Anything, mock.MatchedBy(func(row *domain.OrderItem) bool {
		return row.UnitPrice == 3000 && row.Quantity == 1
	})).Return(nil).Once()
	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil).Once()
	expectEvent(f.events, domain.EventOrderItemAdded)

	_, err := f.svc.PlaceGuestOrder(context.Background(), service.GuestOrderInput{
		Token: "tok",
		Items: []service.OrderItemInput{{MenuItemID: item.ID, UnitPrice: ptr(int64(1))}},
	})
	require.NoError(t, err)
}

func TestOrderService_GetOrCreateRace(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	table := &domain.Table{ID: uuid.New(), RestaurantID: restID, Token: "tok"}
	item := &domain.MenuItem{ID: uuid.New(), RestaurantID: restID, Name: "Tea", Price: 3000, IsActive: true}
	winner := &domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: table.ID, Status: domain.OrderOpen}

	f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
	f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(nil, storage.ErrNotFound).Once()
	f.orders.On("InsertOpenOrder", mock.Anything, restID, table.ID).Return(nil, storage.ErrDuplicateKey).Once()
	f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(winner, nil).Once()
	f.menu.On("GetItem", mock.Anything, restID, item.ID).Return(item, nil).Once()
	f.menu.On("ListOptionGroups", mock.Anything, mock.Anything).Return([]domain.OptionGroup{}, nil).Once()
	f.orders.On("InsertOrderItem", mock.Anything, mock.MatchedBy(func(row *domain.OrderItem) bool {
		return row.OrderID == winner.ID
	})).Return(nil).Once()
	f.orders.On("GetOrder", mock.Anything, winner.ID).Return(winner, nil).Once()
	expectEvent(f.events, domain.EventOrderItemAdded)

	result, err := f.svc.PlaceGuestOrder(context.Background(), service.GuestOrderInput{Token: "tok", MenuItemID: &item.ID})

	require.NoError(t, err)
	assert.Equal(t, winner.ID, result.ID)
}

func TestOrderService_PlaceGuestOrderErrors(t *testing.T) {
	restID := uuid.New()
	table := &domain.Table{ID: uuid.New(), RestaurantID: restID, Token: "tok"}
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: table.ID, Status: domain.OrderOpen}
	itemID := uuid.New()

	tests := []struct {
		name    string
		input   service.GuestOrderInput
		setup   func(f *orderFixture)
		wantErr error
		invalid bool
	}{
		{
			name:    "no items",
			input:   service.GuestOrderInput{Token: "tok"},
			invalid: true,
		},
		{
			name:    "quantity too large",
			input:   service.GuestOrderInput{Token: "tok", MenuItemID: &itemID, Quantity: 100},
			invalid: true,
		},
		{
			name:  "unknown token",
			input: service.GuestOrderInput{Token: "bad", MenuItemID: &itemID},
			setup: func(f *orderFixture) {
				f.tables.On("GetTableByToken", mock.Anything, "bad").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name:  "item of another restaurant",
			input: service.GuestOrderInput{Token: "tok", MenuItemID: &itemID},
			setup: func(f *orderFixture) {
				f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
				f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(order, nil).Once()
				f.menu.On("GetItem", mock.Anything, restID, itemID).Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name:  "inactive item",
			input: service.GuestOrderInput{Token: "tok", MenuItemID: &itemID},
			setup: func(f *orderFixture) {
				f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
				f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(order, nil).Once()
				f.menu.On("GetItem", mock.Anything, restID, itemID).
					Return(&domain.MenuItem{ID: itemID, RestaurantID: restID, Name: "Sold out", IsActive: false}, nil).Once()
			},
			invalid: true,
		},
		{
			name:  "missing required option",
			input: service.GuestOrderInput{Token: "tok", MenuItemID: &itemID},
			setup: func(f *orderFixture) {
				f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
				f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(order, nil).Once()
				f.menu.On("GetItem", mock.Anything, restID, itemID).
					Return(&domain.MenuItem{ID: itemID, RestaurantID: restID, Name: "Ramen", IsActive: true}, nil).Once()
				f.menu.On("ListOptionGroups", mock.Anything, []uuid.UUID{itemID}).Return([]domain.OptionGroup{{
					ID: uuid.New(), MenuItemID: itemID, Name: "Size", IsRequired: true,
					Options: []domain.Option{{ID: uuid.New(), Name: "Large"}},
				}}, nil).Once()
			},
			invalid: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t)
			if testCase.setup != nil {
				testCase.setup(f)
			}

			result, err := f.svc.PlaceGuestOrder(context.Background(), testCase.input)

			assert.Nil(t, result)
			require.Error(t, err)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
			if testCase.invalid {
				var verr *service.ValidationError
				assert.ErrorAs(t, err, &verr)
			}
			f.orders.AssertNotCalled(t, "InsertOrderItem", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_SendTwice(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, Status: domain.OrderOpen}

	f.orders.On("GetOrder", mock.Anything, order.ID).Return(func(context.Context, uuid.UUID) (*domain.Order, error) {
		o := *order
		return &o, nil
	})
	f.orders.On("TransitionOrder", mock.Anything, order.ID, []domain.OrderStatus{domain.OrderOpen}, domain.OrderSent).
		Return(true, nil).Once()
	f.orders.On("TransitionOrder", mock.Anything, order.ID, []domain.OrderStatus{domain.OrderOpen}, domain.OrderSent).
		Return(false, nil).Once()
	expectEvent(f.events, domain.EventOrderSent)

	sent, err := f.svc.Send(context.Background(), managerOf(restID), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderSent, sent.Status)

	_, err = f.svc.Send(context.Background(), managerOf(restID), order.ID)
	var terr *service.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "order is not open", terr.Reason)
}

func TestOrderService_CompleteAlreadyCompleted(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, Status: domain.OrderCompleted}

	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil).Once()
	f.orders.On("TransitionOrder", mock.Anything, order.ID, mock.Anything, domain.OrderCompleted).Return(false, nil).Once()

	_, err := f.svc.Complete(context.Background(), admin(), order.ID)

	var terr *service.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "order is already completed", terr.Reason)
}

func TestOrderService_GetOtherRestaurant(t *testing.T) {
	f := newOrderFixture(t)
	order := &domain.Order{ID: uuid.New(), RestaurantID: uuid.New(), Status: domain.OrderOpen}
	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil).Once()

	_, err := f.svc.Get(context.Background(), managerOf(uuid.New()), order.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestOrderService_AddItemsOverridesPrice(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	item := &domain.MenuItem{ID: uuid.New(), RestaurantID: restID, Name: "Soju", Price: 5000, IsActive: true}
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, Status: domain.OrderOpen}

	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil).Twice()
	f.menu.On("GetItem", mock.Anything, restID, item.ID).Return(item, nil).Once()
	f.menu.On("ListOptionGroups", mock.Anything, mock.Anything).Return([]domain.OptionGroup{}, nil).Once()
	f.orders.On("InsertOrderItem", mock.Anything, mock.MatchedBy(func(row *domain.OrderItem) bool {
		return row.UnitPrice == 0 && row.Quantity == 3
	})).Return(nil).Once()
	expectEvent(f.events, domain.EventOrderItemAdded)

	_, err := f.svc.AddItems(context.Background(), managerOf(restID), order.ID, []service.OrderItemInput{
		{MenuItemID: item.ID, Quantity: 3, UnitPrice: ptr(int64(0))},
	})
	require.NoError(t, err)
}

func TestOrderService_AddItemsToSentOrder(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, Status: domain.OrderSent}
	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil).Once()

	_, err := f.svc.AddItems(context.Background(), managerOf(restID), order.ID, []service.OrderItemInput{
		{MenuItemID: uuid.New(), Quantity: 1},
	})

	var terr *service.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "order is not open", terr.Reason)
}

func TestOrderService_TablesOverview(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	t1 := domain.Table{ID: uuid.New(), RestaurantID: restID, Name: "Table 1"}
	t2 := domain.Table{ID: uuid.New(), RestaurantID: restID, Name: "Table 2"}
	open := domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: t1.ID, Status: domain.OrderOpen}
	sent := domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: t2.ID, Status: domain.OrderSent}

	f.tables.On("ListTables", mock.Anything, restID).Return([]domain.Table{t1, t2}, nil).Once()
	f.orders.On("ListActiveOrders", mock.Anything, restID).Return([]domain.Order{open, sent}, nil).Once()

	overview, err := f.svc.TablesOverview(context.Background(), managerOf(restID), nil)

	require.NoError(t, err)
	require.Len(t, overview, 2)
	require.NotNil(t, overview[0].OpenOrder)
	assert.Equal(t, open.ID, overview[0].OpenOrder.ID)
	assert.Nil(t, overview[1].OpenOrder)
}

func TestOrderService_PriceChangeKeepsSnapshot(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	restID := uuid.New()
	table := &domain.Table{ID: uuid.New(), RestaurantID: restID, Token: "tok"}
	current := domain.MenuItem{ID: uuid.New(), RestaurantID: restID, Name: "Bibimbap", Price: 9000, IsActive: true}
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, TableID: table.ID, Status: domain.OrderOpen}
	var stored []domain.OrderItem

	f.tables.On("GetTableByToken", mock.Anything, "tok").Return(table, nil).Once()
	f.orders.On("FindOpenOrder", mock.Anything, table.ID).Return(nil, storage.ErrNotFound).Once()
	f.orders.On("InsertOpenOrder", mock.Anything, restID, table.ID).Return(order, nil).Once()
	f.menu.On("GetItem", mock.Anything, restID, current.ID).
		Return(func(context.Context, uuid.UUID, uuid.UUID) (*domain.MenuItem, error) {
			item := current
			return &item, nil
		}).Twice()
	f.menu.On("ListOptionGroups", mock.Anything, []uuid.UUID{current.ID}).Return([]domain.OptionGroup{}, nil).Once()
	f.menu.On("UpdateItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { current = *args.Get(1).(*domain.MenuItem) }).
		Return(nil).Once()
	f.orders.On("InsertOrderItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = append(stored, *args.Get(1).(*domain.OrderItem)) }).
		Return(nil).Once()
	f.orders.On("GetOrder", mock.Anything, order.ID).
		Return(func(context.Context, uuid.UUID) (*domain.Order, error) {
			return &domain.Order{
				ID: order.ID, RestaurantID: restID, TableID: table.ID, Status: domain.OrderOpen,
				Items: append([]domain.OrderItem(nil), stored...),
			}, nil
		}).Twice()
	expectEvent(f.events, domain.EventOrderOpened)
	expectEvent(f.events, domain.EventOrderItemAdded)

	_, err := f.svc.PlaceGuestOrder(ctx, service.GuestOrderInput{Token: "tok", MenuItemID: &current.ID, Quantity: 2})
	require.NoError(t, err)

	menu := service.NewMenuService(mocks.NewPassThroughTx(t), f.menu, mocks.NewRestaurantRepository(t), mocks.NewTableRepository(t), nil, t.TempDir())
	updated, err := menu.UpdateItem(ctx, managerOf(restID), restID, current.ID, service.ItemPatchInput{Price: ptr(int64(12000))})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), updated.Price)

	reread, err := f.svc.Get(ctx, managerOf(restID), order.ID)
	require.NoError(t, err)
	require.Len(t, reread.Items, 1)
	assert.Equal(t, int64(9000), reread.Items[0].UnitPrice)
	assert.Equal(t, int64(18000), reread.Total())
}

func TestOrderService_AddItemsOrderClosedConcurrently(t *testing.T) {
	f := newOrderFixture(t)
	restID := uuid.New()
	item := &domain.MenuItem{ID: uuid.New(), RestaurantID: restID, Name: "Soju", Price: 5000, IsActive: true}
	order := &domain.Order{ID: uuid.New(), RestaurantID: restID, Status: domain.OrderOpen}

	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil).Once()
	f.menu.On("GetItem", mock.Anything, restID, item.ID).Return(item, nil).Once()
	f.menu.On("ListOptionGroups", mock.Anything, mock.Anything).Return([]domain.OptionGroup{}, nil).Once()
	f.orders.On("InsertOrderItem", mock.Anything, mock.Anything).Return(storage.ErrOrderNotOpen).Once()

	_, err := f.svc.AddItems(context.Background(), managerOf(restID), order.ID, []service.OrderItemInput{
		{MenuItemID: item.ID, Quantity: 1},
	})

	var terr *service.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "order is not open", terr.Reason)
}
