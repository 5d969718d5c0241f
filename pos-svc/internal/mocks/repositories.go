package mocks

import (
	"context"
	"time"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ProfileRepository is a testify mock for service.ProfileRepository.
type ProfileRepository struct {
	mock.Mock
}

func (_m *ProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.Profile, error)); ok {
		return rf(ctx, id)
	}

	var r0 *domain.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Profile)
	}

	return r0, ret.Error(1)
}

func (_m *ProfileRepository) ListProfiles(ctx context.Context, restaurantID *uuid.UUID) ([]domain.Profile, error) {
	ret := _m.Called(ctx, restaurantID)

	if rf, ok := ret.Get(0).(func(context.Context, *uuid.UUID) ([]domain.Profile, error)); ok {
		return rf(ctx, restaurantID)
	}

	var r0 []domain.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Profile)
	}

	return r0, ret.Error(1)
}

func (_m *ProfileRepository) CreateIdentity(ctx context.Context, email string, passwordHash string) (uuid.UUID, error) {
	ret := _m.Called(ctx, email, passwordHash)

	if rf, ok := ret.Get(0).(func(context.Context, string, string) (uuid.UUID, error)); ok {
		return rf(ctx, email, passwordHash)
	}

	var r0 uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.(uuid.UUID)
	}

	return r0, ret.Error(1)
}

func (_m *ProfileRepository) GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	ret := _m.Called(ctx, email)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*domain.Identity, error)); ok {
		return rf(ctx, email)
	}

	var r0 *domain.Identity
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Identity)
	}

	return r0, ret.Error(1)
}

func (_m *ProfileRepository) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		return rf(ctx, id)
	}

	return ret.Error(0)
}

func (_m *ProfileRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	ret := _m.Called(ctx, p)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.Profile) error); ok {
		return rf(ctx, p)
	}

	return ret.Error(0)
}

func (_m *ProfileRepository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	ret := _m.Called(ctx, p)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.Profile) error); ok {
		return rf(ctx, p)
	}

	return ret.Error(0)
}

func (_m *ProfileRepository) DeleteProfile(ctx context.Context, id uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (int64, error)); ok {
		return rf(ctx, id)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

// NewProfileRepository creates a ProfileRepository mock and asserts its expectations on cleanup.
func NewProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// RestaurantRepository is a testify mock for service.RestaurantRepository.
type RestaurantRepository struct {
	mock.Mock
}

func (_m *RestaurantRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.Restaurant) error); ok {
		return rf(ctx, rest)
	}

	return ret.Error(0)
}

func (_m *RestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.Restaurant, error)); ok {
		return rf(ctx)
	}

	var r0 []domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Restaurant)
	}

	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.Restaurant, error)); ok {
		return rf(ctx, id)
	}

	var r0 *domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Restaurant)
	}

	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) UpdateWaitlistToken(ctx context.Context, id uuid.UUID, token string) error {
	ret := _m.Called(ctx, id, token)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		return rf(ctx, id, token)
	}

	return ret.Error(0)
}

func (_m *RestaurantRepository) DeleteRestaurantCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (int64, error)); ok {
		return rf(ctx, id)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

// NewRestaurantRepository creates a RestaurantRepository mock and asserts its expectations on cleanup.
func NewRestaurantRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// TableRepository is a testify mock for service.TableRepository.
type TableRepository struct {
	mock.Mock
}

func (_m *TableRepository) ListTables(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error) {
	ret := _m.Called(ctx, restaurantID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]domain.Table, error)); ok {
		return rf(ctx, restaurantID)
	}

	var r0 []domain.Table
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Table)
	}

	return r0, ret.Error(1)
}

func (_m *TableRepository) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.Table, error)); ok {
		return rf(ctx, id)
	}

	var r0 *domain.Table
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Table)
	}

	return r0, ret.Error(1)
}

func (_m *TableRepository) GetTableByToken(ctx context.Context, token string) (*domain.Table, error) {
	ret := _m.Called(ctx, token)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*domain.Table, error)); ok {
		return rf(ctx, token)
	}

	var r0 *domain.Table
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Table)
	}

	return r0, ret.Error(1)
}

func (_m *TableRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	ret := _m.Called(ctx, t)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.Table) error); ok {
		return rf(ctx, t)
	}

	return ret.Error(0)
}

func (_m *TableRepository) DeleteTables(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, restaurantID, ids)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []uuid.UUID) (int64, error)); ok {
		return rf(ctx, restaurantID, ids)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

func (_m *TableRepository) CountOpenOrders(ctx context.Context, tableIDs []uuid.UUID) (int, error) {
	ret := _m.Called(ctx, tableIDs)

	if rf, ok := ret.Get(0).(func(context.Context, []uuid.UUID) (int, error)); ok {
		return rf(ctx, tableIDs)
	}

	var r0 int
	if v := ret.Get(0); v != nil {
		r0 = v.(int)
	}

	return r0, ret.Error(1)
}

func (_m *TableRepository) UpdateTableCapacity(ctx context.Context, id uuid.UUID, capacity int) error {
	ret := _m.Called(ctx, id, capacity)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, int) error); ok {
		return rf(ctx, id, capacity)
	}

	return ret.Error(0)
}

func (_m *TableRepository) UpdateTableToken(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID, token string) error {
	ret := _m.Called(ctx, restaurantID, id, token)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID, string) error); ok {
		return rf(ctx, restaurantID, id, token)
	}

	return ret.Error(0)
}

// NewTableRepository creates a TableRepository mock and asserts its expectations on cleanup.
func NewTableRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *TableRepository {
	m := &TableRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MenuRepository is a testify mock for service.MenuRepository.
type MenuRepository struct {
	mock.Mock
}

func (_m *MenuRepository) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]domain.MenuCategory, error) {
	ret := _m.Called(ctx, restaurantID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]domain.MenuCategory, error)); ok {
		return rf(ctx, restaurantID)
	}

	var r0 []domain.MenuCategory
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuCategory)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) GetCategory(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (*domain.MenuCategory, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*domain.MenuCategory, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 *domain.MenuCategory
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuCategory)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) CreateCategory(ctx context.Context, c *domain.MenuCategory) error {
	ret := _m.Called(ctx, c)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.MenuCategory) error); ok {
		return rf(ctx, c)
	}

	return ret.Error(0)
}

func (_m *MenuRepository) UpdateCategory(ctx context.Context, c *domain.MenuCategory) error {
	ret := _m.Called(ctx, c)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.MenuCategory) error); ok {
		return rf(ctx, c)
	}

	return ret.Error(0)
}

func (_m *MenuRepository) CountItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	ret := _m.Called(ctx, categoryID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (int, error)); ok {
		return rf(ctx, categoryID)
	}

	var r0 int
	if v := ret.Get(0); v != nil {
		r0 = v.(int)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) DeleteCategory(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (int64, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) ListItems(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, restaurantID, activeOnly)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, bool) ([]domain.MenuItem, error)); ok {
		return rf(ctx, restaurantID, activeOnly)
	}

	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) GetItem(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*domain.MenuItem, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.MenuItem) error); ok {
		return rf(ctx, item)
	}

	return ret.Error(0)
}

func (_m *MenuRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.MenuItem) error); ok {
		return rf(ctx, item)
	}

	return ret.Error(0)
}

func (_m *MenuRepository) DeleteItem(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (int64, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) ListOptionGroups(ctx context.Context, itemIDs []uuid.UUID) ([]domain.OptionGroup, error) {
	ret := _m.Called(ctx, itemIDs)

	if rf, ok := ret.Get(0).(func(context.Context, []uuid.UUID) ([]domain.OptionGroup, error)); ok {
		return rf(ctx, itemIDs)
	}

	var r0 []domain.OptionGroup
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.OptionGroup)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) GetOptionGroup(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (*domain.OptionGroup, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*domain.OptionGroup, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 *domain.OptionGroup
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.OptionGroup)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) CreateOptionGroup(ctx context.Context, g *domain.OptionGroup) error {
	ret := _m.Called(ctx, g)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.OptionGroup) error); ok {
		return rf(ctx, g)
	}

	return ret.Error(0)
}

func (_m *MenuRepository) DeleteOptionGroup(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (int64, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

func (_m *MenuRepository) CreateOption(ctx context.Context, o *domain.Option) error {
	ret := _m.Called(ctx, o)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.Option) error); ok {
		return rf(ctx, o)
	}

	return ret.Error(0)
}

func (_m *MenuRepository) DeleteOption(ctx context.Context, restaurantID uuid.UUID, id uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, restaurantID, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (int64, error)); ok {
		return rf(ctx, restaurantID, id)
	}

	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}

	return r0, ret.Error(1)
}

// NewMenuRepository creates a MenuRepository mock and asserts its expectations on cleanup.
func NewMenuRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// OrderRepository is a testify mock for service.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) FindOpenOrder(ctx context.Context, tableID uuid.UUID) (*domain.Order, error) {
	ret := _m.Called(ctx, tableID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.Order, error)); ok {
		return rf(ctx, tableID)
	}

	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) InsertOpenOrder(ctx context.Context, restaurantID uuid.UUID, tableID uuid.UUID) (*domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, tableID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*domain.Order, error)); ok {
		return rf(ctx, restaurantID, tableID)
	}

	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.Order, error)); ok {
		return rf(ctx, id)
	}

	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListActiveOrders(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]domain.Order, error)); ok {
		return rf(ctx, restaurantID)
	}

	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	ret := _m.Called(ctx, item)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.OrderItem) error); ok {
		return rf(ctx, item)
	}

	return ret.Error(0)
}

func (_m *OrderRepository) TransitionOrder(ctx context.Context, id uuid.UUID, from []domain.OrderStatus, to domain.OrderStatus) (bool, error) {
	ret := _m.Called(ctx, id, from, to)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []domain.OrderStatus, domain.OrderStatus) (bool, error)); ok {
		return rf(ctx, id, from, to)
	}

	var r0 bool
	if v := ret.Get(0); v != nil {
		r0 = v.(bool)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) CompleteOpenOrderForTable(ctx context.Context, tableID uuid.UUID) (*uuid.UUID, error) {
	ret := _m.Called(ctx, tableID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*uuid.UUID, error)); ok {
		return rf(ctx, tableID)
	}

	var r0 *uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.(*uuid.UUID)
	}

	return r0, ret.Error(1)
}

// NewOrderRepository creates a OrderRepository mock and asserts its expectations on cleanup.
func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WaitlistRepository is a testify mock for service.WaitlistRepository.
type WaitlistRepository struct {
	mock.Mock
}

func (_m *WaitlistRepository) CreateWaitlistEntry(ctx context.Context, e *domain.WaitlistEntry) error {
	ret := _m.Called(ctx, e)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.WaitlistEntry) error); ok {
		return rf(ctx, e)
	}

	return ret.Error(0)
}

func (_m *WaitlistRepository) GetWaitlistEntry(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.WaitlistEntry, error)); ok {
		return rf(ctx, id)
	}

	var r0 *domain.WaitlistEntry
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.WaitlistEntry)
	}

	return r0, ret.Error(1)
}

func (_m *WaitlistRepository) ListWaitlist(ctx context.Context, restaurantID uuid.UUID, statuses []domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	ret := _m.Called(ctx, restaurantID, statuses)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []domain.WaitlistStatus) ([]domain.WaitlistEntry, error)); ok {
		return rf(ctx, restaurantID, statuses)
	}

	var r0 []domain.WaitlistEntry
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.WaitlistEntry)
	}

	return r0, ret.Error(1)
}

func (_m *WaitlistRepository) TransitionWaitlist(ctx context.Context, id uuid.UUID, from []domain.WaitlistStatus, to domain.WaitlistStatus, tableID *uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, id, from, to, tableID)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []domain.WaitlistStatus, domain.WaitlistStatus, *uuid.UUID) (bool, error)); ok {
		return rf(ctx, id, from, to, tableID)
	}

	var r0 bool
	if v := ret.Get(0); v != nil {
		r0 = v.(bool)
	}

	return r0, ret.Error(1)
}

func (_m *WaitlistRepository) WaitlistPosition(ctx context.Context, restaurantID uuid.UUID, createdAt time.Time) (int, error) {
	ret := _m.Called(ctx, restaurantID, createdAt)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, time.Time) (int, error)); ok {
		return rf(ctx, restaurantID, createdAt)
	}

	var r0 int
	if v := ret.Get(0); v != nil {
		r0 = v.(int)
	}

	return r0, ret.Error(1)
}

// NewWaitlistRepository creates a WaitlistRepository mock and asserts its expectations on cleanup.
func NewWaitlistRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *WaitlistRepository {
	m := &WaitlistRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
