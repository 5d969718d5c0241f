package service

import (
	"context"
	"time"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
)

type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListProfiles(ctx context.Context, restaurantID *uuid.UUID) ([]domain.Profile, error)
	CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error)
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
	CreateProfile(ctx context.Context, p *domain.Profile) error
	UpdateProfile(ctx context.Context, p *domain.Profile) error
	DeleteProfile(ctx context.Context, id uuid.UUID) (int64, error)
}

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	UpdateWaitlistToken(ctx context.Context, id uuid.UUID, token string) error
	DeleteRestaurantCascade(ctx context.Context, id uuid.UUID) (int64, error)
}

type TableRepository interface {
	ListTables(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	GetTableByToken(ctx context.Context, token string) (*domain.Table, error)
	CreateTable(ctx context.Context, t *domain.Table) error
	DeleteTables(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) (int64, error)
	CountOpenOrders(ctx context.Context, tableIDs []uuid.UUID) (int, error)
	UpdateTableCapacity(ctx context.Context, id uuid.UUID, capacity int) error
	UpdateTableToken(ctx context.Context, restaurantID, id uuid.UUID, token string) error
}

type MenuRepository interface {
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]domain.MenuCategory, error)
	GetCategory(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuCategory, error)
	CreateCategory(ctx context.Context, c *domain.MenuCategory) error
	UpdateCategory(ctx context.Context, c *domain.MenuCategory) error
	CountItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	DeleteCategory(ctx context.Context, restaurantID, id uuid.UUID) (int64, error)
	ListItems(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, restaurantID, id uuid.UUID) (int64, error)
	ListOptionGroups(ctx context.Context, itemIDs []uuid.UUID) ([]domain.OptionGroup, error)
	GetOptionGroup(ctx context.Context, restaurantID, id uuid.UUID) (*domain.OptionGroup, error)
	CreateOptionGroup(ctx context.Context, g *domain.OptionGroup) error
	DeleteOptionGroup(ctx context.Context, restaurantID, id uuid.UUID) (int64, error)
	CreateOption(ctx context.Context, o *domain.Option) error
	DeleteOption(ctx context.Context, restaurantID, id uuid.UUID) (int64, error)
}

type OrderRepository interface {
	FindOpenOrder(ctx context.Context, tableID uuid.UUID) (*domain.Order, error)
	InsertOpenOrder(ctx context.Context, restaurantID, tableID uuid.UUID) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListActiveOrders(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error)
	InsertOrderItem(ctx context.Context, item *domain.OrderItem) error
	TransitionOrder(ctx context.Context, id uuid.UUID, from []domain.OrderStatus, to domain.OrderStatus) (bool, error)
	CompleteOpenOrderForTable(ctx context.Context, tableID uuid.UUID) (*uuid.UUID, error)
}

type WaitlistRepository interface {
	CreateWaitlistEntry(ctx context.Context, e *domain.WaitlistEntry) error
	GetWaitlistEntry(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error)
	ListWaitlist(ctx context.Context, restaurantID uuid.UUID, statuses []domain.WaitlistStatus) ([]domain.WaitlistEntry, error)
	TransitionWaitlist(ctx context.Context, id uuid.UUID, from []domain.WaitlistStatus, to domain.WaitlistStatus, tableID *uuid.UUID) (bool, error)
	WaitlistPosition(ctx context.Context, restaurantID uuid.UUID, createdAt time.Time) (int, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID uuid.UUID) (*domain.MenuCatalog, error)
	SetMenu(ctx context.Context, catalog *domain.MenuCatalog) error
	InvalidateMenu(ctx context.Context, restaurantID uuid.UUID) error
}

type StatsReader interface {
	DailyStats(ctx context.Context, restaurantID uuid.UUID, date string) (*domain.DailyStats, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

type TokenIssuer interface {
	Generate(userID uuid.UUID) (string, error)
	TTL() time.Duration
}

var (
	_ TxRunner             = (*storage.PostgresRepository)(nil)
	_ ProfileRepository    = (*storage.PostgresRepository)(nil)
	_ RestaurantRepository = (*storage.PostgresRepository)(nil)
	_ TableRepository      = (*storage.PostgresRepository)(nil)
	_ MenuRepository       = (*storage.PostgresRepository)(nil)
	_ OrderRepository      = (*storage.PostgresRepository)(nil)
	_ WaitlistRepository   = (*storage.PostgresRepository)(nil)
	_ MenuCache            = (*storage.RedisCache)(nil)
	_ StatsReader          = (*storage.RedisCache)(nil)
	_ EventPublisher       = (*storage.FanOut)(nil)
	_ TokenIssuer          = (*auth.JWTManager)(nil)
	_ QRGenerator          = DefaultQRGenerator{}
)
