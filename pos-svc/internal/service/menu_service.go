package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CategoryInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	SortOrder int    `json:"sort_order"`
}

type ItemInput struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=1000"`
	Price       int64      `json:"price" validate:"min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	IsActive    *bool      `json:"is_active"`
	ImageURL    string     `json:"image_url" validate:"max=500"`
}

type ItemPatchInput struct {
	Name          *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Description   *string    `json:"description" validate:"omitempty,max=1000"`
	Price         *int64     `json:"price" validate:"omitempty,min=0"`
	CategoryID    *uuid.UUID `json:"category_id"`
	ClearCategory bool       `json:"clear_category"`
	ImageURL      *string    `json:"image_url" validate:"omitempty,max=500"`
	IsActive      *bool      `json:"is_active"`
}

type OptionGroupInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	MinSelect  int    `json:"min_select" validate:"min=0,max=20"`
	MaxSelect  int    `json:"max_select" validate:"min=0,max=20"`
	IsRequired bool   `json:"is_required"`
}

type OptionInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	PriceDelta int64  `json:"price_delta"`
}

// ImageUpload is a validated image file to attach to a menu item.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type MenuServiceInterface interface {
	GuestMenu(ctx context.Context, token string) (*domain.GuestMenu, error)
	ListCategories(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.MenuCategory, error)
	CreateCategory(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in CategoryInput) (*domain.MenuCategory, error)
	UpdateCategory(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID, in CategoryInput) (*domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error
	ListItems(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in ItemInput) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID, in ItemPatchInput) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error
	UploadItemImage(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID, img ImageUpload) (*domain.MenuItem, error)
	CreateOptionGroup(ctx context.Context, p auth.Principal, restaurantID, itemID uuid.UUID, in OptionGroupInput) (*domain.OptionGroup, error)
	DeleteOptionGroup(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error
	CreateOption(ctx context.Context, p auth.Principal, restaurantID, groupID uuid.UUID, in OptionInput) (*domain.Option, error)
	DeleteOption(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error
}

type MenuService struct {
	tx          TxRunner
	menu        MenuRepository
	restaurants RestaurantRepository
	tables      TableRepository
	cache       MenuCache
	uploadDir   string
}

func NewMenuService(tx TxRunner, menu MenuRepository, restaurants RestaurantRepository, tables TableRepository, cache MenuCache, uploadDir string) *MenuService {
	return &MenuService{
		tx:          tx,
		menu:        menu,
		restaurants: restaurants,
		tables:      tables,
		cache:       cache,
		uploadDir:   uploadDir,
	}
}

// GuestMenu resolves a table token to its restaurant's active menu. The restaurant-wide
// part is served from cache when possible; cache failures fall through to the database.
func (s *MenuService) GuestMenu(ctx context.Context, token string) (*domain.GuestMenu, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid("token is required")
	}
	table, err := s.tables.GetTableByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	var catalog *domain.MenuCatalog
	if s.cache != nil {
		catalog, err = s.cache.GetMenu(ctx, table.RestaurantID)
		if err != nil {
			log.Warn().Err(err).Str("restaurant_id", table.RestaurantID.String()).Msg("menu cache read failed")
			catalog = nil
		}
	}

	if catalog == nil {
		catalog, err = s.loadCatalog(ctx, table.RestaurantID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetMenu(ctx, catalog); err != nil {
				log.Warn().Err(err).Str("restaurant_id", table.RestaurantID.String()).Msg("menu cache write failed")
			}
		}
	}

	return &domain.GuestMenu{
		MenuCatalog: *catalog,
		TableID:     table.ID,
		TableName:   table.Name,
	}, nil
}

func (s *MenuService) loadCatalog(ctx context.Context, restaurantID uuid.UUID) (*domain.MenuCatalog, error) {
	rest, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	categories, err := s.menu.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.menu.ListItems(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}
	if err := s.attachGroups(ctx, items); err != nil {
		return nil, err
	}

	return &domain.MenuCatalog{
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		Categories:     categories,
		Items:          items,
	}, nil
}

func (s *MenuService) attachGroups(ctx context.Context, items []domain.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
		index[item.ID] = i
	}
	groups, err := s.menu.ListOptionGroups(ctx, ids)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if i, ok := index[g.MenuItemID]; ok {
			items[i].OptionGroups = append(items[i].OptionGroups, g)
		}
	}
	return nil
}

func (s *MenuService) authorize(p auth.Principal, restaurantID uuid.UUID) error {
	return auth.Require(p, domain.RoleManager, &restaurantID)
}

func (s *MenuService) ListCategories(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.MenuCategory, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	return s.menu.ListCategories(ctx, restaurantID)
}

func (s *MenuService) CreateCategory(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in CategoryInput) (*domain.MenuCategory, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	c := &domain.MenuCategory{RestaurantID: restaurantID, Name: in.Name, SortOrder: in.SortOrder}
	if err := s.menu.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return c, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID, in CategoryInput) (*domain.MenuCategory, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c := &domain.MenuCategory{ID: id, RestaurantID: restaurantID, Name: in.Name, SortOrder: in.SortOrder}
	if err := s.menu.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return c, nil
}

// DeleteCategory refuses while any item still references the category.
func (s *MenuService) DeleteCategory(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error {
	if err := s.authorize(p, restaurantID); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.menu.GetCategory(ctx, restaurantID, id); err != nil {
			return err
		}
		n, err := s.menu.CountItemsInCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return invalid("category still has %d menu item(s)", n)
		}
		_, err = s.menu.DeleteCategory(ctx, restaurantID, id)
		return err
	})
	if err != nil {
		return err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return nil
}

func (s *MenuService) ListItems(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.MenuItem, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.menu.ListItems(ctx, restaurantID, false)
	if err != nil {
		return nil, err
	}
	if err := s.attachGroups(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuService) GetItem(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) (*domain.MenuItem, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	item, err := s.menu.GetItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	items := []domain.MenuItem{*item}
	if err := s.attachGroups(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *MenuService) checkCategory(ctx context.Context, restaurantID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.menu.GetCategory(ctx, restaurantID, *categoryID)
	if errors.Is(err, storage.ErrNotFound) {
		return invalid("category does not belong to this restaurant")
	}
	return err
}

func (s *MenuService) CreateItem(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in ItemInput) (*domain.MenuItem, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, restaurantID, in.CategoryID); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		IsActive:     in.IsActive == nil || *in.IsActive,
		ImageURL:     in.ImageURL,
	}
	if err := s.menu.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return item, nil
}

// UpdateItem applies a partial update; omitted fields keep their stored values.
func (s *MenuService) UpdateItem(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID, in ItemPatchInput) (*domain.MenuItem, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if !in.ClearCategory {
		if err := s.checkCategory(ctx, restaurantID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	return s.patchItem(ctx, restaurantID, id, domain.MenuItemPatch{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		CategoryID:    in.CategoryID,
		ClearCategory: in.ClearCategory,
		ImageURL:      in.ImageURL,
		IsActive:      in.IsActive,
	})
}

func (s *MenuService) patchItem(ctx context.Context, restaurantID, id uuid.UUID, patch domain.MenuItemPatch) (*domain.MenuItem, error) {
	var item *domain.MenuItem
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.menu.GetItem(ctx, restaurantID, id)
		if err != nil {
			return err
		}
		patch.Apply(item)
		return s.menu.UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error {
	if err := s.authorize(p, restaurantID); err != nil {
		return err
	}
	n, err := s.menu.DeleteItem(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("menu item")
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return nil
}

// UploadItemImage stores the file under the upload directory and points the item at it.
func (s *MenuService) UploadItemImage(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID, img ImageUpload) (*domain.MenuItem, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	ext, ok := allowedImageTypes[img.ContentType]
	if !ok {
		return nil, invalid("invalid file type: only JPEG, PNG, GIF, WebP allowed")
	}
	if _, err := s.menu.GetItem(ctx, restaurantID, id); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	filename := "item_" + id.String() + "_" + uuid.NewString()[:8] + ext
	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return nil, fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, img.Body); err != nil {
		return nil, fmt.Errorf("save image file: %w", err)
	}

	imageURL := "/uploads/" + filename
	return s.patchItem(ctx, restaurantID, id, domain.MenuItemPatch{ImageURL: &imageURL})
}

func (s *MenuService) CreateOptionGroup(ctx context.Context, p auth.Principal, restaurantID, itemID uuid.UUID, in OptionGroupInput) (*domain.OptionGroup, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.MaxSelect > 0 && in.MinSelect > in.MaxSelect {
		return nil, invalid("min_select must not exceed max_select")
	}

	item, err := s.menu.GetItem(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	g := &domain.OptionGroup{
		RestaurantID: item.RestaurantID,
		MenuItemID:   item.ID,
		Name:         in.Name,
		MinSelect:    in.MinSelect,
		MaxSelect:    in.MaxSelect,
		IsRequired:   in.IsRequired,
		Options:      []domain.Option{},
	}
	if err := s.menu.CreateOptionGroup(ctx, g); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return g, nil
}

func (s *MenuService) DeleteOptionGroup(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error {
	if err := s.authorize(p, restaurantID); err != nil {
		return err
	}
	n, err := s.menu.DeleteOptionGroup(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("option group")
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return nil
}

func (s *MenuService) CreateOption(ctx context.Context, p auth.Principal, restaurantID, groupID uuid.UUID, in OptionInput) (*domain.Option, error) {
	if err := s.authorize(p, restaurantID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	group, err := s.menu.GetOptionGroup(ctx, restaurantID, groupID)
	if err != nil {
		return nil, err
	}

	o := &domain.Option{
		RestaurantID: group.RestaurantID,
		GroupID:      group.ID,
		Name:         in.Name,
		PriceDelta:   in.PriceDelta,
	}
	if err := s.menu.CreateOption(ctx, o); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return o, nil
}

func (s *MenuService) DeleteOption(ctx context.Context, p auth.Principal, restaurantID, id uuid.UUID) error {
	if err := s.authorize(p, restaurantID); err != nil {
		return err
	}
	n, err := s.menu.DeleteOption(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("option")
	}
	invalidateMenu(ctx, s.cache, restaurantID)
	return nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
