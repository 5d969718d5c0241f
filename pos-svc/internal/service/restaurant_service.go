package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const statsDateLayout = "2006-01-02"

type CreateRestaurantInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=100"`
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, p auth.Principal, in CreateRestaurantInput) (*domain.Restaurant, error)
	List(ctx context.Context, p auth.Principal) ([]domain.Restaurant, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Restaurant, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	DailyStats(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID, date string) (*domain.DailyStats, error)
}

type RestaurantService struct {
	restaurants RestaurantRepository
	cache       MenuCache
	stats       StatsReader
	newToken    func() string
	now         func() time.Time
}

func NewRestaurantService(restaurants RestaurantRepository, cache MenuCache, stats StatsReader) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		cache:       cache,
		stats:       stats,
		newToken:    uuid.NewString,
		now:         time.Now,
	}
}

// Slugify lower-cases name and collapses every run of non-alphanumerics into one dash.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *RestaurantService) Create(ctx context.Context, p auth.Principal, in CreateRestaurantInput) (*domain.Restaurant, error) {
	if err := auth.Require(p, domain.RoleAdmin, nil); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		slug = "restaurant-" + s.newToken()[:8]
	}

	rest := &domain.Restaurant{
		Name:          in.Name,
		Slug:          slug,
		WaitlistToken: s.newToken(),
	}
	if err := s.restaurants.CreateRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	log.Info().Str("restaurant_id", rest.ID.String()).Str("slug", rest.Slug).Msg("restaurant created")
	return rest, nil
}

func (s *RestaurantService) List(ctx context.Context, p auth.Principal) ([]domain.Restaurant, error) {
	if err := auth.Require(p, domain.RoleAdmin, nil); err != nil {
		return nil, err
	}
	return s.restaurants.ListRestaurants(ctx)
}

func (s *RestaurantService) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Restaurant, error) {
	if err := auth.Require(p, domain.RoleManager, &id); err != nil {
		return nil, err
	}
	return s.restaurants.GetRestaurant(ctx, id)
}

// Delete removes the restaurant and every row that belongs to it.
func (s *RestaurantService) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if err := auth.Require(p, domain.RoleAdmin, nil); err != nil {
		return err
	}
	n, err := s.restaurants.DeleteRestaurantCascade(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("restaurant")
	}
	invalidateMenu(ctx, s.cache, id)
	log.Info().Str("restaurant_id", id.String()).Msg("restaurant deleted")
	return nil
}

func (s *RestaurantService) DailyStats(ctx context.Context, p auth.Principal, restaurantID *uuid.UUID, date string) (*domain.DailyStats, error) {
	rid, err := managerScope(p, restaurantID)
	if err != nil {
		return nil, err
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.now().UTC().Format(statsDateLayout)
	} else if _, err := time.Parse(statsDateLayout, date); err != nil {
		return nil, invalid("date must be formatted as YYYY-MM-DD")
	}
	if s.stats == nil {
		return &domain.DailyStats{RestaurantID: rid, Date: date, Counters: map[string]int64{}}, nil
	}
	return s.stats.DailyStats(ctx, rid, date)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
