package service

import (
	"context"
	"fmt"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
)

type ResizeTablesInput struct {
	Total        int               `json:"total" validate:"min=0,max=200"`
	Capacities   []int             `json:"capacities" validate:"max=200"`
	CapacityByID map[uuid.UUID]int `json:"capacity_by_id"`
}

const (
	RotateTable    = "table"
	RotateAll      = "all"
	RotateWaitlist = "waitlist"
)

type RotateTokensInput struct {
	Scope   string     `json:"scope" validate:"required,oneof=table all waitlist"`
	TableID *uuid.UUID `json:"table_id"`
}

// RotateTokensResult lists the tokens written by a rotation.
type RotateTokensResult struct {
	Tables        []domain.Table `json:"tables,omitempty"`
	WaitlistToken string         `json:"waitlist_token,omitempty"`
}

type TableServiceInterface interface {
	List(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.Table, error)
	Resize(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in ResizeTablesInput) ([]domain.Table, error)
	RotateTokens(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in RotateTokensInput) (*RotateTokensResult, error)
	TableQR(ctx context.Context, p auth.Principal, restaurantID, tableID uuid.UUID) ([]byte, error)
	WaitlistQR(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]byte, error)
}

type TableService struct {
	tx          TxRunner
	tables      TableRepository
	restaurants RestaurantRepository
	cache       MenuCache
	qr          QRGenerator
	baseURL     string
	newToken    func() string
}

func NewTableService(tx TxRunner, tables TableRepository, restaurants RestaurantRepository, cache MenuCache, qr QRGenerator, baseURL string) *TableService {
	return &TableService{
		tx:          tx,
		tables:      tables,
		restaurants: restaurants,
		cache:       cache,
		qr:          qr,
		baseURL:     baseURL,
		newToken:    uuid.NewString,
	}
}

func (s *TableService) List(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]domain.Table, error) {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return nil, err
	}
	return s.tables.ListTables(ctx, restaurantID)
}

// Resize reconciles the table count and capacities in one transaction. Tables that still
// hold an open order are never deleted.
func (s *TableService) Resize(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in ResizeTablesInput) ([]domain.Table, error) {
	if err := auth.Require(p, domain.RoleAdmin, nil); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	var result []domain.Table
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.tables.ListTables(ctx, restaurantID)
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]bool, len(existing))
		for _, t := range existing {
			known[t.ID] = true
		}
		for id := range in.CapacityByID {
			if !known[id] {
				return invalid("table %s does not belong to this restaurant", id)
			}
		}

		plan, err := domain.PlanTableResize(existing, in.Total, in.Capacities, in.CapacityByID, s.newToken)
		if err != nil {
			return invalid("%s", err.Error())
		}

		if len(plan.Delete) > 0 {
			busy, err := s.tables.CountOpenOrders(ctx, plan.Delete)
			if err != nil {
				return err
			}
			if busy > 0 {
				return invalid("%d table(s) to remove still have open orders", busy)
			}
			if _, err := s.tables.DeleteTables(ctx, restaurantID, plan.Delete); err != nil {
				return err
			}
		}
		for i := range plan.Create {
			t := plan.Create[i]
			t.RestaurantID = restaurantID
			if err := s.tables.CreateTable(ctx, &t); err != nil {
				return fmt.Errorf("create %s: %w", t.Name, err)
			}
		}
		for id, capacity := range plan.Capacities {
			if err := s.tables.UpdateTableCapacity(ctx, id, capacity); err != nil {
				return err
			}
		}

		result, err = s.tables.ListTables(ctx, restaurantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RotateTokens overwrites table and/or waitlist tokens, which invalidates printed QR codes.
func (s *TableService) RotateTokens(ctx context.Context, p auth.Principal, restaurantID uuid.UUID, in RotateTokensInput) (*RotateTokensResult, error) {
	if err := auth.Require(p, domain.RoleAdmin, nil); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Scope == RotateTable && (in.TableID == nil || *in.TableID == uuid.Nil) {
		return nil, invalid("table_id is required")
	}

	result := &RotateTokensResult{}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		switch in.Scope {
		case RotateWaitlist:
			token := s.newToken()
			if err := s.restaurants.UpdateWaitlistToken(ctx, restaurantID, token); err != nil {
				return err
			}
			result.WaitlistToken = token
			return nil
		case RotateTable:
			table, err := s.tables.GetTable(ctx, *in.TableID)
			if err != nil {
				return err
			}
			if table.RestaurantID != restaurantID {
				return invalid("table does not belong to this restaurant")
			}
			return s.rotate(ctx, result, []domain.Table{*table})
		default:
			if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
				return err
			}
			tables, err := s.tables.ListTables(ctx, restaurantID)
			if err != nil {
				return err
			}
			return s.rotate(ctx, result, tables)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *TableService) rotate(ctx context.Context, result *RotateTokensResult, tables []domain.Table) error {
	for _, t := range tables {
		t.Token = s.newToken()
		if err := s.tables.UpdateTableToken(ctx, t.RestaurantID, t.ID, t.Token); err != nil {
			return err
		}
		result.Tables = append(result.Tables, t)
	}
	return nil
}

func (s *TableService) TableQR(ctx context.Context, p auth.Principal, restaurantID, tableID uuid.UUID) ([]byte, error) {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return nil, err
	}
	table, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table.RestaurantID != restaurantID {
		return nil, errNotFound("table")
	}
	return s.qr.Generate(tableOrderURL(s.baseURL, table.Token))
}

func (s *TableService) WaitlistQR(ctx context.Context, p auth.Principal, restaurantID uuid.UUID) ([]byte, error) {
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		return nil, err
	}
	rest, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(waitlistURL(s.baseURL, rest.ID, rest.WaitlistToken))
}

var _ TableServiceInterface = (*TableService)(nil)
