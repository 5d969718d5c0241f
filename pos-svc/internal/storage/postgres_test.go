package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"mfood/pos-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))
	assert.ErrorIs(t, mapError(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapError(&pq.Error{Code: "23505"}), ErrDuplicateKey)

	other := &pq.Error{Code: "23503"}
	assert.Equal(t, error(other), mapError(other))
}

func TestInTxCommitsAndReusesOuterTx(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := repo.InTx(context.Background(), func(ctx context.Context) error {
		return repo.InTx(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestInTxRollsBackOnError(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.InTx(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestInsertOpenOrder(t *testing.T) {
	restID, tableID := uuid.New(), uuid.New()

	t.Run("inserted", func(t *testing.T) {
		repo, mock := setupRepo(t)
		orderID := uuid.New()
		now := time.Now()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(restID.String(), tableID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "total_amount", "created_at", "updated_at"}).
				AddRow(orderID.String(), 0, now, now))

		order, err := repo.InsertOpenOrder(context.Background(), restID, tableID)

		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, domain.OrderOpen, order.Status)
		assert.Empty(t, order.Items)
	})

	t.Run("table already has an open order", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery("ON CONFLICT").
			WithArgs(restID.String(), tableID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "total_amount", "created_at", "updated_at"}))

		_, err := repo.InsertOpenOrder(context.Background(), restID, tableID)

		assert.ErrorIs(t, err, ErrDuplicateKey)
	})
}

func TestTransitionOrder(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "status allowed", affected: 1, want: true},
		{name: "status moved on", affected: 0, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepo(t)
			id := uuid.New()
			mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1")).
				WithArgs("sent", id.String(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, testCase.affected))

			changed, err := repo.TransitionOrder(context.Background(), id, []domain.OrderStatus{domain.OrderOpen}, domain.OrderSent)

			require.NoError(t, err)
			assert.Equal(t, testCase.want, changed)
		})
	}
}

func TestCompleteOpenOrderForTable(t *testing.T) {
	repo, mock := setupRepo(t)
	tableID := uuid.New()
	mock.ExpectQuery("UPDATE orders SET status = 'completed'").
		WithArgs(tableID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id, err := repo.CompleteOpenOrderForTable(context.Background(), tableID)

	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestTransitionWaitlistKeepsTableWhenNil(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()
	mock.ExpectExec("COALESCE").
		WithArgs("called", nil, id.String(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.TransitionWaitlist(context.Background(), id,
		[]domain.WaitlistStatus{domain.WaitlistWaiting}, domain.WaitlistCalled, nil)

	require.NoError(t, err)
	assert.True(t, changed)
}

func TestWaitlistPosition(t *testing.T) {
	repo, mock := setupRepo(t)
	restID := uuid.New()
	createdAt := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(restID.String(), createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.WaitlistPosition(context.Background(), restID, createdAt)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGetRestaurantNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()
	mock.ExpectQuery("FROM restaurants WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "waitlist_token", "created_at"}))

	_, err := repo.GetRestaurant(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRestaurantDuplicateSlug(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery("INSERT INTO restaurants").
		WithArgs("Seoul Kitchen", "seoul-kitchen", "tok").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateRestaurant(context.Background(), &domain.Restaurant{Name: "Seoul Kitchen", Slug: "seoul-kitchen", WaitlistToken: "tok"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDeleteRestaurantCascade(t *testing.T) {
	t.Run("children before parent", func(t *testing.T) {
		repo, mock := setupRepo(t)
		id := uuid.New()
		mock.ExpectBegin()
		for _, stmt := range restaurantCascade {
			mock.ExpectExec(regexp.QuoteMeta(stmt)).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 2))
		}
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM restaurants WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		n, err := repo.DeleteRestaurantCascade(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("failure rolls back", func(t *testing.T) {
		repo, mock := setupRepo(t)
		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(restaurantCascade[0])).WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		_, err := repo.DeleteRestaurantCascade(context.Background(), id)

		assert.ErrorContains(t, err, "lock timeout")
	})
}

func TestInsertOrderItem(t *testing.T) {
	orderID := uuid.New()
	item := func() *domain.OrderItem {
		return &domain.OrderItem{OrderID: orderID, MenuItemID: uuid.New(), MenuItemName: "Mandu", Quantity: 2, UnitPrice: 5000}
	}

	t.Run("open order", func(t *testing.T) {
		repo, mock := setupRepo(t)
		row := item()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET total_amount = total_amount + $1")).
			WithArgs(int64(10000), orderID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO order_items").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))

		require.NoError(t, repo.InsertOrderItem(context.Background(), row))
		assert.NotEqual(t, uuid.Nil, row.ID)
	})

	t.Run("order no longer open", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec("status = 'open'").
			WithArgs(int64(10000), orderID.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.InsertOrderItem(context.Background(), item())

		assert.ErrorIs(t, err, ErrOrderNotOpen)
	})
}
