package service_test

import (
	"context"
	"testing"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/mocks"
	"mfood/pos-svc/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type tableFixture struct {
	tables      *mocks.TableRepository
	restaurants *mocks.RestaurantRepository
	qr          *mocks.QRGenerator
	svc         *service.TableService
}

func newTableFixture(t *testing.T) *tableFixture {
	f := &tableFixture{
		tables:      mocks.NewTableRepository(t),
		restaurants: mocks.NewRestaurantRepository(t),
		qr:          mocks.NewQRGenerator(t),
	}
	f.svc = service.NewTableService(mocks.NewPassThroughTx(t), f.tables, f.restaurants, nil, f.qr, "https://pos.example.com/")
	return f
}

func TestTableService_ResizeGrow(t *testing.T) {
	f := newTableFixture(t)
	restID := uuid.New()
	existing := []domain.Table{
		{ID: uuid.New(), RestaurantID: restID, Name: "Table 1", Capacity: 4},
		{ID: uuid.New(), RestaurantID: restID, Name: "Table 2", Capacity: 4},
	}

	f.restaurants.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()
	f.tables.On("ListTables", mock.Anything, restID).Return(existing, nil).Twice()
	f.tables.On("CreateTable", mock.Anything, mock.MatchedBy(func(tbl *domain.Table) bool {
		return tbl.Name == "Table 3" && tbl.Capacity == 6 && tbl.RestaurantID == restID && tbl.Token != ""
	})).Return(nil).Once()
	f.tables.On("UpdateTableCapacity", mock.Anything, existing[1].ID, 2).Return(nil).Once()

	_, err := f.svc.Resize(context.Background(), admin(), restID, service.ResizeTablesInput{
		Total:        3,
		Capacities:   []int{4, 4, 6},
		CapacityByID: map[uuid.UUID]int{existing[1].ID: 2},
	})
	require.NoError(t, err)
}

func TestTableService_ResizeShrinkBlockedByOpenOrder(t *testing.T) {
	f := newTableFixture(t)
	restID := uuid.New()
	existing := []domain.Table{
		{ID: uuid.New(), RestaurantID: restID, Capacity: 4},
		{ID: uuid.New(), RestaurantID: restID, Capacity: 4},
	}

	f.restaurants.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()
	f.tables.On("ListTables", mock.Anything, restID).Return(existing, nil).Once()
	f.tables.On("CountOpenOrders", mock.Anything, []uuid.UUID{existing[1].ID}).Return(1, nil).Once()

	_, err := f.svc.Resize(context.Background(), admin(), restID, service.ResizeTablesInput{Total: 1})

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	f.tables.AssertNotCalled(t, "DeleteTables", mock.Anything, mock.Anything, mock.Anything)
}

func TestTableService_ResizeShrink(t *testing.T) {
	f := newTableFixture(t)
	restID := uuid.New()
	existing := []domain.Table{
		{ID: uuid.New(), RestaurantID: restID, Capacity: 4},
		{ID: uuid.New(), RestaurantID: restID, Capacity: 4},
		{ID: uuid.New(), RestaurantID: restID, Capacity: 4},
	}
	doomed := []uuid.UUID{existing[1].ID, existing[2].ID}

	f.restaurants.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()
	f.tables.On("ListTables", mock.Anything, restID).Return(existing, nil).Once()
	f.tables.On("CountOpenOrders", mock.Anything, doomed).Return(0, nil).Once()
	f.tables.On("DeleteTables", mock.Anything, restID, doomed).Return(int64(2), nil).Once()
	f.tables.On("ListTables", mock.Anything, restID).Return(existing[:1], nil).Once()

	tables, err := f.svc.Resize(context.Background(), admin(), restID, service.ResizeTablesInput{Total: 1})

	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestTableService_ResizeRejects(t *testing.T) {
	restID := uuid.New()

	t.Run("manager", func(t *testing.T) {
		f := newTableFixture(t)
		_, err := f.svc.Resize(context.Background(), managerOf(restID), restID, service.ResizeTablesInput{Total: 1})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("unknown table id", func(t *testing.T) {
		f := newTableFixture(t)
		f.restaurants.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()
		f.tables.On("ListTables", mock.Anything, restID).Return([]domain.Table{}, nil).Once()

		_, err := f.svc.Resize(context.Background(), admin(), restID, service.ResizeTablesInput{
			Total: 0, CapacityByID: map[uuid.UUID]int{uuid.New(): 2},
		})
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		f := newTableFixture(t)
		f.restaurants.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()
		f.tables.On("ListTables", mock.Anything, restID).Return([]domain.Table{}, nil).Once()

		_, err := f.svc.Resize(context.Background(), admin(), restID, service.ResizeTablesInput{Total: 1, Capacities: []int{0}})
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestTableService_RotateTokens(t *testing.T) {
	restID := uuid.New()
	tbl := &domain.Table{ID: uuid.New(), RestaurantID: restID, Token: "old"}

	t.Run("single table", func(t *testing.T) {
		f := newTableFixture(t)
		f.tables.On("GetTable", mock.Anything, tbl.ID).Return(tbl, nil).Once()
		f.tables.On("UpdateTableToken", mock.Anything, restID, tbl.ID, mock.MatchedBy(func(tok string) bool {
			return tok != "old" && tok != ""
		})).Return(nil).Once()

		res, err := f.svc.RotateTokens(context.Background(), admin(), restID, service.RotateTokensInput{Scope: "table", TableID: &tbl.ID})
		require.NoError(t, err)
		require.Len(t, res.Tables, 1)
		assert.NotEqual(t, "old", res.Tables[0].Token)
	})

	t.Run("all tables", func(t *testing.T) {
		f := newTableFixture(t)
		other := domain.Table{ID: uuid.New(), RestaurantID: restID}
		f.restaurants.On("GetRestaurant", mock.Anything, restID).Return(&domain.Restaurant{ID: restID}, nil).Once()
		f.tables.On("ListTables", mock.Anything, restID).Return([]domain.Table{*tbl, other}, nil).Once()
		f.tables.On("UpdateTableToken", mock.Anything, restID, mock.Anything, mock.Anything).Return(nil).Twice()

		res, err := f.svc.RotateTokens(context.Background(), admin(), restID, service.RotateTokensInput{Scope: "all"})
		require.NoError(t, err)
		assert.Len(t, res.Tables, 2)
	})

	t.Run("waitlist", func(t *testing.T) {
		f := newTableFixture(t)
		f.restaurants.On("UpdateWaitlistToken", mock.Anything, restID, mock.Anything).Return(nil).Once()

		res, err := f.svc.RotateTokens(context.Background(), admin(), restID, service.RotateTokensInput{Scope: "waitlist"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.WaitlistToken)
	})

	t.Run("table scope without id", func(t *testing.T) {
		f := newTableFixture(t)
		_, err := f.svc.RotateTokens(context.Background(), admin(), restID, service.RotateTokensInput{Scope: "table"})
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown scope", func(t *testing.T) {
		f := newTableFixture(t)
		_, err := f.svc.RotateTokens(context.Background(), admin(), restID, service.RotateTokensInput{Scope: "everything"})
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestTableService_QRCodes(t *testing.T) {
	restID := uuid.New()
	tbl := &domain.Table{ID: uuid.New(), RestaurantID: restID, Token: "abc"}

	f := newTableFixture(t)
	f.tables.On("GetTable", mock.Anything, tbl.ID).Return(tbl, nil).Once()
	f.qr.On("Generate", "https://pos.example.com/order?token=abc").Return([]byte("png"), nil).Once()
	f.restaurants.On("GetRestaurant", mock.Anything, restID).
		Return(&domain.Restaurant{ID: restID, WaitlistToken: "wl"}, nil).Once()
	f.qr.On("Generate", "https://pos.example.com/waitlist?restaurant="+restID.String()+"&token=wl").Return([]byte("png"), nil).Once()

	png, err := f.svc.TableQR(context.Background(), managerOf(restID), restID, tbl.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = f.svc.WaitlistQR(context.Background(), managerOf(restID), restID)
	require.NoError(t, err)
}

func TestDefaultQRGenerator(t *testing.T) {
	png, err := service.DefaultQRGenerator{}.Generate("https://pos.example.com/order?token=abc")
	require.NoError(t, err)
	assert.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
