package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
)

type MockOrderer struct {
	mock.Mock
}

func (m *MockOrderer) Order(ctx context.Context, order models.Order) (*models.OrderResponse, error) {
	args := m.Called(ctx, order)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.OrderResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	veggie    = models.MenuItem{ID: "1", Title: "Veggie", Description: "A garden of delight", Price: 0.0038}
	pepperoni = models.MenuItem{ID: "2", Title: "Pepperoni", Description: "Spicy treat", Price: 0.0042}

	franchises = []models.Franchise{
		{ID: "10", Name: "pizzaPocket", Stores: []models.Store{{ID: "4", Name: "SLC"}, {ID: "5", Name: "Provo"}}},
		{ID: "11", Name: "crustCo", Stores: []models.Store{{ID: "7", Name: "Orem"}}},
		{ID: "12", Name: "empty"},
	}
)

func TestStoreOptions(t *testing.T) {
	options := StoreOptions(franchises)
	require.Len(t, options, 3)
	assert.Equal(t, StoreOption{FranchiseID: "10", StoreID: "4", Label: "SLC"}, options[0])
	assert.Equal(t, StoreOption{FranchiseID: "11", StoreID: "7", Label: "Orem"}, options[2])

	assert.Empty(t, StoreOptions(nil))
}

func TestCart_AddBuildsOrderItems(t *testing.T) {
	c := New(logger.NewTestLogger(t))
	c.Add(veggie)
	c.Add(pepperoni)
	c.Add(veggie)

	assert.Equal(t, 3, c.Count())
	order := c.Order()
	assert.Equal(t, models.OrderItem{MenuID: "1", Description: "Veggie", Price: 0.0038}, order.Items[0])
	assert.Equal(t, "0.0118 ₿", c.FormattedTotal())

	order.Items[0].Price = 99
	assert.Equal(t, 0.0038, c.Order().Items[0].Price, "Order returns a copy")
}

func TestCart_Remove(t *testing.T) {
	c := New(nil)
	c.Add(veggie)
	c.Add(pepperoni)

	assert.False(t, c.Remove(5))
	assert.True(t, c.Remove(0))
	assert.Equal(t, models.ID("2"), c.Order().Items[0].MenuID)
}

func TestCart_CanCheckout(t *testing.T) {
	tests := []struct {
		name  string
		store bool
		items int
		want  bool
	}{
		{"empty", false, 0, false},
		{"store only", true, 0, false},
		{"items only", false, 2, false},
		{"store and items", true, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			if tt.store {
				c.SelectStore(StoreOptions(franchises)[0])
			}
			for i := 0; i < tt.items; i++ {
				c.Add(veggie)
			}
			assert.Equal(t, tt.want, c.CanCheckout())
		})
	}
}

func TestCart_SelectStoreClears(t *testing.T) {
	c := New(nil)
	c.SelectStore(StoreOptions(franchises)[1])
	assert.Equal(t, models.ID("10"), c.Order().FranchiseID)

	c.SelectStore(StoreOption{})
	assert.True(t, c.Order().StoreID.IsZero())
	assert.True(t, c.Order().FranchiseID.IsZero())
}

func TestCart_CheckoutBlockedWithoutCallingService(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Cart)
		field string
	}{
		{"no store", func(c *Cart) { c.Add(veggie) }, "storeId"},
		{"no items", func(c *Cart) { c.SelectStore(StoreOptions(franchises)[0]) }, "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderer := new(MockOrderer)
			c := New(logger.NewTestLogger(t))
			tt.setup(c)

			before := testutil.ToFloat64(metrics.CheckoutsBlocked)
			resp, err := c.Checkout(context.Background(), orderer)

			assert.Nil(t, resp)
			vErr, ok := apperrors.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeCheckoutBlocked, vErr.Code)
			fields := make([]string, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.CheckoutsBlocked))
			orderer.AssertNotCalled(t, "Order", mock.Anything, mock.Anything)
		})
	}
}

func TestCart_Pending(t *testing.T) {
	c := New(nil)
	_, err := c.Pending()
	assert.True(t, apperrors.IsValidationError(err))

	c.SelectStore(StoreOptions(franchises)[2])
	c.Add(pepperoni)
	order, err := c.Pending()
	require.NoError(t, err)
	assert.Equal(t, models.ID("11"), order.FranchiseID)
	assert.Equal(t, models.ID("7"), order.StoreID)
	assert.Equal(t, 1, c.Count(), "Pending leaves the cart intact")
}

func TestCart_CheckoutPlacesOrder(t *testing.T) {
	c := New(logger.NewTestLogger(t))
	c.SelectStore(StoreOptions(franchises)[0])
	c.Add(veggie)

	expected := models.Order{
		FranchiseID: "10",
		StoreID:     "4",
		Items:       []models.OrderItem{{MenuID: "1", Description: "Veggie", Price: 0.0038}},
	}
	placed := expected
	placed.ID = "23"

	orderer := new(MockOrderer)
	orderer.On("Order", mock.Anything, expected).
		Return(&models.OrderResponse{Order: placed, Token: "jwt"}, nil).Once()

	resp, err := c.Checkout(context.Background(), orderer)
	require.NoError(t, err)
	assert.Equal(t, models.ID("23"), resp.Order.ID)
	assert.Equal(t, "jwt", resp.Token)
	assert.Zero(t, c.Count())
	orderer.AssertExpectations(t)
}

func TestCart_CheckoutKeepsCartOnFailure(t *testing.T) {
	c := New(nil)
	c.SelectStore(StoreOptions(franchises)[0])
	c.Add(veggie)

	orderer := new(MockOrderer)
	orderer.On("Order", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAPIError(500, "Failed to fulfill order at factory")).Once()

	_, err := c.Checkout(context.Background(), orderer)

	var apiErr *apperrors.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to fulfill order at factory", apiErr.Message)
	assert.Equal(t, 1, c.Count())
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(pepperoni)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Count())
}
