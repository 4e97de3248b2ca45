// Package cart assembles the pending order a diner builds from the menu.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/format"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/common/validation"
	"pizza-storefront/internal/models"
)

// Orderer places an order. service.PizzaService satisfies it.
type Orderer interface {
	Order(ctx context.Context, order models.Order) (*models.OrderResponse, error)
}

// StoreOption is one selectable store, labelled with its franchise.
type StoreOption struct {
	FranchiseID models.ID `json:"franchiseId"`
	StoreID     models.ID `json:"storeId"`
	Label       string    `json:"label"`
}

// StoreOptions flattens every franchise's stores into one list.
func StoreOptions(franchises []models.Franchise) []StoreOption {
	var options []StoreOption
	for _, f := range franchises {
		for _, s := range f.Stores {
			options = append(options, StoreOption{
				FranchiseID: f.ID,
				StoreID:     s.ID,
				Label:       s.Name,
			})
		}
	}
	return options
}

// Cart is a pending order. It is safe for concurrent use.
type Cart struct {
	mu     sync.Mutex
	order  models.Order
	logger logger.Logger
}

func New(log logger.Logger) *Cart {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Cart{logger: log}
}

// SelectStore pins the order to a store. An empty store id clears the selection.
func (c *Cart) SelectStore(option StoreOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if option.StoreID.IsZero() {
		c.order.FranchiseID = ""
		c.order.StoreID = ""
		return
	}
	c.order.FranchiseID = option.FranchiseID
	c.order.StoreID = option.StoreID
}

// Add appends a menu item. The same pizza may be added more than once.
func (c *Cart) Add(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Items = append(c.order.Items, models.OrderItem{
		MenuID:      item.ID,
		Description: item.Title,
		Price:       item.Price,
	})
}

// Remove drops the item at index i.
func (c *Cart) Remove(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.order.Items) {
		return false
	}
	c.order.Items = append(c.order.Items[:i], c.order.Items[i+1:]...)
	return true
}

// Reset empties the cart and clears the store selection.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = models.Order{}
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order.Items)
}

// CanCheckout reports whether a store is selected and at least one item added.
func (c *Cart) CanCheckout() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.order.StoreID.IsZero() && len(c.order.Items) > 0
}

// Order returns a copy of the pending order.
func (c *Cart) Order() models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	order := c.order
	order.Items = append([]models.OrderItem(nil), c.order.Items...)
	return order
}

func (c *Cart) Total() decimal.Decimal {
	return format.Total(c.Order().Prices())
}

// FormattedTotal renders the total, e.g. "25 ₿".
func (c *Cart) FormattedTotal() string {
	return format.Price(c.Total())
}

// Pending returns the order ready for payment. Nothing leaves the cart
// unless a store is selected and at least one item added.
func (c *Cart) Pending() (models.Order, error) {
	order := c.Order()
	if err := validation.ValidateCheckout(order); err != nil {
		metrics.CheckoutsBlocked.Inc()
		c.logger.Warn("Checkout blocked", map[string]interface{}{
			"storeId": order.StoreID.String(),
			"items":   len(order.Items),
			"code":    string(apperrors.CodeOf(err)),
		})
		return models.Order{}, err
	}
	return order, nil
}

// Checkout places the pending order and empties the cart on success.
func (c *Cart) Checkout(ctx context.Context, orderer Orderer) (*models.OrderResponse, error) {
	order, err := c.Pending()
	if err != nil {
		return nil, err
	}

	resp, err := orderer.Order(ctx, order)
	if err != nil {
		return nil, err
	}

	c.Reset()
	c.logger.Info("Order placed", map[string]interface{}{
		"orderId": resp.Order.ID.String(),
		"items":   len(resp.Order.Items),
	})
	return resp, nil
}
