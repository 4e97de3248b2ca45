package dashboard

import (
	"context"

	"pizza-storefront/internal/common/format"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/task"
)

// OrderLister is the facade call the diner dashboard needs.
type OrderLister interface {
	GetOrders(ctx context.Context, user *models.User) (*models.OrderHistory, error)
}

const DinerTitle = "Your pizza kitchen"

// DinerDashboard is a diner's profile and order history.
type DinerDashboard struct {
	Title       string
	User        *models.User
	Roles       []string
	Placeholder *Placeholder

	orders *task.Task[*models.OrderHistory]
}

// OrderRow is one past order.
type OrderRow struct {
	ID    models.ID `json:"id"`
	Price string    `json:"price"`
	Date  string    `json:"date"`
}

// DinerView is the settled dashboard content.
type DinerView struct {
	Title       string       `json:"title"`
	Name        string       `json:"name,omitempty"`
	Email       string       `json:"email,omitempty"`
	Roles       []string     `json:"roles,omitempty"`
	Orders      []OrderRow   `json:"orders,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// NewDinerDashboard starts loading user's orders. Without a user the view is
// the not-found placeholder and nothing is requested.
func NewDinerDashboard(ctx context.Context, orders OrderLister, user *models.User) *DinerDashboard {
	d := &DinerDashboard{Title: DinerTitle, User: user}
	if user == nil {
		d.Placeholder = show(NotFound)
		d.orders = task.Completed[*models.OrderHistory](nil)
		return d
	}
	d.Roles = FormatRoles(user)
	d.orders = task.Run(ctx, func(ctx context.Context) (*models.OrderHistory, error) {
		return orders.GetOrders(ctx, user)
	})
	return d
}

func (d *DinerDashboard) State() task.State {
	return d.orders.State()
}

// View waits for the orders and renders the dashboard.
func (d *DinerDashboard) View(ctx context.Context) (*DinerView, error) {
	view := &DinerView{Title: d.Title, Placeholder: d.Placeholder}
	if d.User == nil {
		return view, nil
	}
	view.Name = d.User.Name
	view.Email = d.User.Email
	view.Roles = d.Roles

	history, err := d.orders.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if history == nil || len(history.Orders) == 0 {
		view.Placeholder = show(NoOrders)
		return view, nil
	}
	for _, o := range history.Orders {
		view.Orders = append(view.Orders, OrderRow{
			ID:    o.ID,
			Price: format.Price(format.Total(o.Prices())),
			Date:  o.Date,
		})
	}
	return view, nil
}
