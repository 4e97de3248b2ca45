package dashboard

import (
	"context"

	"pizza-storefront/internal/common/auth"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/task"
)

// FranchiseLister is the facade call the franchise dashboard needs.
type FranchiseLister interface {
	GetFranchise(ctx context.Context, user *models.User) ([]models.Franchise, error)
}

// FranchiseDashboard shows the first franchise the user administers.
type FranchiseDashboard struct {
	User *models.User

	franchises *task.Task[[]models.Franchise]
}

// FranchiseView is the settled dashboard content. Placeholder is the
// franchise pitch when the user owns nothing.
type FranchiseView struct {
	Franchise   *models.Franchise `json:"franchise,omitempty"`
	Name        string            `json:"name,omitempty"`
	Stores      []StoreRow        `json:"stores,omitempty"`
	CanEdit     bool              `json:"canEdit"`
	Placeholder *Placeholder      `json:"placeholder,omitempty"`
}

// NewFranchiseDashboard starts loading user's franchises. A signed-out user
// gets the pitch without a request.
func NewFranchiseDashboard(ctx context.Context, franchises FranchiseLister, user *models.User) *FranchiseDashboard {
	d := &FranchiseDashboard{User: user}
	if user == nil {
		d.franchises = task.Completed[[]models.Franchise](nil)
		return d
	}
	d.franchises = task.Run(ctx, func(ctx context.Context) ([]models.Franchise, error) {
		return franchises.GetFranchise(ctx, user)
	})
	return d
}

func (d *FranchiseDashboard) State() task.State {
	return d.franchises.State()
}

func (d *FranchiseDashboard) View(ctx context.Context) (*FranchiseView, error) {
	list, err := d.franchises.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return &FranchiseView{Placeholder: show(FranchisePitch)}, nil
	}

	f := list[0]
	return &FranchiseView{
		Franchise: &f,
		Name:      f.Name,
		Stores:    storeRows(f.Stores),
		CanEdit:   auth.IsAuthorizedAny(d.User, models.RoleFranchisee, models.RoleAdmin),
	}, nil
}

// CreateStore is where the "Create store" action leads.
func (v *FranchiseView) CreateStore() Target {
	return Target{Path: CreateStorePath, Franchise: v.Franchise}
}

// CloseStore is where a store's "Close" action leads.
func (v *FranchiseView) CloseStore(store models.Store) Target {
	return Target{Path: CloseStorePath, Franchise: v.Franchise, Store: &store}
}
