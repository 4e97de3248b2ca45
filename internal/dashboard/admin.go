package dashboard

import (
	"context"

	"pizza-storefront/internal/common/auth"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/task"
)

// AllFranchiseLister is the facade call the admin dashboard needs.
type AllFranchiseLister interface {
	GetFranchises(ctx context.Context) ([]models.Franchise, error)
}

const AdminTitle = "Mama Ricci's kitchen"

// AdminDashboard lists every franchise. Only admins see it.
type AdminDashboard struct {
	Title string
	Guard *auth.Guard

	franchises *task.Task[[]models.Franchise]
}

// FranchiseRow is one franchise on the admin dashboard.
type FranchiseRow struct {
	Franchise models.Franchise `json:"-"`
	Name      string           `json:"name"`
	Admins    string           `json:"admins"`
	Stores    []StoreRow       `json:"stores"`
}

type AdminView struct {
	Title       string         `json:"title"`
	Franchises  []FranchiseRow `json:"franchises,omitempty"`
	Placeholder *Placeholder   `json:"placeholder,omitempty"`
}

// NewAdminDashboard resolves the admin guard for user and, only when it
// passes, starts loading franchises.
func NewAdminDashboard(ctx context.Context, franchises AllFranchiseLister, user *models.User) *AdminDashboard {
	d := &AdminDashboard{Title: AdminTitle, Guard: auth.NewGuard(models.RoleAdmin)}
	if d.Guard.Resolve(user) != auth.Authorized {
		d.franchises = task.Completed[[]models.Franchise](nil)
		return d
	}
	d.franchises = task.Run(ctx, func(ctx context.Context) ([]models.Franchise, error) {
		return franchises.GetFranchises(ctx)
	})
	return d
}

func (d *AdminDashboard) State() task.State {
	return d.franchises.State()
}

func (d *AdminDashboard) View(ctx context.Context) (*AdminView, error) {
	if d.Guard.State() != auth.Authorized {
		return &AdminView{Placeholder: show(NotFound)}, nil
	}

	list, err := d.franchises.Wait(ctx)
	if err != nil {
		return nil, err
	}
	view := &AdminView{Title: d.Title}
	for _, f := range list {
		view.Franchises = append(view.Franchises, FranchiseRow{
			Franchise: f,
			Name:      f.Name,
			Admins:    adminNames(f.Admins),
			Stores:    storeRows(f.Stores),
		})
	}
	return view, nil
}

// Logout hides the dashboard again.
func (d *AdminDashboard) Logout() {
	d.Guard.Logout()
}

// CreateFranchise is where the "Add Franchise" action leads.
func (v *AdminView) CreateFranchise() Target {
	return Target{Path: CreateFranchisePath}
}

// CloseFranchise is where a franchise's "Close" action leads.
func (v *AdminView) CloseFranchise(row FranchiseRow) Target {
	f := row.Franchise
	return Target{Path: CloseFranchisePath, Franchise: &f}
}

// CloseStore is where a store's "Close" action leads from the admin view.
func (v *AdminView) CloseStore(row FranchiseRow, store models.Store) Target {
	f := row.Franchise
	return Target{Path: AdminPath + "/close-store", Franchise: &f, Store: &store}
}
