// Package dashboard builds the storefront's role-specific views: the diner
// kitchen, the franchise and admin dashboards, payment and delivery.
//
// Views load through internal/task so callers can show a pending state
// while the facade call is in flight.
package dashboard

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pizza-storefront/internal/common/format"
	"pizza-storefront/internal/models"
)

// Placeholder is shown instead of a view's content.
type Placeholder struct {
	Title       string `json:"title,omitempty"`
	Message     string `json:"message"`
	ActionLabel string `json:"actionLabel,omitempty"`
	ActionHref  string `json:"actionHref,omitempty"`
}

var (
	NotFound = Placeholder{
		Title:   "Oops",
		Message: "It looks like we have dropped a pizza on the floor. Please try another page.",
	}

	NoOrders = Placeholder{
		Message:     "How have you lived this long without having a pizza?",
		ActionLabel: "Buy one",
		ActionHref:  MenuPath,
	}

	FranchisePitch = Placeholder{
		Title: "So you want a piece of the pie?",
		Message: "Now is the time to get in on the JWT Pizza tsunami. The pizza sells itself. " +
			"People cannot get enough. Setup your shop and let the pizza fly. " +
			"Call us to find out how to become a franchisee.",
	}
)

func show(p Placeholder) *Placeholder {
	return &p
}

// Paths the views navigate to.
const (
	MenuPath            = "/menu"
	PaymentPath         = "/payment"
	PaymentLoginPath    = "/payment/login"
	DeliveryPath        = "/delivery"
	FranchisePath       = "/franchise-dashboard"
	CreateStorePath     = FranchisePath + "/create-store"
	CloseStorePath      = FranchisePath + "/close-store"
	AdminPath           = "/admin-dashboard"
	CreateFranchisePath = AdminPath + "/create-franchise"
	CloseFranchisePath  = AdminPath + "/close-franchise"
)

// Target is a navigation request together with the state it carries.
type Target struct {
	Path      string            `json:"path"`
	Franchise *models.Franchise `json:"franchise,omitempty"`
	Store     *models.Store     `json:"store,omitempty"`
}

var roleTitle = cases.Title(language.English)

// FormatRole renders an assignment, e.g. "diner" or "Franchisee on 3".
func FormatRole(assignment models.RoleAssignment) string {
	if assignment.ObjectID.IsZero() {
		return string(assignment.Role)
	}
	return fmt.Sprintf("%s on %s", roleTitle.String(string(assignment.Role)), assignment.ObjectID)
}

// FormatRoles renders every role of user.
func FormatRoles(user *models.User) []string {
	if user == nil {
		return nil
	}
	out := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		out = append(out, FormatRole(r))
	}
	return out
}

// StoreRow is one store line on a franchise or admin dashboard.
type StoreRow struct {
	ID      models.ID `json:"id"`
	Name    string    `json:"name"`
	Revenue string    `json:"revenue"`
}

func storeRows(stores []models.Store) []StoreRow {
	rows := make([]StoreRow, 0, len(stores))
	for _, s := range stores {
		revenue := 0.0
		if s.TotalRevenue != nil {
			revenue = *s.TotalRevenue
		}
		rows = append(rows, StoreRow{ID: s.ID, Name: s.Name, Revenue: format.PriceFloat(revenue)})
	}
	return rows
}

func adminNames(admins []models.FranchiseAdmin) string {
	names := make([]string, 0, len(admins))
	for _, a := range admins {
		name := a.Name
		if name == "" {
			name = a.Email
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// CloseFranchiseConfirmation is asked before a franchise is closed.
func CloseFranchiseConfirmation(f models.Franchise) string {
	return fmt.Sprintf("Are you sure you want to close the %s franchise? "+
		"This will close all associated stores and cannot be restored.", f.Name)
}

// CloseStoreConfirmation is asked before a store is closed.
func CloseStoreConfirmation(f models.Franchise, s models.Store) string {
	return fmt.Sprintf("Are you sure you want to close the %s store %s? "+
		"This cannot be restored.", f.Name, s.Name)
}
