// Package navigation holds the storefront route table and the breadcrumb
// and menu entries derived from it.
package navigation

import (
	"strings"

	"pizza-storefront/internal/common/auth"
	"pizza-storefront/internal/models"
)

// Slot is a place where a nav item can be shown.
type Slot string

const (
	SlotNav    Slot = "nav"
	SlotFooter Slot = "footer"
	SlotArrow  Slot = "arrow"
)

// Constraint decides whether an item is offered to user.
type Constraint func(user *models.User) bool

func LoggedIn(user *models.User) bool  { return user != nil }
func LoggedOut(user *models.User) bool { return user == nil }

// HasRole is satisfied by users holding role.
func HasRole(role models.Role) Constraint {
	return func(user *models.User) bool {
		return auth.IsAuthorized(user, role)
	}
}

// Item is one route. A route with SubPath also matches below any single
// parent segment, e.g. "/payment/login" for "/login".
type Item struct {
	Title       string
	To          string
	Display     []Slot
	Constraints []Constraint
	Roles       []models.Role
	SubPath     bool
}

// Shows reports whether the item belongs in slot.
func (i Item) Shows(slot Slot) bool {
	for _, s := range i.Display {
		if s == slot {
			return true
		}
	}
	return false
}

// Allowed reports whether every constraint accepts user.
func (i Item) Allowed(user *models.User) bool {
	for _, c := range i.Constraints {
		if !c(user) {
			return false
		}
	}
	return true
}

func (i Item) matches(path string) bool {
	if i.To == path {
		return true
	}
	if !i.SubPath {
		return false
	}
	parent := strings.TrimSuffix(path, i.To)
	return parent != path && parent != "" && !strings.Contains(parent[1:], "/")
}

// Routes is the storefront's route table.
var Routes = []Item{
	{Title: "Home", To: "/"},
	{Title: "Diner", To: "/diner-dashboard", Roles: []models.Role{}},
	{Title: "Order", To: "/menu", Display: []Slot{SlotNav}},
	{Title: "Franchise", To: "/franchise-dashboard", Display: []Slot{SlotNav, SlotFooter}},
	{Title: "About", To: "/about", Display: []Slot{SlotFooter}},
	{Title: "History", To: "/history", Display: []Slot{SlotFooter}},
	{Title: "Admin", To: "/admin-dashboard", Display: []Slot{SlotNav}, Constraints: []Constraint{HasRole(models.RoleAdmin)}, Roles: []models.Role{models.RoleAdmin}},
	{Title: "Create franchise", To: "/create-franchise", SubPath: true, Roles: []models.Role{models.RoleAdmin}},
	{Title: "Close franchise", To: "/close-franchise", SubPath: true, Roles: []models.Role{models.RoleAdmin}},
	{Title: "Create store", To: "/create-store", SubPath: true, Roles: []models.Role{models.RoleAdmin, models.RoleFranchisee}},
	{Title: "Close store", To: "/close-store", SubPath: true, Roles: []models.Role{models.RoleAdmin, models.RoleFranchisee}},
	{Title: "Payment", To: "/payment"},
	{Title: "Delivery", To: "/delivery"},
	{Title: "Login", To: "/login", SubPath: true, Display: []Slot{SlotNav}, Constraints: []Constraint{LoggedOut}},
	{Title: "Register", To: "/register", SubPath: true, Display: []Slot{SlotNav}, Constraints: []Constraint{LoggedOut}},
	{Title: "Logout", To: "/logout", SubPath: true, Display: []Slot{SlotNav}, Constraints: []Constraint{LoggedIn}},
	{Title: "Docs", To: "/docs"},
}

// Items returns the routes offered to user in slot, in table order.
func Items(routes []Item, slot Slot, user *models.User) []Item {
	var out []Item
	for _, item := range routes {
		if item.Shows(slot) && item.Allowed(user) {
			out = append(out, item)
		}
	}
	return out
}

// Match finds the route for path. Unknown paths fall through to ok == false.
func Match(routes []Item, path string) (Item, bool) {
	path = normalize(path)
	for _, item := range routes {
		if item.matches(path) {
			return item, true
		}
	}
	if strings.HasPrefix(path, "/docs/") {
		return Match(routes, "/docs")
	}
	return Item{}, false
}

// CanView reports whether user may open the route. Roles is advisory; the
// service enforces authorization on every request.
func (i Item) CanView(user *models.User) bool {
	if i.Roles == nil {
		return true
	}
	if len(i.Roles) == 0 {
		return user != nil
	}
	return auth.IsAuthorizedAny(user, i.Roles...)
}

// Crumb is one breadcrumb link.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Breadcrumb links home and then each segment of path cumulatively, so
// "menu/items" yields home, menu and items.
func Breadcrumb(path string) []Crumb {
	crumbs := []Crumb{{Label: "home", Href: "/"}}
	href := ""
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		href += "/" + segment
		crumbs = append(crumbs, Crumb{Label: segment, Href: href})
	}
	return crumbs
}

// Header is what the page header shows for user.
type Header struct {
	Title    string `json:"title"`
	Items    []Item `json:"-"`
	Initials string `json:"initials,omitempty"`
}

// NewHeader builds the header for user from routes.
func NewHeader(title string, routes []Item, user *models.User) Header {
	return Header{
		Title:    title,
		Items:    Items(routes, SlotNav, user),
		Initials: user.Initials(),
	}
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
