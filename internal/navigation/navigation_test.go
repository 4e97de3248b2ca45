package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/models"
)

var (
	diner = &models.User{ID: "3", Name: "John Doe", Email: "d@jwt.com", Roles: []models.RoleAssignment{{Role: models.RoleDiner}}}
	admin = &models.User{ID: "1", Name: "Mama Ricci", Email: "a@jwt.com", Roles: []models.RoleAssignment{{Role: models.RoleAdmin}}}
	owner = &models.User{ID: "2", Name: "pizza franchisee", Roles: []models.RoleAssignment{{Role: models.RoleFranchisee, ObjectID: "1"}}}
)

func titles(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestBreadcrumb(t *testing.T) {
	tests := []struct {
		path string
		want []Crumb
	}{
		{"", []Crumb{{"home", "/"}}},
		{"/", []Crumb{{"home", "/"}}},
		{"menu", []Crumb{{"home", "/"}, {"menu", "/menu"}}},
		{"menu/items", []Crumb{{"home", "/"}, {"menu", "/menu"}, {"items", "/menu/items"}}},
		{"/franchise-dashboard/create-store/", []Crumb{
			{"home", "/"},
			{"franchise-dashboard", "/franchise-dashboard"},
			{"create-store", "/franchise-dashboard/create-store"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Breadcrumb(tt.path))
		})
	}
}

func TestItems_NavBySession(t *testing.T) {
	assert.Equal(t, []string{"Order", "Franchise", "Login", "Register"}, titles(Items(Routes, SlotNav, nil)))
	assert.Equal(t, []string{"Order", "Franchise", "Logout"}, titles(Items(Routes, SlotNav, diner)))
	assert.Equal(t, []string{"Order", "Franchise", "Admin", "Logout"}, titles(Items(Routes, SlotNav, admin)))
}

func TestItems_Footer(t *testing.T) {
	assert.Equal(t, []string{"Franchise", "About", "History"}, titles(Items(Routes, SlotFooter, nil)))
	assert.Empty(t, Items(Routes, SlotArrow, admin))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path  string
		title string
		ok    bool
	}{
		{"/", "Home", true},
		{"/menu", "Order", true},
		{"/menu/", "Order", true},
		{"/login", "Login", true},
		{"/payment/login", "Login", true},
		{"/admin-dashboard/create-franchise", "Create franchise", true},
		{"/franchise-dashboard/close-store?id=4", "Close store", true},
		{"/docs/factory", "Docs", true},
		{"/a/b/login", "", false},
		{"/nowhere", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item, ok := Match(Routes, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, item.Title)
		})
	}
}

func TestCanView(t *testing.T) {
	find := func(path string) Item {
		item, ok := Match(Routes, path)
		require.True(t, ok, path)
		return item
	}

	assert.True(t, find("/menu").CanView(nil))
	assert.False(t, find("/diner-dashboard").CanView(nil))
	assert.True(t, find("/diner-dashboard").CanView(diner))

	assert.False(t, find("/admin-dashboard").CanView(diner))
	assert.True(t, find("/admin-dashboard").CanView(admin))

	assert.True(t, find("/franchise-dashboard/create-store").CanView(owner))
	assert.False(t, find("/admin-dashboard/create-franchise").CanView(owner))
}

func TestNewHeader(t *testing.T) {
	h := NewHeader("JWT Pizza", Routes, diner)
	assert.Equal(t, "JD", h.Initials)
	assert.Equal(t, []string{"Order", "Franchise", "Logout"}, titles(h.Items))

	anonymous := NewHeader("JWT Pizza", Routes, nil)
	assert.Empty(t, anonymous.Initials)
	assert.Contains(t, titles(anonymous.Items), "Login")
}
