// Package service is the storefront's facade over the pizza service API.
// Each operation issues at most one request and returns API failures
// unchanged.
package service

import (
	"context"

	"pizza-storefront/internal/models"
	"pizza-storefront/pkg/catalog"
)

// PizzaService is everything the storefront asks of the pizza service.
type PizzaService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	GetUser(ctx context.Context) (*models.User, error)
	GetMenu(ctx context.Context) (models.Menu, error)
	GetOrders(ctx context.Context, user *models.User) (*models.OrderHistory, error)
	Order(ctx context.Context, order models.Order) (*models.OrderResponse, error)
	VerifyOrder(ctx context.Context, token string) (*models.JWTPayload, error)
	GetFranchise(ctx context.Context, user *models.User) ([]models.Franchise, error)
	GetFranchises(ctx context.Context) ([]models.Franchise, error)
	CreateFranchise(ctx context.Context, franchise models.Franchise) (*models.Franchise, error)
	CloseFranchise(ctx context.Context, franchise models.Franchise) error
	CreateStore(ctx context.Context, franchise models.Franchise, store models.Store) (*models.Store, error)
	CloseStore(ctx context.Context, franchise models.Franchise, store models.Store) error
	Docs(ctx context.Context, docType string) (*catalog.Catalog, error)
}

// Requester is the API client surface the facade depends on.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Doc types accepted by Docs.
const (
	DocsService = "service"
	DocsFactory = "factory"
)
