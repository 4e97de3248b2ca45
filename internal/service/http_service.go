package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/observability"
	"pizza-storefront/internal/common/validation"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"
	"pizza-storefront/pkg/catalog"
)

// HTTPService implements PizzaService against the remote API.
type HTTPService struct {
	api      Requester
	factory  Requester
	sessions session.Store
	logger   logger.Logger
	obs      *observability.Observability
}

var _ PizzaService = (*HTTPService)(nil)

type Option func(*HTTPService)

// WithFactory sets the client used for factory docs.
func WithFactory(r Requester) Option {
	return func(s *HTTPService) { s.factory = r }
}

func WithLogger(l logger.Logger) Option {
	return func(s *HTTPService) { s.logger = l }
}

func WithObservability(o *observability.Observability) Option {
	return func(s *HTTPService) { s.obs = o }
}

func NewHTTPService(api Requester, sessions session.Store, opts ...Option) *HTTPService {
	s := &HTTPService{
		api:      api,
		sessions: sessions,
		logger:   logger.NewNoOpLogger(),
		obs:      observability.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ==========================================
// Authentication
// ==========================================

func (s *HTTPService) Login(ctx context.Context, email, password string) (user *models.User, err error) {
	ctx, end := s.obs.StartOperation(ctx, "login")
	defer func() { end(err) }()

	form := validation.LoginForm{Email: email, Password: password}
	if err = validation.ValidateLogin(form); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "login", form)
}

func (s *HTTPService) Register(ctx context.Context, name, email, password string) (user *models.User, err error) {
	ctx, end := s.obs.StartOperation(ctx, "register")
	defer func() { end(err) }()

	form := validation.RegisterForm{Name: name, Email: email, Password: password}
	if err = validation.ValidateRegister(form); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "register", form)
}

// authenticate stores the session only after the service accepted the credentials.
func (s *HTTPService) authenticate(ctx context.Context, operation string, form interface{}) (*models.User, error) {
	var resp models.AuthResponse
	if err := s.api.Do(ctx, http.MethodPost, "/auth", form, &resp); err != nil {
		s.logger.Warn("Authentication rejected", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return nil, err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, apperrors.NewInvalidResponseError(http.StatusOK, fmt.Errorf("%s response is missing user or token", operation))
	}

	if err := s.sessions.Set(ctx, resp.User, resp.Token); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("User signed in", map[string]interface{}{
		"operation": operation,
		"userId":    resp.User.ID.String(),
		"token":     logger.MaskToken(resp.Token),
	})
	return resp.User, nil
}

// Logout asks the service to revoke the credential, then always clears the
// local session. A service failure is still returned.
func (s *HTTPService) Logout(ctx context.Context) (err error) {
	ctx, end := s.obs.StartOperation(ctx, "logout")
	defer func() { end(err) }()

	var remoteErr error
	current, getErr := s.sessions.Get(ctx)
	if getErr == nil && current != nil {
		remoteErr = s.api.Do(ctx, http.MethodDelete, "/auth", nil, nil)
		if remoteErr != nil {
			s.logger.Warn("Service logout failed, clearing local session anyway", map[string]interface{}{
				"error": remoteErr.Error(),
			})
		}
	}

	if clearErr := s.sessions.Clear(ctx); clearErr != nil {
		s.logger.Error("Failed to clear session", map[string]interface{}{"error": clearErr.Error()})
		if remoteErr == nil {
			return fmt.Errorf("clear session: %w", clearErr)
		}
	}
	return remoteErr
}

// GetUser returns the stored user without contacting the service. The stored
// representation is trusted; the service rejects stale credentials on use.
func (s *HTTPService) GetUser(ctx context.Context) (*models.User, error) {
	current, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if current == nil {
		return nil, nil
	}
	return current.User, nil
}

// ==========================================
// Ordering
// ==========================================

func (s *HTTPService) GetMenu(ctx context.Context) (menu models.Menu, err error) {
	ctx, end := s.obs.StartOperation(ctx, "getMenu")
	defer func() { end(err) }()

	if err = s.api.Do(ctx, http.MethodGet, "/order/menu", nil, &menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *HTTPService) GetOrders(ctx context.Context, user *models.User) (history *models.OrderHistory, err error) {
	ctx, end := s.obs.StartOperation(ctx, "getOrders", userAttr(user))
	defer func() { end(err) }()

	history = &models.OrderHistory{}
	if err = s.api.Do(ctx, http.MethodGet, "/order", nil, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *HTTPService) Order(ctx context.Context, order models.Order) (resp *models.OrderResponse, err error) {
	ctx, end := s.obs.StartOperation(ctx, "order",
		attribute.String("storeId", order.StoreID.String()),
		attribute.Int("items", len(order.Items)),
	)
	defer func() { end(err) }()

	if err = validation.ValidateCheckout(order); err != nil {
		return nil, err
	}

	resp = &models.OrderResponse{}
	if err = s.api.Do(ctx, http.MethodPost, "/order", order, resp); err != nil {
		return nil, err
	}
	s.logger.Info("Order placed", map[string]interface{}{
		"orderId": resp.Order.ID.String(),
		"storeId": order.StoreID.String(),
		"items":   len(order.Items),
	})
	return resp, nil
}

func (s *HTTPService) VerifyOrder(ctx context.Context, token string) (payload *models.JWTPayload, err error) {
	ctx, end := s.obs.StartOperation(ctx, "verifyOrder")
	defer func() { end(err) }()

	if err = validation.ValidateOrderToken(token); err != nil {
		return nil, err
	}

	payload = &models.JWTPayload{}
	if err = s.api.Do(ctx, http.MethodPost, "/order/verify", models.VerifyOrderRequest{JWT: token}, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ==========================================
// Franchises
// ==========================================

// GetFranchise lists the franchises user administers.
func (s *HTTPService) GetFranchise(ctx context.Context, user *models.User) (franchises []models.Franchise, err error) {
	ctx, end := s.obs.StartOperation(ctx, "getFranchise", userAttr(user))
	defer func() { end(err) }()

	if user == nil {
		return nil, apperrors.NewValidationError("a signed in user is required", apperrors.FieldError{Field: "user", Message: "is required"})
	}
	if err = validation.ValidateIdentifier("userId", user.ID); err != nil {
		return nil, err
	}

	if err = s.api.Do(ctx, http.MethodGet, "/franchise/"+url.PathEscape(user.ID.String()), nil, &franchises); err != nil {
		return nil, err
	}
	return franchises, nil
}

// GetFranchises accepts both a bare list and a {franchises, more} page.
func (s *HTTPService) GetFranchises(ctx context.Context) (franchises []models.Franchise, err error) {
	ctx, end := s.obs.StartOperation(ctx, "getFranchises")
	defer func() { end(err) }()

	var raw json.RawMessage
	if err = s.api.Do(ctx, http.MethodGet, "/franchise", nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '[' {
		err = json.Unmarshal(raw, &franchises)
	} else {
		var page models.FranchiseList
		err = json.Unmarshal(raw, &page)
		franchises = page.Franchises
	}
	if err != nil {
		return nil, apperrors.NewInvalidResponseError(http.StatusOK, err)
	}
	return franchises, nil
}

func (s *HTTPService) CreateFranchise(ctx context.Context, franchise models.Franchise) (created *models.Franchise, err error) {
	ctx, end := s.obs.StartOperation(ctx, "createFranchise")
	defer func() { end(err) }()

	if err = validation.ValidateFranchise(franchise); err != nil {
		return nil, err
	}

	created = &models.Franchise{}
	if err = s.api.Do(ctx, http.MethodPost, "/franchise", franchise, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPService) CloseFranchise(ctx context.Context, franchise models.Franchise) (err error) {
	ctx, end := s.obs.StartOperation(ctx, "closeFranchise", attribute.String("franchiseId", franchise.ID.String()))
	defer func() { end(err) }()

	if err = validation.ValidateIdentifier("franchiseId", franchise.ID); err != nil {
		return err
	}
	return s.api.Do(ctx, http.MethodDelete, franchisePath(franchise), nil, nil)
}

func (s *HTTPService) CreateStore(ctx context.Context, franchise models.Franchise, store models.Store) (created *models.Store, err error) {
	ctx, end := s.obs.StartOperation(ctx, "createStore", attribute.String("franchiseId", franchise.ID.String()))
	defer func() { end(err) }()

	if err = validation.ValidateStore(franchise, store); err != nil {
		return nil, err
	}

	created = &models.Store{}
	if err = s.api.Do(ctx, http.MethodPost, franchisePath(franchise)+"/store", store, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPService) CloseStore(ctx context.Context, franchise models.Franchise, store models.Store) (err error) {
	ctx, end := s.obs.StartOperation(ctx, "closeStore",
		attribute.String("franchiseId", franchise.ID.String()),
		attribute.String("storeId", store.ID.String()),
	)
	defer func() { end(err) }()

	if err = validation.ValidateIdentifier("franchiseId", franchise.ID); err != nil {
		return err
	}
	if err = validation.ValidateIdentifier("storeId", store.ID); err != nil {
		return err
	}
	return s.api.Do(ctx, http.MethodDelete, franchisePath(franchise)+"/store/"+url.PathEscape(store.ID.String()), nil, nil)
}

// ==========================================
// Docs
// ==========================================

func (s *HTTPService) Docs(ctx context.Context, docType string) (docs *catalog.Catalog, err error) {
	ctx, end := s.obs.StartOperation(ctx, "docs", attribute.String("docType", docType))
	defer func() { end(err) }()

	requester := s.api
	switch docType {
	case "", DocsService:
	case DocsFactory:
		if s.factory == nil {
			return nil, apperrors.NewValidationError("factory docs are not configured", apperrors.FieldError{Field: "docType", Message: "factory endpoint is not set"})
		}
		requester = s.factory
	default:
		return nil, apperrors.NewValidationError("unknown docs type", apperrors.FieldError{Field: "docType", Message: fmt.Sprintf("must be %q or %q", DocsService, DocsFactory)})
	}

	docs = &catalog.Catalog{}
	if err = requester.Do(ctx, http.MethodGet, "/docs", nil, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func franchisePath(f models.Franchise) string {
	return "/franchise/" + url.PathEscape(f.ID.String())
}

func userAttr(user *models.User) attribute.KeyValue {
	if user == nil {
		return attribute.String("userId", "")
	}
	return attribute.String("userId", user.ID.String())
}
