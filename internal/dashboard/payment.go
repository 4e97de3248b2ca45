package dashboard

import (
	"context"
	"encoding/json"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/format"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/service"
)

// Orderer places an order.
type Orderer interface {
	Order(ctx context.Context, order models.Order) (*models.OrderResponse, error)
}

// Verifier asks the service whether an order token is genuine.
type Verifier interface {
	VerifyOrder(ctx context.Context, token string) (*models.JWTPayload, error)
}

// ErrorPrefix marks a failure message shown inline.
const ErrorPrefix = "⚠️ "

// Payment confirms a pending order before it is sent.
type Payment struct {
	User  *models.User
	Order models.Order
	Error string
}

// PaymentItem is one line of the payment summary.
type PaymentItem struct {
	Description string `json:"description"`
	Price       string `json:"price"`
}

func NewPayment(user *models.User, order models.Order) *Payment {
	return &Payment{User: user, Order: order}
}

// Redirect returns where a signed-out diner is sent, keeping the order.
func (p *Payment) Redirect() (Target, bool) {
	if p.User != nil {
		return Target{}, false
	}
	return Target{Path: PaymentLoginPath}, true
}

func (p *Payment) Items() []PaymentItem {
	items := make([]PaymentItem, 0, len(p.Order.Items))
	for _, item := range p.Order.Items {
		items = append(items, PaymentItem{Description: item.Description, Price: format.PriceFloat(item.Price)})
	}
	return items
}

// Total renders the order total, e.g. "25 ₿".
func (p *Payment) Total() string {
	return format.Price(format.Total(p.Order.Prices()))
}

// Pay places the order. On failure Error holds the message to show and the
// payment stays on screen.
func (p *Payment) Pay(ctx context.Context, orderer Orderer) (*Delivery, error) {
	p.Error = ""
	resp, err := orderer.Order(ctx, p.Order)
	if err != nil {
		p.Error = ErrorText(err)
		return nil, err
	}
	return &Delivery{Order: resp.Order, Token: resp.Token}, nil
}

// ErrorText renders err for inline display.
func ErrorText(err error) string {
	msg := err.Error()
	if apiErr, ok := apperrors.AsAPIError(err); ok {
		msg = apiErr.Message
	} else if vErr, ok := apperrors.AsValidationError(err); ok {
		msg = vErr.Message
	}
	return ErrorPrefix + msg
}

const DeliveryTitle = "Here is your JWT Pizza!"

// Delivery is the placed order and the token the factory signed for it.
type Delivery struct {
	Order models.Order `json:"order"`
	Token string       `json:"jwt"`
}

type DeliveryView struct {
	Title    string    `json:"title"`
	OrderID  models.ID `json:"orderId"`
	PieCount int       `json:"pieCount"`
	Total    string    `json:"total"`
	Token    string    `json:"jwt"`
}

func (d *Delivery) View() DeliveryView {
	return DeliveryView{
		Title:    DeliveryTitle,
		OrderID:  d.Order.ID,
		PieCount: len(d.Order.Items),
		Total:    format.Price(format.Total(d.Order.Prices())),
		Token:    d.Token,
	}
}

// OrderMore is where "Order more" leads.
func (d *Delivery) OrderMore() Target {
	return Target{Path: MenuPath}
}

// Verification is the outcome of checking a delivery's token.
type Verification struct {
	Valid   bool                 `json:"valid"`
	Title   string               `json:"title"`
	Message string               `json:"message"`
	Payload json.RawMessage      `json:"payload,omitempty"`
	Claims  *service.OrderClaims `json:"claims,omitempty"`
}

// Verify asks the service about the token. A rejected token is reported
// in the result, not as an error. Transport failures and a rejected
// session credential are returned so the caller can resolve them.
func (d *Delivery) Verify(ctx context.Context, verifier Verifier) (*Verification, error) {
	claims, _ := service.InspectOrderToken(d.Token)

	result, err := verifier.VerifyOrder(ctx, d.Token)
	if err != nil {
		if apperrors.IsNetworkError(err) || apperrors.IsUnauthorized(err) {
			return nil, err
		}
		return &Verification{
			Valid:   false,
			Title:   "JWT Pizza - invalid",
			Message: ErrorText(err),
			Claims:  claims,
		}, nil
	}
	return &Verification{
		Valid:   true,
		Title:   "JWT Pizza - valid",
		Message: result.Message,
		Payload: result.Payload,
		Claims:  claims,
	}, nil
}
