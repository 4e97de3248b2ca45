package models

import "encoding/json"

// OrderItem is a menu item snapshot inside an order.
type OrderItem struct {
	MenuID      ID      `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order is a pending or placed order. Id and date are assigned by the server.
type Order struct {
	ID          ID          `json:"id,omitempty"`
	FranchiseID ID          `json:"franchiseId,omitempty"`
	StoreID     ID          `json:"storeId,omitempty"`
	Date        string      `json:"date,omitempty"`
	Items       []OrderItem `json:"items"`
}

// Prices lists item prices in order.
func (o Order) Prices() []float64 {
	prices := make([]float64, 0, len(o.Items))
	for _, item := range o.Items {
		prices = append(prices, item.Price)
	}
	return prices
}

// OrderResponse is the placed order plus a signed token vouching for it.
type OrderResponse struct {
	Order Order  `json:"order"`
	Token string `json:"jwt"`
}

// UnmarshalJSON accepts the token under either "jwt" or "token".
func (r *OrderResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Order Order  `json:"order"`
		JWT   string `json:"jwt"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Order = wire.Order
	r.Token = wire.JWT
	if r.Token == "" {
		r.Token = wire.Token
	}
	return nil
}

// OrderHistory is a diner's past orders.
type OrderHistory struct {
	ID      ID      `json:"id,omitempty"`
	DinerID ID      `json:"dinerId,omitempty"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page,omitempty"`
	More    bool    `json:"more,omitempty"`
}

// JWTPayload is the verification result for an order token. The payload is
// passed through untouched.
type JWTPayload struct {
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// VerifyOrderRequest is the body sent to order verification.
type VerifyOrderRequest struct {
	JWT string `json:"jwt"`
}
