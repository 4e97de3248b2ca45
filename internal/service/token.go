package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
)

// OrderClaims is the body of the token the factory signs for an order.
type OrderClaims struct {
	jwt.RegisteredClaims
	Vendor map[string]interface{} `json:"vendor,omitempty"`
	Diner  map[string]interface{} `json:"diner,omitempty"`
	Order  *models.Order          `json:"order,omitempty"`
}

// InspectOrderToken decodes an order token for display. The signature is not
// checked here; VerifyOrder asks the service to do that.
func InspectOrderToken(token string) (*OrderClaims, error) {
	claims := &OrderClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, apperrors.NewValidationError("order token is malformed",
			apperrors.FieldError{Field: "jwt", Message: fmt.Sprintf("cannot be decoded: %v", err)})
	}
	return claims, nil
}
