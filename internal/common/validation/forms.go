package validation

import (
	"strings"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
)

const nonBlank = `\S`

func requiredString(description string) Property {
	return Property{Type: "string", Description: description, MinLength: intPtr(1), Pattern: nonBlank}
}

func emailString(description string) Property {
	return Property{Type: "string", Description: description, MinLength: intPtr(1), Format: "email"}
}

var (
	loginSchema = MustCompile("login form", JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"email":    emailString("Account email"),
			"password": requiredString("Account password"),
		},
		Required: []string{"email", "password"},
	})

	registerSchema = MustCompile("registration form", JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"name":     requiredString("Full name"),
			"email":    emailString("Account email"),
			"password": requiredString("Account password"),
		},
		Required: []string{"name", "email", "password"},
	})

	franchiseSchema = MustCompile("franchise form", JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"name": requiredString("Franchise name"),
			"admins": {
				Type:     "array",
				MinItems: intPtr(1),
				Items: &Property{
					Type:       "object",
					Properties: map[string]Property{"email": emailString("Franchisee email")},
					Required:   []string{"email"},
				},
			},
		},
		Required: []string{"name", "admins"},
	})

	storeSchema = MustCompile("store form", JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"name": requiredString("Store name"),
		},
		Required: []string{"name"},
	})

	checkoutSchema = MustCompile("order", JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"storeId": requiredString("Selected store"),
			"items":   {Type: "array", MinItems: intPtr(1)},
		},
		Required: []string{"storeId", "items"},
	})

	verifySchema = MustCompile("order token", JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"jwt": requiredString("Order token"),
		},
		Required: []string{"jwt"},
	})
)

// LoginForm is the input of the login screen.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm is the input of the registration screen.
type RegisterForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateLogin(form LoginForm) error {
	return loginSchema.Validate(form)
}

func ValidateRegister(form RegisterForm) error {
	return registerSchema.Validate(form)
}

func ValidateFranchise(f models.Franchise) error {
	return franchiseSchema.Validate(f)
}

// ValidateStore checks the store form and that it targets an existing franchise.
func ValidateStore(f models.Franchise, s models.Store) error {
	fields, err := storeSchema.Check(s)
	if err != nil {
		return err
	}
	if f.ID.IsZero() {
		fields = append([]apperrors.FieldError{{Field: "franchiseId", Message: "is required"}}, fields...)
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("invalid store form", fields...)
	}
	return nil
}

// ValidateCheckout enforces that an order has a store and at least one item.
func ValidateCheckout(order models.Order) error {
	fields, err := checkoutSchema.Check(checkoutDocument(order))
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return apperrors.NewCheckoutError(fields...)
	}
	return nil
}

func ValidateOrderToken(token string) error {
	return verifySchema.Validate(models.VerifyOrderRequest{JWT: token})
}

// ValidateIdentifier rejects blank ids for destructive operations.
func ValidateIdentifier(field string, id models.ID) error {
	if strings.TrimSpace(id.String()) == "" {
		return apperrors.NewValidationError("missing identifier", apperrors.FieldError{Field: field, Message: "is required"})
	}
	return nil
}

// Order omits empty store ids and nil items on the wire; the checkout
// schema needs both keys present to report them.
func checkoutDocument(order models.Order) map[string]interface{} {
	items := make([]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, item)
	}
	return map[string]interface{}{
		"storeId": order.StoreID.String(),
		"items":   items,
	}
}
