// internal/domain/checkout/validation.go
package checkout

import (
	"regexp"
	"strings"
)

// Validation error messages shown next to form fields
const (
	MsgRequired       = "This field is required"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgInvalidPhone   = "Please enter a valid 10-digit phone number"
	MsgInvalidPincode = "Please enter a valid 6-digit pincode"
)

var (
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex      = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRegex    = regexp.MustCompile(`^[0-9]{6}$`)
	whitespaceRegex = regexp.MustCompile(`\s`)
)

// CheckoutForm represents the checkout form fields
type CheckoutForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// CheckoutValidation represents the validation result. Errors maps
// field name to a single message, so each field can be revalidated on
// its own as the shopper edits it.
type CheckoutValidation struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ValidateForm checks every field and collects one error per field
func ValidateForm(form *CheckoutForm) *CheckoutValidation {
	fields := map[string]string{
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"email":      form.Email,
		"phone":      form.Phone,
		"address":    form.Address,
		"city":       form.City,
		"state":      form.State,
		"pincode":    form.Pincode,
	}

	errors := make(map[string]string)
	for name, value := range fields {
		if msg := ValidateField(name, value); msg != "" {
			errors[name] = msg
		}
	}

	if len(errors) == 0 {
		return &CheckoutValidation{IsValid: true}
	}
	return &CheckoutValidation{IsValid: false, Errors: errors}
}

// ValidateField validates a single form field and returns an error
// message, or empty when the value is acceptable. Required wins over
// format checks.
func ValidateField(name, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return MsgRequired
	}

	switch name {
	case "email":
		if !emailRegex.MatchString(trimmed) {
			return MsgInvalidEmail
		}
	case "phone":
		digits := whitespaceRegex.ReplaceAllString(trimmed, "")
		if !phoneRegex.MatchString(digits) {
			return MsgInvalidPhone
		}
	case "pincode":
		if !pincodeRegex.MatchString(trimmed) {
			return MsgInvalidPincode
		}
	}
	return ""
}
