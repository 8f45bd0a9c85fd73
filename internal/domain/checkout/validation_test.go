// internal/domain/checkout/validation_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *CheckoutForm {
	return &CheckoutForm{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Address:   "12 Temple Street",
		City:      "Vijayawada",
		State:     "Andhra Pradesh",
		Pincode:   "521001",
	}
}

func TestValidateFormAccepted(t *testing.T) {
	validation := ValidateForm(validForm())

	assert.True(t, validation.IsValid)
	assert.Empty(t, validation.Errors)
}

func TestValidateFormCollectsOneErrorPerField(t *testing.T) {
	form := &CheckoutForm{
		Email:   "not-an-email",
		Phone:   "12345",
		Pincode: "abc",
	}

	validation := ValidateForm(form)
	require.False(t, validation.IsValid)

	assert.Equal(t, MsgRequired, validation.Errors["first_name"])
	assert.Equal(t, MsgRequired, validation.Errors["last_name"])
	assert.Equal(t, MsgRequired, validation.Errors["address"])
	assert.Equal(t, MsgRequired, validation.Errors["city"])
	assert.Equal(t, MsgRequired, validation.Errors["state"])
	assert.Equal(t, MsgInvalidEmail, validation.Errors["email"])
	assert.Equal(t, MsgInvalidPhone, validation.Errors["phone"])
	assert.Equal(t, MsgInvalidPincode, validation.Errors["pincode"])
	assert.Len(t, validation.Errors, 8)
}

func TestValidateFieldRequiredWinsOverFormat(t *testing.T) {
	assert.Equal(t, MsgRequired, ValidateField("email", "   "))
	assert.Equal(t, MsgRequired, ValidateField("phone", ""))
	assert.Equal(t, MsgRequired, ValidateField("pincode", "\t"))
}

func TestValidateFieldEmail(t *testing.T) {
	assert.Empty(t, ValidateField("email", "shopper@example.com"))
	assert.Empty(t, ValidateField("email", "a.b+c@sub.domain.in"))

	assert.Equal(t, MsgInvalidEmail, ValidateField("email", "shopper"))
	assert.Equal(t, MsgInvalidEmail, ValidateField("email", "shopper@nodot"))
	assert.Equal(t, MsgInvalidEmail, ValidateField("email", "a b@example.com"))
}

func TestValidateFieldPhoneIgnoresWhitespace(t *testing.T) {
	assert.Empty(t, ValidateField("phone", "9876543210"))
	assert.Empty(t, ValidateField("phone", "98765 43210"))
	assert.Empty(t, ValidateField("phone", " 98 76 54 32 10 "))

	assert.Equal(t, MsgInvalidPhone, ValidateField("phone", "987654321"))
	assert.Equal(t, MsgInvalidPhone, ValidateField("phone", "98765432100"))
	assert.Equal(t, MsgInvalidPhone, ValidateField("phone", "98765-43210"))
}

func TestValidateFieldPincode(t *testing.T) {
	assert.Empty(t, ValidateField("pincode", "521001"))

	assert.Equal(t, MsgInvalidPincode, ValidateField("pincode", "52100"))
	assert.Equal(t, MsgInvalidPincode, ValidateField("pincode", "5210011"))
	assert.Equal(t, MsgInvalidPincode, ValidateField("pincode", "52 100"))
}

func TestValidateFieldFreeTextOnlyRequiresPresence(t *testing.T) {
	assert.Empty(t, ValidateField("first_name", "A"))
	assert.Empty(t, ValidateField("address", "#4-21, Lane 2"))
}
