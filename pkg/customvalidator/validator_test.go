package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phonePayload struct {
	Phone string `validate:"omitempty,e164_TJ"`
}

type emailPayload struct {
	Email string `validate:"required,email"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestTajikPhoneNumber(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(phonePayload{Phone: "+992900123456"}))
	assert.NoError(t, v.Struct(phonePayload{}), "пустой телефон допустим при omitempty")

	assert.Error(t, v.Struct(phonePayload{Phone: "900123456"}))
	assert.Error(t, v.Struct(phonePayload{Phone: "+992900"}))
	assert.Error(t, v.Struct(phonePayload{Phone: "+79001234567"}))
}

func TestEmailFormat(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(emailPayload{Email: "student@university.tj"}))
	assert.Error(t, v.Struct(emailPayload{Email: "not-an-email"}))
	assert.Error(t, v.Struct(emailPayload{Email: "missing@tld"}))
}
