package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestOk(t *testing.T) {
	resp := Ok(map[string]string{"id": "cus-1"})

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]string{"id": "cus-1"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("Customer not found")

	assert.False(t, resp.Success)
	assert.Equal(t, "Customer not found", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestFail(t *testing.T) {
	resp := Fail("validation failed", "field Name is required")

	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Equal(t, "field Name is required", resp.Message)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Password string `validate:"min=8"`
	}

	err := validator.New().Struct(form{Email: "not-an-email", Password: "short"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)

	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Message, "field Name is required")
	assert.Contains(t, resp.Message, "field Email is not a valid email")
	assert.Contains(t, resp.Message, "field Password is too short")
}
