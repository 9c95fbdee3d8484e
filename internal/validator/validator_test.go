package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"omitempty,member-role"`
	Plan       string `json:"subscription_plan" validate:"omitempty,plan-tier"`
	LabelColor string `json:"label_color" validate:"omitempty,label-color"`
	Phone      string `json:"phone_number" validate:"omitempty,phone"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	valid := sampleRequest{
		Email:      "ada@taskify.test",
		Role:       "editor",
		Plan:       "Pro",
		LabelColor: "0xFF00AA11",
		Phone:      "87011234567",
	}
	assert.NoError(t, v.Validate(valid))

	valid.LabelColor = "#00AA11"
	assert.NoError(t, v.Validate(valid))
}

func TestValidate_ErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{
		Email:      "not-an-email",
		Role:       "owner",
		Plan:       "gold",
		LabelColor: "red",
		Phone:      "+7-701",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be one of: viewer, editor", vErr.Errors["role"])
	assert.Contains(t, vErr.Errors, "subscription_plan")
	assert.Contains(t, vErr.Errors, "label_color")
	assert.Contains(t, vErr.Errors, "phone_number")
}
