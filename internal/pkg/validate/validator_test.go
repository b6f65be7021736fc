package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback,omitempty" validate:"omitempty,max=5"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(&rateRequest{Rating: 7, Feedback: "too long"})
	require.Error(t, err)

	var fieldsErr *FieldsError
	require.True(t, errors.As(err, &fieldsErr))
	assert.Contains(t, fieldsErr.Fields, "rating")
	assert.Contains(t, fieldsErr.Fields, "feedback")
	assert.Equal(t, "invalid fields: feedback, rating", fieldsErr.Error())
}

func TestValidateStructPasses(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateStruct(&rateRequest{Rating: 4}))
}
