package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
	Confirm  string `json:"confirm_password" validate:"eqfield=Password"`
	Gender   string `json:"gender" validate:"omitempty,oneof=M F"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()

	fields := v.Struct(sample{Password: "a", Confirm: "b", Gender: "X"})
	require.NotNil(t, fields)
	assert.Equal(t, "this field is required", fields["username"])
	assert.Equal(t, "values do not match", fields["confirm_password"])
	assert.Contains(t, fields, "gender")
}

func TestStructValid(t *testing.T) {
	v := New()

	assert.Nil(t, v.Struct(sample{Username: "jdoe", Password: "x", Confirm: "x", Gender: "F"}))
}
