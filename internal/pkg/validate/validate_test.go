package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,max=10"`
}

func TestStruct(t *testing.T) {
	assert.Nil(t, Struct(&sample{Email: "asha@example.org", Name: "Asha"}))

	errs := Struct(&sample{Email: "not-an-email", Name: ""})
	require.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "email", errs[0].Rule)
	assert.Equal(t, "name", errs[1].Field)
	assert.Equal(t, "required", errs[1].Rule)
}

func TestStructParam(t *testing.T) {
	errs := Struct(&sample{Email: "asha@example.org", Name: "far-too-long-a-name"})
	require.Len(t, errs, 1)
	assert.Equal(t, "max", errs[0].Rule)
	assert.Equal(t, "10", errs[0].Param)
}

func TestVar(t *testing.T) {
	assert.True(t, Var("asha@example.org", "required,email"))
	assert.False(t, Var("nope", "required,email"))
}
