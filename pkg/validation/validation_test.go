package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryBody struct {
	Name string `json:"name" binding:"required,min=2"`
	Slug string `json:"slug" binding:"omitempty,slug"`
}

func TestSlugValidation(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	cases := []struct {
		slug  string
		valid bool
	}{
		{"succulents", true},
		{"air-plants-2", true},
		{"", true},
		{"Air-Plants", false},
		{"air--plants", false},
		{"-air", false},
		{"air plants", false},
	}
	for _, tc := range cases {
		t.Run(tc.slug, func(t *testing.T) {
			err := v.Struct(categoryBody{Name: "Air plants", Slug: tc.slug})
			assert.Equal(t, tc.valid, err == nil, "slug %q", tc.slug)
		})
	}
}

func TestMessages_UsesJSONNames(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(categoryBody{Name: "", Slug: "Bad Slug"})
	require.Error(t, err)

	msgs := Messages(err)
	assert.ElementsMatch(t, []string{
		"name is required",
		"slug may only contain lowercase letters, digits and single hyphens",
	}, msgs)
}

func TestMessages_NonValidationError(t *testing.T) {
	assert.Equal(t, []string{"unexpected EOF"}, Messages(errors.New("unexpected EOF")))
}

func TestRegisterGinValidations_Idempotent(t *testing.T) {
	require.NoError(t, RegisterGinValidations())
	require.NoError(t, RegisterGinValidations())
}
