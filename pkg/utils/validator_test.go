package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type usernameProbe struct {
	Username string `validate:"required,max=150,username"`
}

type slugProbe struct {
	Slug string `validate:"required,max=40,slug"`
}

func TestValidateStruct_Username(t *testing.T) {
	valid := []string{
		"reader",
		"reader.42",
		"first+last@works",
		"kebab-case",
		"under_score",
	}
	for _, name := range valid {
		errs := ValidateStruct(usernameProbe{Username: name})
		assert.Empty(t, errs, "expected %q to be valid", name)
	}

	invalid := []string{
		"me", // reserved for the self sub-resource
		"has space",
		"exclaim!",
		"slash/name",
	}
	for _, name := range invalid {
		errs := ValidateStruct(usernameProbe{Username: name})
		assert.NotEmpty(t, errs, "expected %q to be rejected", name)
	}
}

func TestValidateStruct_Slug(t *testing.T) {
	valid := []string{"movies", "sci-fi", "top-10-books"}
	for _, slug := range valid {
		errs := ValidateStruct(slugProbe{Slug: slug})
		assert.Empty(t, errs, "expected %q to be valid", slug)
	}

	invalid := []string{"Sci-Fi", "has space", "-leading", "trailing-", "double--dash", "ünïcode"}
	for _, slug := range invalid {
		errs := ValidateStruct(slugProbe{Slug: slug})
		assert.NotEmpty(t, errs, "expected %q to be rejected", slug)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil))

	out := FormatValidationErrors(map[string]string{"Username": "This field is required"})
	assert.Contains(t, out, "Username")
	assert.Contains(t, out, "required")
}
