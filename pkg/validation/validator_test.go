package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/validation"
)

type signupSchema struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type listSchema struct {
	Domains  []string `json:"domains" validate:"required,dive,min=5,max=100"`
	WebPages []string `json:"webPages" validate:"required,dive,weburl"`
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Abcdef1!":  true,
		"Abcde1.f":  true,
		"Abc1!":     false, // too short
		"abcdef1!":  false, // no upper
		"ABCDEF1!":  false, // no lower
		"Abcdefg!":  false, // no digit
		"Abcdefg1":  false, // no symbol
		"Abcdef1_x": false, // underscore is not in the symbol set
	}
	for pwd, want := range cases {
		require.Equal(t, want, validation.IsStrongPassword(pwd), pwd)
	}
}

func TestStructValidator_MissingBeforeInvalid(t *testing.T) {
	v := validation.NewStructValidator()

	err := v.Validate(signupSchema{Email: "ada@x.com", Password: "Abcdef1!"})
	var fe *validation.FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, validation.FieldError{Field: "name", Missing: true}, *fe)
	require.Equal(t, "name param is missing", err.Error())

	err = v.Validate(signupSchema{Name: "Ada", Email: "not-an-email", Password: "Abcdef1!"})
	require.ErrorAs(t, err, &fe)
	require.Equal(t, validation.FieldError{Field: "email"}, *fe)
	require.Equal(t, "email param is invalid.", err.Error())

	err = v.Validate(signupSchema{Name: "Ada", Email: "ada@x.com", Password: "weak"})
	require.Equal(t, "password param is invalid.", err.Error())

	require.NoError(t, v.Validate(signupSchema{Name: "Ada", Email: "ada@x.com", Password: "Abcdef1!"}))
}

func TestStructValidator_SliceElementsReportRootField(t *testing.T) {
	v := validation.NewStructValidator()

	err := v.Validate(listSchema{Domains: []string{"ok.example.com", "x"}, WebPages: []string{"https://a.edu"}})
	require.Equal(t, "domains param is invalid.", err.Error())

	err = v.Validate(listSchema{Domains: []string{"uba.ar.edu"}, WebPages: []string{"not a url"}})
	require.Equal(t, "webPages param is invalid.", err.Error())

	err = v.Validate(listSchema{Domains: []string{"uba.ar.edu"}})
	require.Equal(t, "webPages param is missing", err.Error())
}

func TestFirstFieldError_PassesThroughOtherErrors(t *testing.T) {
	require.NoError(t, validation.FirstFieldError(nil))

	boom := errors.New("boom")
	require.Same(t, boom, validation.FirstFieldError(boom))
}

func TestEmailValidator(t *testing.T) {
	ev := validation.NewEmailValidator()
	require.True(t, ev.IsValid("ada@x.com"))
	require.False(t, ev.IsValid("ada@"))
	require.False(t, ev.IsValid(""))
}
