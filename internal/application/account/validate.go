package account

import (
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/validation"
)

type field struct {
	name  string
	value string
}

// requireAll returns MissingParam for the first empty field, in order.
func requireAll(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return apperr.MissingParam(f.name)
		}
	}
	return nil
}

func checkEmail(ev contract.EmailValidator, email string) error {
	if !ev.IsValid(email) {
		return apperr.InvalidParam("email")
	}
	return nil
}

// checkPasswords applies the password policy to each field independently.
func checkPasswords(fields ...field) error {
	for _, f := range fields {
		if !validation.IsStrongPassword(f.value) {
			return apperr.InvalidParam(f.name)
		}
	}
	return nil
}
