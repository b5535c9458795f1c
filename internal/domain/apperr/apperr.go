// Package apperr holds the error kinds shared by the use cases and mapped to
// HTTP statuses by the controllers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound         = errors.New("Account not found")
	ErrWrongPassword           = errors.New("Wrong password")
	ErrEmailAlreadyExists      = errors.New("Email already exists")
	ErrUniversityAlreadyExists = errors.New("University already exists")
	ErrUniversityNotFound      = errors.New("University not found")

	// ErrMissingParam and ErrInvalidParam are the kinds carried by ParamError.
	ErrMissingParam = errors.New("missing param")
	ErrInvalidParam = errors.New("invalid param")
)

// ParamError reports an input field that is absent or malformed.
type ParamError struct {
	Kind  error
	Param string
}

func MissingParam(param string) *ParamError {
	return &ParamError{Kind: ErrMissingParam, Param: param}
}

func InvalidParam(param string) *ParamError {
	return &ParamError{Kind: ErrInvalidParam, Param: param}
}

func (e *ParamError) Error() string {
	if errors.Is(e.Kind, ErrMissingParam) {
		return fmt.Sprintf("%s param is missing", e.Param)
	}
	return fmt.Sprintf("%s param is invalid.", e.Param)
}

// Is matches the kind sentinel so callers can use errors.Is(err, ErrMissingParam).
func (e *ParamError) Is(target error) bool {
	return target == e.Kind
}

// IsParamError reports whether err carries a *ParamError anywhere in its chain.
func IsParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}
