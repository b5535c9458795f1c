package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared validator configured for request schemas:
// - field names in errors come from JSON tags.
// - "strongpwd" enforces IsStrongPassword.
// - "weburl" is an alias for an http(s) URL.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		})
		v.RegisterAlias("weburl", "http_url")
		engine = v
	})
	return engine
}

// SchemaValidator checks the shape of a route input before the use case runs.
type SchemaValidator interface {
	Validate(input any) error
}

// FieldError names the first field of a schema that failed validation.
// Missing is set when the field was absent rather than malformed.
type FieldError struct {
	Field   string
	Missing bool
}

func (e *FieldError) Error() string {
	if e.Missing {
		return e.Field + " param is missing"
	}
	return e.Field + " param is invalid."
}

// StructValidator validates tagged structs and reports the first failing
// field as a *FieldError.
type StructValidator struct {
	v *validator.Validate
}

func NewStructValidator() *StructValidator {
	return &StructValidator{v: Engine()}
}

func (s *StructValidator) Validate(input any) error {
	return FirstFieldError(s.v.Struct(input))
}

// FirstFieldError converts a validator error into a *FieldError for the first
// failing field. A failed "required" means the field is missing. Errors that
// are not validation errors are returned unchanged.
func FirstFieldError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &FieldError{
		Field:   rootField(fe.Field()),
		Missing: fe.Tag() == "required" && !strings.Contains(fe.Field(), "["),
	}
}

// rootField strips slice indexes, so "domains[2]" reports as "domains".
func rootField(f string) string {
	if i := strings.IndexByte(f, '['); i >= 0 {
		return f[:i]
	}
	return f
}

// EmailValidator implements contract.EmailValidator with the validator's
// RFC 5322 email rule.
type EmailValidator struct {
	v *validator.Validate
}

func NewEmailValidator() *EmailValidator {
	return &EmailValidator{v: Engine()}
}

func (e *EmailValidator) IsValid(email string) bool {
	return e.v.Var(email, "required,email") == nil
}
