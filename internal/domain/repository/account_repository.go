package repository

import (
	"context"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

// AccountRepository defines persistence operations for accounts.
// FindByEmail returns (nil, nil) when no account matches; email matching is
// case-insensitive. Save returns apperr.ErrEmailAlreadyExists when the store
// rejects a duplicate email.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	Save(ctx context.Context, a *entity.Account) error
	UpdateByID(ctx context.Context, id string, update AccountUpdate) error
}

// AccountUpdate lists the mutable account fields; nil fields are left untouched.
type AccountUpdate struct {
	Password *string
}
