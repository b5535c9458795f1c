package account

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type ChangePasswordInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordOutput struct {
	OK bool `json:"ok"`
	// Email is the stored address, which may differ in case from the input.
	Email string `json:"-"`
}

// ChangePassword replaces the stored hash after verifying the current
// password. The existing access token stays valid.
type ChangePassword struct {
	Repo           repository.AccountRepository
	Comparer       contract.HashComparer
	Hasher         contract.Hasher
	EmailValidator contract.EmailValidator
}

func NewChangePassword(repo repository.AccountRepository, cmp contract.HashComparer, hasher contract.Hasher, ev contract.EmailValidator) *ChangePassword {
	return &ChangePassword{Repo: repo, Comparer: cmp, Hasher: hasher, EmailValidator: ev}
}

func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) (*ChangePasswordOutput, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	acc, err := uc.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	if acc == nil {
		return nil, apperr.ErrAccountNotFound
	}
	ok, err := uc.Comparer.Compare(ctx, in.CurrentPassword, acc.Password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, apperr.ErrWrongPassword
	}

	hash, err := uc.Hasher.Hash(ctx, in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := uc.Repo.UpdateByID(ctx, acc.ID, repository.AccountUpdate{Password: &hash}); err != nil {
		return nil, fmt.Errorf("update account password: %w", err)
	}
	return &ChangePasswordOutput{OK: true, Email: acc.Email}, nil
}

func (uc *ChangePassword) validate(in ChangePasswordInput) error {
	err := requireAll(
		field{"email", in.Email},
		field{"currentPassword", in.CurrentPassword},
		field{"newPassword", in.NewPassword},
	)
	if err != nil {
		return err
	}
	if err := checkEmail(uc.EmailValidator, in.Email); err != nil {
		return err
	}
	return checkPasswords(field{"currentPassword", in.CurrentPassword}, field{"newPassword", in.NewPassword})
}
