package account

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string `json:"accessToken"`
}

// Login verifies credentials and hands back the token issued at signup.
// Tokens are not rotated here.
type Login struct {
	Repo           repository.AccountRepository
	Comparer       contract.HashComparer
	EmailValidator contract.EmailValidator
}

func NewLogin(repo repository.AccountRepository, cmp contract.HashComparer, ev contract.EmailValidator) *Login {
	return &Login{Repo: repo, Comparer: cmp, EmailValidator: ev}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	if err := requireAll(field{"email", in.Email}, field{"password", in.Password}); err != nil {
		return nil, err
	}
	if err := checkEmail(uc.EmailValidator, in.Email); err != nil {
		return nil, err
	}
	if err := checkPasswords(field{"password", in.Password}); err != nil {
		return nil, err
	}

	acc, err := uc.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	if acc == nil {
		return nil, apperr.ErrAccountNotFound
	}
	ok, err := uc.Comparer.Compare(ctx, in.Password, acc.Password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, apperr.ErrWrongPassword
	}
	return &LoginOutput{AccessToken: acc.AccessToken}, nil
}
