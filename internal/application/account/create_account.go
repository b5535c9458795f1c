package account

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// CreateAccountOutput never carries the password or the access token.
type CreateAccountOutput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateAccount struct {
	Repo           repository.AccountRepository
	UUID           contract.UUIDGenerator
	Hasher         contract.Hasher
	Encrypter      contract.Encrypter
	EmailValidator contract.EmailValidator
}

func NewCreateAccount(repo repository.AccountRepository, uuid contract.UUIDGenerator, hasher contract.Hasher, enc contract.Encrypter, ev contract.EmailValidator) *CreateAccount {
	return &CreateAccount{Repo: repo, UUID: uuid, Hasher: hasher, Encrypter: enc, EmailValidator: ev}
}

func (uc *CreateAccount) Execute(ctx context.Context, in CreateAccountInput) (*CreateAccountOutput, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	existing, err := uc.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	if existing != nil {
		return nil, apperr.ErrEmailAlreadyExists
	}

	id := uc.UUID.Generate()
	hash, err := uc.Hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := uc.Encrypter.Encrypt(map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	// The store's unique index has the last word on duplicates; Save reports
	// a lost race as ErrEmailAlreadyExists.
	acc := &entity.Account{ID: id, Name: in.Name, Email: in.Email, Password: hash, AccessToken: token}
	if err := uc.Repo.Save(ctx, acc); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	return &CreateAccountOutput{Name: in.Name, Email: in.Email}, nil
}

func (uc *CreateAccount) validate(in CreateAccountInput) error {
	if err := requireAll(field{"name", in.Name}, field{"email", in.Email}, field{"password", in.Password}); err != nil {
		return err
	}
	if err := checkEmail(uc.EmailValidator, in.Email); err != nil {
		return err
	}
	return checkPasswords(field{"password", in.Password})
}
