package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, access_token
		FROM accounts
		WHERE lower(email) = lower($1)
	`, email)

	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.AccessToken); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) Save(ctx context.Context, a *entity.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, name, email, password, access_token)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Name, a.Email, a.Password, a.AccessToken)
	if isUniqueViolation(err) {
		return apperr.ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdateByID(ctx context.Context, id string, update repository.AccountUpdate) error {
	if update.Password == nil {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		UPDATE accounts SET password = $2, updated_at = now()
		WHERE id = $1
	`, id, *update.Password)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}
