// Package memory provides map-backed repositories used for local runs
// (STORAGE_DRIVER=memory) and as collaborators in tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type AccountRepository struct {
	mu       sync.RWMutex
	byID     map[string]*entity.Account
	idByMail map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:     make(map[string]*entity.Account),
		idByMail: make(map[string]string),
	}
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByMail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *AccountRepository) Save(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := emailKey(a.Email)
	if _, taken := r.idByMail[key]; taken {
		return apperr.ErrEmailAlreadyExists
	}
	cp := *a
	r.byID[a.ID] = &cp
	r.idByMail[key] = a.ID
	return nil
}

func (r *AccountRepository) UpdateByID(_ context.Context, id string, update repository.AccountUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil
	}
	if update.Password != nil {
		a.Password = *update.Password
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
