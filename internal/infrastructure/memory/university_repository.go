package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

// UniversityRepository keeps universities in insertion order so paging is
// stable, like the Postgres adapter's ORDER BY.
type UniversityRepository struct {
	mu      sync.RWMutex
	items   []entity.University
	updates []entity.DatasetUpdate
}

func NewUniversityRepository(seed ...entity.University) *UniversityRepository {
	r := &UniversityRepository{}
	for _, u := range seed {
		r.items = append(r.items, clone(u))
	}
	return r
}

func clone(u entity.University) entity.University {
	u.Domains = slices.Clone(u.Domains)
	u.WebPages = slices.Clone(u.WebPages)
	if u.StateProvince != nil {
		sp := *u.StateProvince
		u.StateProvince = &sp
	}
	return u
}

func sameState(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *UniversityRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(u entity.University) bool { return u.ID == id })
}

func (r *UniversityRepository) FindByID(_ context.Context, id string) (*entity.University, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	u := clone(r.items[i])
	return &u, nil
}

func (r *UniversityRepository) FindByProperties(_ context.Context, p repository.UniversityProperties) (*entity.University, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.Name == p.Name && u.Country == p.Country && sameState(u.StateProvince, p.StateProvince) {
			cp := clone(u)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UniversityRepository) Save(_ context.Context, u *entity.University) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == u.Name && existing.Country == u.Country && sameState(existing.StateProvince, u.StateProvince) {
			return apperr.ErrUniversityAlreadyExists
		}
	}
	r.items = append(r.items, clone(*u))
	return nil
}

func (r *UniversityRepository) UpdateByID(_ context.Context, id string, upd repository.UniversityUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	cur := r.items[i]
	for j, other := range r.items {
		if j != i && other.Name == upd.Name && other.Country == cur.Country && sameState(other.StateProvince, cur.StateProvince) {
			return apperr.ErrUniversityAlreadyExists
		}
	}
	r.items[i].Name = upd.Name
	r.items[i].Domains = slices.Clone(upd.Domains)
	r.items[i].WebPages = slices.Clone(upd.WebPages)
	return nil
}

func (r *UniversityRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.items = slices.Delete(r.items, i, i+1)
	}
	return nil
}

func matches(u entity.University, f repository.UniversityFilter) bool {
	return f.Country == "" || strings.EqualFold(u.Country, f.Country)
}

func (r *UniversityRepository) CountDocuments(_ context.Context, f repository.UniversityFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, u := range r.items {
		if matches(u, f) {
			n++
		}
	}
	return n, nil
}

func (r *UniversityRepository) FindAll(_ context.Context, f repository.UniversityFilter, opts repository.FindOptions) ([]entity.University, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.University{}
	skipped := 0
	for _, u := range r.items {
		if !matches(u, f) {
			continue
		}
		if skipped < opts.Skip {
			skipped++
			continue
		}
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *UniversityRepository) ReplaceAll(_ context.Context, universities []entity.University) (*entity.DatasetUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]entity.University, 0, len(universities))
	for _, u := range universities {
		items = append(items, clone(u))
	}
	r.items = items
	upd := entity.DatasetUpdate{ID: int64(len(r.updates) + 1), GeneratedAt: time.Now().UTC()}
	r.updates = append(r.updates, upd)
	return &upd, nil
}

func (r *UniversityRepository) LatestDatasetUpdate(_ context.Context) (*entity.DatasetUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.updates) == 0 {
		return nil, nil
	}
	upd := r.updates[len(r.updates)-1]
	return &upd, nil
}

var _ repository.UniversityRepository = (*UniversityRepository)(nil)
