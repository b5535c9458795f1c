package repository

import (
	"context"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

// UniversityRepository defines persistence operations for universities.
// Finders return (nil, nil) when nothing matches.
type UniversityRepository interface {
	FindByID(ctx context.Context, id string) (*entity.University, error)
	FindByProperties(ctx context.Context, props UniversityProperties) (*entity.University, error)
	Save(ctx context.Context, u *entity.University) error
	UpdateByID(ctx context.Context, id string, update UniversityUpdate) error
	DeleteByID(ctx context.Context, id string) error
	CountDocuments(ctx context.Context, filter UniversityFilter) (int64, error)
	FindAll(ctx context.Context, filter UniversityFilter, opts FindOptions) ([]entity.University, error)
	// ReplaceAll atomically swaps the whole directory for the given records
	// and records a dataset update.
	ReplaceAll(ctx context.Context, universities []entity.University) (*entity.DatasetUpdate, error)
}

// UniversityProperties is the identity tuple enforced unique on creation.
type UniversityProperties struct {
	Name          string
	Country       string
	StateProvince *string
}

// UniversityFilter narrows list queries. An empty Country matches everything;
// otherwise matching is case-insensitive and exact.
type UniversityFilter struct {
	Country string
}

type FindOptions struct {
	Skip  int
	Limit int
}

// UniversityUpdate holds the fields that may change after creation.
type UniversityUpdate struct {
	Name     string
	Domains  []string
	WebPages []string
}
