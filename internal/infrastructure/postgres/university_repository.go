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

const universityColumns = `id, name, country, state_province, alpha_two_code, web_pages, domains`

type UniversityRepository struct {
	db DB
}

func NewUniversityRepository(db DB) *UniversityRepository {
	return &UniversityRepository{db: db}
}

var _ repository.UniversityRepository = (*UniversityRepository)(nil)

func scanUniversity(row pgx.Row) (*entity.University, error) {
	u := &entity.University{}
	err := row.Scan(&u.ID, &u.Name, &u.Country, &u.StateProvince, &u.AlphaTwoCode, &u.WebPages, &u.Domains)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UniversityRepository) FindByID(ctx context.Context, id string) (*entity.University, error) {
	u, err := scanUniversity(r.db.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select university: %w", err)
	}
	return u, nil
}

func (r *UniversityRepository) FindByProperties(ctx context.Context, p repository.UniversityProperties) (*entity.University, error) {
	u, err := scanUniversity(r.db.QueryRow(ctx, `
		SELECT `+universityColumns+`
		FROM universities
		WHERE name = $1 AND country = $2 AND coalesce(state_province, '') = coalesce($3, '')
	`, p.Name, p.Country, p.StateProvince))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select university by properties: %w", err)
	}
	return u, nil
}

func (r *UniversityRepository) Save(ctx context.Context, u *entity.University) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO universities (`+universityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Name, u.Country, u.StateProvince, u.AlphaTwoCode, nonNil(u.WebPages), nonNil(u.Domains))
	if isUniqueViolation(err) {
		return apperr.ErrUniversityAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert university: %w", err)
	}
	return nil
}

func (r *UniversityRepository) UpdateByID(ctx context.Context, id string, upd repository.UniversityUpdate) error {
	_, err := r.db.Exec(ctx, `
		UPDATE universities
		SET name = $2, domains = $3, web_pages = $4, updated_at = now()
		WHERE id = $1
	`, id, upd.Name, nonNil(upd.Domains), nonNil(upd.WebPages))
	if isUniqueViolation(err) {
		return apperr.ErrUniversityAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("update university: %w", err)
	}
	return nil
}

func (r *UniversityRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete university: %w", err)
	}
	return nil
}

// An empty country matches everything; otherwise the match is exact and
// case-insensitive.
const countryFilter = `($1 = '' OR lower(country) = lower($1))`

func (r *UniversityRepository) CountDocuments(ctx context.Context, f repository.UniversityFilter) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM universities WHERE `+countryFilter, f.Country).Scan(&n); err != nil {
		return 0, fmt.Errorf("count universities: %w", err)
	}
	return n, nil
}

// FindAll returns universities in insertion order.
func (r *UniversityRepository) FindAll(ctx context.Context, f repository.UniversityFilter, opts repository.FindOptions) ([]entity.University, error) {
	limit := any(nil)
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+universityColumns+`
		FROM universities
		WHERE `+countryFilter+`
		ORDER BY seq
		OFFSET $2 LIMIT $3
	`, f.Country, opts.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	defer rows.Close()

	out := []entity.University{}
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan university: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return out, nil
}

// ReplaceAll swaps the whole dataset and records the run in one transaction;
// readers see either the old or the new set.
func (r *UniversityRepository) ReplaceAll(ctx context.Context, universities []entity.University) (*entity.DatasetUpdate, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM universities`); err != nil {
		return nil, fmt.Errorf("clear universities: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"universities"},
		[]string{"id", "name", "country", "state_province", "alpha_two_code", "web_pages", "domains"},
		pgx.CopyFromSlice(len(universities), func(i int) ([]any, error) {
			u := universities[i]
			return []any{u.ID, u.Name, u.Country, u.StateProvince, u.AlphaTwoCode, nonNil(u.WebPages), nonNil(u.Domains)}, nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("copy universities: %w", err)
	}

	upd := &entity.DatasetUpdate{}
	if err := tx.QueryRow(ctx, `
		INSERT INTO dataset_updates (total) VALUES ($1)
		RETURNING id, generated_at
	`, len(universities)).Scan(&upd.ID, &upd.GeneratedAt); err != nil {
		return nil, fmt.Errorf("record dataset update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}
	return upd, nil
}

// LatestDatasetUpdate returns the most recent population run, or nil.
func (r *UniversityRepository) LatestDatasetUpdate(ctx context.Context) (*entity.DatasetUpdate, error) {
	upd := &entity.DatasetUpdate{}
	err := r.db.QueryRow(ctx, `SELECT id, generated_at FROM dataset_updates ORDER BY id DESC LIMIT 1`).Scan(&upd.ID, &upd.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select dataset update: %w", err)
	}
	return upd, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
