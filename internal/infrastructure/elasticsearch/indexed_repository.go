package elasticsearch

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

// IndexedUniversityRepository mirrors writes into the search index.
// The store stays the source of truth: index failures are logged and
// never returned.
type IndexedUniversityRepository struct {
	repository.UniversityRepository
	Index  *Index
	Logger *logrus.Logger
}

func NewIndexedUniversityRepository(inner repository.UniversityRepository, ix *Index, logger *logrus.Logger) *IndexedUniversityRepository {
	return &IndexedUniversityRepository{UniversityRepository: inner, Index: ix, Logger: logger}
}

func (r *IndexedUniversityRepository) warn(err error, op, id string) {
	if err == nil || r.Logger == nil {
		return
	}
	r.Logger.WithError(err).WithFields(logrus.Fields{"op": op, "university_id": id}).Warn("search index out of sync")
}

func (r *IndexedUniversityRepository) Save(ctx context.Context, u *entity.University) error {
	if err := r.UniversityRepository.Save(ctx, u); err != nil {
		return err
	}
	r.warn(r.Index.Put(ctx, *u), "save", u.ID)
	return nil
}

func (r *IndexedUniversityRepository) UpdateByID(ctx context.Context, id string, upd repository.UniversityUpdate) error {
	if err := r.UniversityRepository.UpdateByID(ctx, id, upd); err != nil {
		return err
	}
	u, err := r.UniversityRepository.FindByID(ctx, id)
	if err != nil || u == nil {
		r.warn(err, "update", id)
		return nil
	}
	r.warn(r.Index.Put(ctx, *u), "update", id)
	return nil
}

func (r *IndexedUniversityRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.UniversityRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.warn(r.Index.Remove(ctx, id), "delete", id)
	return nil
}

func (r *IndexedUniversityRepository) ReplaceAll(ctx context.Context, universities []entity.University) (*entity.DatasetUpdate, error) {
	upd, err := r.UniversityRepository.ReplaceAll(ctx, universities)
	if err != nil {
		return nil, err
	}
	r.warn(r.Index.Rebuild(ctx, universities), "replace_all", "")
	return upd, nil
}
