package university

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type LoadUniversityInput struct {
	UniversityID string
}

type LoadUniversity struct {
	Repo repository.UniversityRepository
}

func NewLoadUniversity(repo repository.UniversityRepository) *LoadUniversity {
	return &LoadUniversity{Repo: repo}
}

func (uc *LoadUniversity) Execute(ctx context.Context, in LoadUniversityInput) (*entity.University, error) {
	if in.UniversityID == "" {
		return nil, apperr.MissingParam("universityId")
	}
	u, err := uc.Repo.FindByID(ctx, in.UniversityID)
	if err != nil {
		return nil, fmt.Errorf("find university: %w", err)
	}
	if u == nil {
		return nil, apperr.ErrUniversityNotFound
	}
	return u, nil
}
