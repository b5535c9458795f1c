package university

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

type DeleteUniversityInput struct {
	ID string
}

type DeleteUniversityOutput struct {
	ID string `json:"id"`
}

type DeleteUniversity struct {
	Repo repository.UniversityRepository
}

func NewDeleteUniversity(repo repository.UniversityRepository) *DeleteUniversity {
	return &DeleteUniversity{Repo: repo}
}

func (uc *DeleteUniversity) Execute(ctx context.Context, in DeleteUniversityInput) (*DeleteUniversityOutput, error) {
	if in.ID == "" {
		return nil, apperr.MissingParam("id")
	}
	u, err := uc.Repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("find university: %w", err)
	}
	if u == nil {
		return nil, apperr.ErrUniversityNotFound
	}
	if err := uc.Repo.DeleteByID(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("delete university: %w", err)
	}
	return &DeleteUniversityOutput{ID: in.ID}, nil
}
