package university

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

// UpdateUniversityInput carries the only fields that may change after
// creation; country, state/province and alpha-two code are immutable.
type UpdateUniversityInput struct {
	UniversityID string
	Name         string
	Domains      []string
	WebPages     []string
}

type UpdateUniversity struct {
	Repo repository.UniversityRepository
}

func NewUpdateUniversity(repo repository.UniversityRepository) *UpdateUniversity {
	return &UpdateUniversity{Repo: repo}
}

func (uc *UpdateUniversity) Execute(ctx context.Context, in UpdateUniversityInput) (*entity.University, error) {
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

	update := repository.UniversityUpdate{Name: in.Name, Domains: in.Domains, WebPages: in.WebPages}
	if err := uc.Repo.UpdateByID(ctx, in.UniversityID, update); err != nil {
		return nil, fmt.Errorf("update university: %w", err)
	}

	merged := *u
	merged.Name = in.Name
	merged.Domains = in.Domains
	merged.WebPages = in.WebPages
	return &merged, nil
}
