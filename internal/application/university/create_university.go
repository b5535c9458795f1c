package university

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

// CreateUniversityInput mirrors the request body. StateProvince is the only
// optional field; nil slices count as missing.
type CreateUniversityInput struct {
	Name          string
	Country       string
	StateProvince *string
	AlphaTwoCode  string
	Domains       []string
	WebPages      []string
}

type CreateUniversity struct {
	Repo repository.UniversityRepository
	UUID contract.UUIDGenerator
}

func NewCreateUniversity(repo repository.UniversityRepository, uuid contract.UUIDGenerator) *CreateUniversity {
	return &CreateUniversity{Repo: repo, UUID: uuid}
}

func (uc *CreateUniversity) Execute(ctx context.Context, in CreateUniversityInput) (*entity.University, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	props := repository.UniversityProperties{Name: in.Name, Country: in.Country, StateProvince: in.StateProvince}
	existing, err := uc.Repo.FindByProperties(ctx, props)
	if err != nil {
		return nil, fmt.Errorf("find university by properties: %w", err)
	}
	if existing != nil {
		return nil, apperr.ErrUniversityAlreadyExists
	}

	u := &entity.University{
		ID:            uc.UUID.Generate(),
		Name:          in.Name,
		Country:       in.Country,
		StateProvince: in.StateProvince,
		AlphaTwoCode:  in.AlphaTwoCode,
		WebPages:      in.WebPages,
		Domains:       in.Domains,
	}
	if err := uc.Repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save university: %w", err)
	}
	return u, nil
}

func validateCreate(in CreateUniversityInput) error {
	switch {
	case in.Name == "":
		return apperr.MissingParam("name")
	case in.Country == "":
		return apperr.MissingParam("country")
	case in.AlphaTwoCode == "":
		return apperr.MissingParam("alphaTwoCode")
	case in.Domains == nil:
		return apperr.MissingParam("domains")
	case in.WebPages == nil:
		return apperr.MissingParam("webPages")
	}
	return nil
}
