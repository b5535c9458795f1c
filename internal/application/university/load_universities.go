package university

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

// PageSize is the fixed number of universities per listing page.
const PageSize = 20

// LoadUniversitiesInput pages are 1-based; zero or negative means page 1.
type LoadUniversitiesInput struct {
	Page    int
	Country string
}

type LoadUniversitiesOutput struct {
	TotalPages int                        `json:"totalPages"`
	Data       []entity.UniversitySummary `json:"data"`
}

type LoadUniversities struct {
	Repo repository.UniversityRepository
}

func NewLoadUniversities(repo repository.UniversityRepository) *LoadUniversities {
	return &LoadUniversities{Repo: repo}
}

func (uc *LoadUniversities) Execute(ctx context.Context, in LoadUniversitiesInput) (*LoadUniversitiesOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	filter := repository.UniversityFilter{Country: in.Country}

	total, err := uc.Repo.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count universities: %w", err)
	}
	items, err := uc.Repo.FindAll(ctx, filter, repository.FindOptions{Skip: (page - 1) * PageSize, Limit: PageSize})
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}

	data := make([]entity.UniversitySummary, 0, len(items))
	for _, u := range items {
		data = append(data, u.Summary())
	}
	return &LoadUniversitiesOutput{TotalPages: totalPages(total), Data: data}, nil
}

func totalPages(total int64) int {
	return int((total + PageSize - 1) / PageSize)
}
