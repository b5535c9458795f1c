package university

import (
	"context"
	"fmt"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type SearchUniversitiesInput struct {
	Query string
	Size  int
}

type SearchUniversitiesOutput struct {
	Data []entity.UniversitySummary `json:"data"`
}

type SearchUniversities struct {
	Searcher contract.UniversitySearcher
}

func NewSearchUniversities(s contract.UniversitySearcher) *SearchUniversities {
	return &SearchUniversities{Searcher: s}
}

func (uc *SearchUniversities) Execute(ctx context.Context, in SearchUniversitiesInput) (*SearchUniversitiesOutput, error) {
	if in.Query == "" {
		return nil, apperr.MissingParam("q")
	}
	size := in.Size
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	hits, err := uc.Searcher.Search(ctx, in.Query, size)
	if err != nil {
		return nil, fmt.Errorf("search universities: %w", err)
	}
	if hits == nil {
		hits = []entity.UniversitySummary{}
	}
	return &SearchUniversitiesOutput{Data: hits}, nil
}
