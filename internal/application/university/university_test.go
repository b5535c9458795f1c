package university_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafhaeldeandrade/south-american-universities/internal/application/university"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
	"github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/memory"
	"github.com/rafhaeldeandrade/south-american-universities/internal/testutil"
)

func strPtr(s string) *string { return &s }

func createInput() university.CreateUniversityInput {
	return university.CreateUniversityInput{
		Name:          "Universidad de Buenos Aires",
		Country:       "Argentina",
		StateProvince: strPtr("Buenos Aires"),
		AlphaTwoCode:  "AR",
		Domains:       []string{"uba.ar"},
		WebPages:      []string{"http://www.uba.ar/"},
	}
}

func seed(t *testing.T, repo *memory.UniversityRepository, n int, country string) {
	t.Helper()
	for i := 0; i < n; i++ {
		u := entity.University{ID: fmt.Sprintf("%s-%d", country, i), Name: fmt.Sprintf("U %d", i), Country: country, AlphaTwoCode: "BR"}
		require.NoError(t, repo.Save(context.Background(), &u))
	}
}

func TestCreateUniversity(t *testing.T) {
	repo := memory.NewUniversityRepository()
	uc := university.NewCreateUniversity(repo, &testutil.UUIDs{})

	u, err := uc.Execute(context.Background(), createInput())
	require.NoError(t, err)
	require.Equal(t, "id-1", u.ID)
	require.Equal(t, "Buenos Aires", *u.StateProvince)

	stored, err := repo.FindByID(context.Background(), "id-1")
	require.NoError(t, err)
	require.Equal(t, u, stored)

	_, err = uc.Execute(context.Background(), createInput())
	require.ErrorIs(t, err, apperr.ErrUniversityAlreadyExists)
}

func TestCreateUniversity_NullStateProvince(t *testing.T) {
	uc := university.NewCreateUniversity(memory.NewUniversityRepository(), &testutil.UUIDs{})
	in := createInput()
	in.StateProvince = nil

	u, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Nil(t, u.StateProvince)
}

func TestCreateUniversity_MissingParams(t *testing.T) {
	uc := university.NewCreateUniversity(memory.NewUniversityRepository(), &testutil.UUIDs{})
	mutations := map[string]func(*university.CreateUniversityInput){
		"name":         func(in *university.CreateUniversityInput) { in.Name = "" },
		"country":      func(in *university.CreateUniversityInput) { in.Country = "" },
		"alphaTwoCode": func(in *university.CreateUniversityInput) { in.AlphaTwoCode = "" },
		"domains":      func(in *university.CreateUniversityInput) { in.Domains = nil },
		"webPages":     func(in *university.CreateUniversityInput) { in.WebPages = nil },
	}
	for field, mutate := range mutations {
		in := createInput()
		mutate(&in)
		_, err := uc.Execute(context.Background(), in)
		require.ErrorIs(t, err, apperr.ErrMissingParam, field)
		require.EqualError(t, err, field+" param is missing")
	}
}

func TestLoadUniversity(t *testing.T) {
	repo := memory.NewUniversityRepository()
	seed(t, repo, 1, "Peru")
	uc := university.NewLoadUniversity(repo)

	u, err := uc.Execute(context.Background(), university.LoadUniversityInput{UniversityID: "Peru-0"})
	require.NoError(t, err)
	require.Equal(t, "U 0", u.Name)

	_, err = uc.Execute(context.Background(), university.LoadUniversityInput{UniversityID: "nope"})
	require.ErrorIs(t, err, apperr.ErrUniversityNotFound)
}

// pagingRepo records the options passed to FindAll and fakes the count.
type pagingRepo struct {
	*memory.UniversityRepository
	total  int64
	filter repository.UniversityFilter
	opts   repository.FindOptions
}

func (r *pagingRepo) CountDocuments(_ context.Context, f repository.UniversityFilter) (int64, error) {
	r.filter = f
	return r.total, nil
}

func (r *pagingRepo) FindAll(_ context.Context, f repository.UniversityFilter, o repository.FindOptions) ([]entity.University, error) {
	r.opts = o
	return nil, nil
}

func TestLoadUniversities_Paging(t *testing.T) {
	repo := &pagingRepo{UniversityRepository: memory.NewUniversityRepository(), total: 45}
	uc := university.NewLoadUniversities(repo)

	out, err := uc.Execute(context.Background(), university.LoadUniversitiesInput{Page: 2})
	require.NoError(t, err)
	require.Equal(t, 3, out.TotalPages)
	require.Equal(t, repository.FindOptions{Skip: 20, Limit: 20}, repo.opts)
	require.NotNil(t, out.Data)
	require.Empty(t, out.Data)

	_, err = uc.Execute(context.Background(), university.LoadUniversitiesInput{Country: "Chile"})
	require.NoError(t, err)
	require.Equal(t, repository.FindOptions{Skip: 0, Limit: 20}, repo.opts, "page defaults to 1")
	require.Equal(t, "Chile", repo.filter.Country)
}

func TestLoadUniversities_ProjectsSummaries(t *testing.T) {
	repo := memory.NewUniversityRepository()
	seed(t, repo, 21, "Brazil")
	seed(t, repo, 3, "Chile")
	uc := university.NewLoadUniversities(repo)

	out, err := uc.Execute(context.Background(), university.LoadUniversitiesInput{Country: "brazil", Page: 2})
	require.NoError(t, err)
	require.Equal(t, 2, out.TotalPages)
	require.Equal(t, []entity.UniversitySummary{{ID: "Brazil-20", Name: "U 20", Country: "Brazil"}}, out.Data)

	out, err = uc.Execute(context.Background(), university.LoadUniversitiesInput{Country: "Uruguay"})
	require.NoError(t, err)
	require.Zero(t, out.TotalPages)
}

func TestUpdateUniversity(t *testing.T) {
	repo := memory.NewUniversityRepository()
	created, err := university.NewCreateUniversity(repo, &testutil.UUIDs{}).Execute(context.Background(), createInput())
	require.NoError(t, err)
	uc := university.NewUpdateUniversity(repo)

	in := university.UpdateUniversityInput{
		UniversityID: created.ID,
		Name:         "UBA",
		Domains:      []string{"uba.edu.ar"},
		WebPages:     []string{"https://uba.ar"},
	}
	got, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	want := *created
	want.Name, want.Domains, want.WebPages = in.Name, in.Domains, in.WebPages
	require.Equal(t, &want, got)

	stored, _ := repo.FindByID(context.Background(), created.ID)
	require.Equal(t, &want, stored)
	require.Equal(t, "Argentina", stored.Country, "immutable fields are kept")

	in.UniversityID = "missing"
	_, err = uc.Execute(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrUniversityNotFound)
}

func TestDeleteUniversity_NotIdempotent(t *testing.T) {
	repo := memory.NewUniversityRepository()
	seed(t, repo, 1, "Suriname")
	uc := university.NewDeleteUniversity(repo)

	out, err := uc.Execute(context.Background(), university.DeleteUniversityInput{ID: "Suriname-0"})
	require.NoError(t, err)
	require.Equal(t, "Suriname-0", out.ID)

	_, err = uc.Execute(context.Background(), university.DeleteUniversityInput{ID: "Suriname-0"})
	require.ErrorIs(t, err, apperr.ErrUniversityNotFound)
}

func TestSearchUniversities(t *testing.T) {
	s := &testutil.Searcher{Hits: []entity.UniversitySummary{{ID: "1", Name: "UBA"}}}
	uc := university.NewSearchUniversities(s)

	out, err := uc.Execute(context.Background(), university.SearchUniversitiesInput{Query: "buenos", Size: 500})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	require.Equal(t, "buenos", s.LastQuery)
	require.Equal(t, 10, s.LastSize, "oversized requests fall back to the default size")

	_, err = uc.Execute(context.Background(), university.SearchUniversitiesInput{})
	require.EqualError(t, err, "q param is missing")

	s.Err = errors.New("es down")
	_, err = uc.Execute(context.Background(), university.SearchUniversitiesInput{Query: "x"})
	require.ErrorIs(t, err, s.Err)
}
