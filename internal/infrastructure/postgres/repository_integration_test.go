//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
	"github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/postgres"
)

type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	accounts  *postgres.AccountRepository
	univs     *postgres.UniversityRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	c, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("universities"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = c

	dsn, err := c.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	s.Require().NoError(postgres.RunMigrations(dsn, migrationsDir(), logger))
	// a second run has nothing to apply
	s.Require().NoError(postgres.RunMigrations(dsn, migrationsDir(), logger))

	s.pool, err = postgres.NewPool(s.ctx, dsn, 4, 1, time.Hour)
	s.Require().NoError(err)
	s.accounts = postgres.NewAccountRepository(s.pool)
	s.univs = postgres.NewUniversityRepository(s.pool)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE accounts, universities, dataset_updates`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) TestAccounts() {
	acc := &entity.Account{ID: "a-1", Name: "Ada", Email: "Ada@Lovelace.com", Password: "h1", AccessToken: "t1"}
	s.Require().NoError(s.accounts.Save(s.ctx, acc))

	found, err := s.accounts.FindByEmail(s.ctx, "ada@lovelace.com")
	s.Require().NoError(err)
	s.Equal(acc, found)

	dup := &entity.Account{ID: "a-2", Name: "Ada", Email: "ADA@lovelace.com", Password: "h", AccessToken: "t"}
	s.ErrorIs(s.accounts.Save(s.ctx, dup), apperr.ErrEmailAlreadyExists)

	pwd := "h2"
	s.Require().NoError(s.accounts.UpdateByID(s.ctx, "a-1", repository.AccountUpdate{Password: &pwd}))
	found, err = s.accounts.FindByEmail(s.ctx, "ada@lovelace.com")
	s.Require().NoError(err)
	s.Equal("h2", found.Password)
	s.Equal("t1", found.AccessToken)

	missing, err := s.accounts.FindByEmail(s.ctx, "nobody@x.com")
	s.Require().NoError(err)
	s.Nil(missing)
}

func uni(id, name, country string, state *string) entity.University {
	return entity.University{
		ID: id, Name: name, Country: country, StateProvince: state, AlphaTwoCode: "BR",
		Domains: []string{id + ".edu"}, WebPages: []string{"https://" + id + ".edu"},
	}
}

func (s *RepositorySuite) TestUniversitiesCRUD() {
	sp := "Sao Paulo"
	u := uni("u-1", "USP", "Brazil", &sp)
	s.Require().NoError(s.univs.Save(s.ctx, &u))

	got, err := s.univs.FindByID(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal(&u, got)

	byProps, err := s.univs.FindByProperties(s.ctx, repository.UniversityProperties{Name: "USP", Country: "Brazil", StateProvince: &sp})
	s.Require().NoError(err)
	s.Equal("u-1", byProps.ID)

	none, err := s.univs.FindByProperties(s.ctx, repository.UniversityProperties{Name: "USP", Country: "Brazil"})
	s.Require().NoError(err)
	s.Nil(none)

	dup := uni("u-2", "USP", "Brazil", &sp)
	s.ErrorIs(s.univs.Save(s.ctx, &dup), apperr.ErrUniversityAlreadyExists)

	// NULL state/province takes part in identity too
	n1, n2 := uni("u-3", "UNICAMP", "Brazil", nil), uni("u-4", "UNICAMP", "Brazil", nil)
	s.Require().NoError(s.univs.Save(s.ctx, &n1))
	s.ErrorIs(s.univs.Save(s.ctx, &n2), apperr.ErrUniversityAlreadyExists)

	s.Require().NoError(s.univs.UpdateByID(s.ctx, "u-1", repository.UniversityUpdate{
		Name: "Universidade de Sao Paulo", Domains: []string{"usp.br"}, WebPages: []string{"https://usp.br"},
	}))
	got, err = s.univs.FindByID(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal("Universidade de Sao Paulo", got.Name)
	s.Equal([]string{"usp.br"}, got.Domains)
	s.Equal(&sp, got.StateProvince)

	s.Require().NoError(s.univs.DeleteByID(s.ctx, "u-1"))
	got, err = s.univs.FindByID(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *RepositorySuite) TestPagingAndCountryFilter() {
	for i := 0; i < 45; i++ {
		u := uni(fmt.Sprintf("br-%02d", i), fmt.Sprintf("Uni %02d", i), "Brazil", nil)
		s.Require().NoError(s.univs.Save(s.ctx, &u))
	}
	cl := uni("cl-1", "Uni Chile", "Chile", nil)
	s.Require().NoError(s.univs.Save(s.ctx, &cl))

	n, err := s.univs.CountDocuments(s.ctx, repository.UniversityFilter{Country: "BRAZIL"})
	s.Require().NoError(err)
	s.Equal(int64(45), n)

	n, err = s.univs.CountDocuments(s.ctx, repository.UniversityFilter{Country: "Braz"})
	s.Require().NoError(err)
	s.Zero(n)

	page, err := s.univs.FindAll(s.ctx, repository.UniversityFilter{Country: "brazil"}, repository.FindOptions{Skip: 40, Limit: 20})
	s.Require().NoError(err)
	s.Len(page, 5)
	s.Equal("br-40", page[0].ID)

	all, err := s.univs.FindAll(s.ctx, repository.UniversityFilter{}, repository.FindOptions{})
	s.Require().NoError(err)
	s.Len(all, 46)
}

func (s *RepositorySuite) TestReplaceAll() {
	old := uni("old", "Old", "Peru", nil)
	s.Require().NoError(s.univs.Save(s.ctx, &old))

	latest, err := s.univs.LatestDatasetUpdate(s.ctx)
	s.Require().NoError(err)
	s.Nil(latest)

	upd, err := s.univs.ReplaceAll(s.ctx, []entity.University{uni("n-1", "New 1", "Peru", nil), uni("n-2", "New 2", "Chile", nil)})
	s.Require().NoError(err)
	s.NotZero(upd.ID)
	s.False(upd.GeneratedAt.IsZero())

	all, err := s.univs.FindAll(s.ctx, repository.UniversityFilter{}, repository.FindOptions{})
	s.Require().NoError(err)
	s.Len(all, 2)

	latest, err = s.univs.LatestDatasetUpdate(s.ctx)
	s.Require().NoError(err)
	s.Equal(upd.ID, latest.ID)

	// a duplicate in the batch aborts the whole swap
	_, err = s.univs.ReplaceAll(s.ctx, []entity.University{uni("d-1", "Dup", "Peru", nil), uni("d-2", "Dup", "Peru", nil)})
	s.Error(err)
	all, err = s.univs.FindAll(s.ctx, repository.UniversityFilter{}, repository.FindOptions{})
	s.Require().NoError(err)
	s.Len(all, 2)
}
