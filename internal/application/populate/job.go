// Package populate replaces the university directory with a fresh copy of
// the upstream dataset.
package populate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
)

// DefaultCountries is the set of countries the directory covers.
var DefaultCountries = []string{"argentina", "brazil", "chile", "colombia", "paraguay", "peru", "suriname", "uruguay"}

var (
	ErrLockHeld     = errors.New("another population run holds the lock")
	ErrEmptyDataset = errors.New("upstream returned no universities")
)

// Source lists the universities of one country.
type Source interface {
	Fetch(ctx context.Context, country string) ([]entity.University, error)
}

// Snapshotter archives the dataset that was loaded.
type Snapshotter interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// History reports the last successful run.
type History interface {
	LatestDatasetUpdate(ctx context.Context) (*entity.DatasetUpdate, error)
}

// LockFunc tries to take the run lock. acquired is false when someone else
// holds it.
type LockFunc func(ctx context.Context) (release func(context.Context) error, acquired bool, err error)

type Job struct {
	Countries []string
	Source    Source
	Repo      repository.UniversityRepository
	UUID      contract.UUIDGenerator
	Logger    logrus.FieldLogger

	// optional
	Snapshots Snapshotter
	History   History
	Lock      LockFunc

	ReplaceAttempts uint64
	NewBackOff      func() backoff.BackOff
	Now             func() time.Time
}

func NewJob(countries []string, src Source, repo repository.UniversityRepository, uuid contract.UUIDGenerator, logger logrus.FieldLogger) *Job {
	if len(countries) == 0 {
		countries = DefaultCountries
	}
	return &Job{
		Countries:       countries,
		Source:          src,
		Repo:            repo,
		UUID:            uuid,
		Logger:          logger,
		ReplaceAttempts: 5,
		NewBackOff:      func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		Now:             time.Now,
	}
}

type Result struct {
	Update      *entity.DatasetUpdate
	Total       int
	Duplicates  int
	SnapshotURI string
}

// Due reports whether the last run is older than interval.
func (j *Job) Due(ctx context.Context, interval time.Duration) (bool, error) {
	if j.History == nil {
		return true, nil
	}
	last, err := j.History.LatestDatasetUpdate(ctx)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	return j.Now().Sub(last.GeneratedAt) >= interval, nil
}

func (j *Job) Run(ctx context.Context) (*Result, error) {
	if j.Lock != nil {
		release, ok, err := j.Lock(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, ErrLockHeld
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				j.Logger.WithError(err).Warn("release populate lock")
			}
		}()
	}

	start := j.Now()
	fetched, err := j.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	universities, dups := j.dedupe(fetched)
	if len(universities) == 0 {
		return nil, ErrEmptyDataset
	}

	var upd *entity.DatasetUpdate
	replace := func() error {
		u, err := j.Repo.ReplaceAll(ctx, universities)
		if err != nil {
			j.Logger.WithError(err).Warn("replace universities failed, retrying")
			return err
		}
		upd = u
		return nil
	}
	attempts := j.ReplaceAttempts
	if attempts == 0 {
		attempts = 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(j.NewBackOff(), attempts-1), ctx)
	if err := backoff.Retry(replace, b); err != nil {
		return nil, fmt.Errorf("replace universities: %w", err)
	}

	res := &Result{Update: upd, Total: len(universities), Duplicates: dups}
	if j.Snapshots != nil {
		uri, err := j.snapshot(ctx, upd, universities)
		if err != nil {
			j.Logger.WithError(err).Warn("snapshot upload failed")
		}
		res.SnapshotURI = uri
	}

	j.Logger.WithFields(logrus.Fields{
		"total":       res.Total,
		"duplicates":  dups,
		"dataset_id":  upd.ID,
		"duration_ms": j.Now().Sub(start).Milliseconds(),
	}).Info("universities populated")
	return res, nil
}

// fetchAll keeps country order so ids and snapshots are stable across runs.
func (j *Job) fetchAll(ctx context.Context) ([]entity.University, error) {
	perCountry := make([][]entity.University, len(j.Countries))
	g, gctx := errgroup.WithContext(ctx)
	for i, country := range j.Countries {
		g.Go(func() error {
			us, err := j.Source.Fetch(gctx, country)
			if err != nil {
				return err
			}
			perCountry[i] = us
			j.Logger.WithFields(logrus.Fields{"country": country, "count": len(us)}).Debug("fetched country")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []entity.University
	for _, us := range perCountry {
		all = append(all, us...)
	}
	return all, nil
}

func identity(u entity.University) string {
	state := ""
	if u.StateProvince != nil {
		state = *u.StateProvince
	}
	return strings.ToLower(u.Name) + "\x00" + strings.ToLower(u.Country) + "\x00" + strings.ToLower(state)
}

// dedupe drops repeated (name, country, state) tuples, first one wins,
// and assigns fresh ids.
func (j *Job) dedupe(in []entity.University) ([]entity.University, int) {
	seen := make(map[string]struct{}, len(in))
	out := make([]entity.University, 0, len(in))
	for _, u := range in {
		k := identity(u)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		u.ID = j.UUID.Generate()
		out = append(out, u)
	}
	return out, len(in) - len(out)
}

func (j *Job) snapshot(ctx context.Context, upd *entity.DatasetUpdate, universities []entity.University) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(universities); err != nil {
		return "", err
	}
	name := fmt.Sprintf("snapshots/universities-%d-%s.json", upd.ID, upd.GeneratedAt.UTC().Format("20060102T150405Z"))
	return j.Snapshots.Upload(ctx, name, "application/json", &buf)
}
