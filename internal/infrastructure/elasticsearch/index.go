// Package elasticsearch keeps a search index of universities and serves
// full-text queries over it.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// Index implements contract.UniversitySearcher. A nil client turns every
// call into a no-op and every search into an empty result.
type Index struct {
	Client *es.Client
	Name   string
	Logger *logrus.Logger
}

func NewIndex(client *es.Client, name string, logger *logrus.Logger) *Index {
	return &Index{Client: client, Name: name, Logger: logger}
}

func (ix *Index) enabled() bool {
	return ix != nil && ix.Client != nil && ix.Name != ""
}

type document struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	StateProvince *string  `json:"stateProvince"`
	AlphaTwoCode  string   `json:"alphaTwoCode"`
	Domains       []string `json:"domains"`
}

func toDocument(u entity.University) document {
	return document{
		ID:            u.ID,
		Name:          u.Name,
		Country:       u.Country,
		StateProvince: u.StateProvince,
		AlphaTwoCode:  u.AlphaTwoCode,
		Domains:       u.Domains,
	}
}

func responseError(op string, res *esapi.Response) error {
	return fmt.Errorf("es %s: %s", op, res.Status())
}

// Put indexes (or re-indexes) one university.
func (ix *Index) Put(ctx context.Context, u entity.University) error {
	if !ix.enabled() {
		return nil
	}
	b, err := json.Marshal(toDocument(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: ix.Name, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// Remove deletes one university; a missing document is not an error.
func (ix *Index) Remove(ctx context.Context, id string) error {
	if !ix.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: ix.Name, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return responseError("delete", res)
	}
	return nil
}

// Rebuild clears the index and bulk-loads universities.
func (ix *Index) Rebuild(ctx context.Context, universities []entity.University) error {
	if !ix.enabled() {
		return nil
	}
	matchAll := map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	body, _ := json.Marshal(matchAll)
	res, err := ix.Client.DeleteByQuery([]string{ix.Name}, bytes.NewReader(body),
		ix.Client.DeleteByQuery.WithContext(ctx),
		ix.Client.DeleteByQuery.WithConflicts("proceed"),
	)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return responseError("clear", res)
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     ix.Client,
		Index:      ix.Name,
		NumWorkers: 2,
		FlushBytes: 1 << 20,
	})
	if err != nil {
		return err
	}
	for _, u := range universities {
		doc, err := json.Marshal(toDocument(u))
		if err != nil {
			return err
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: u.ID,
			Body:       bytes.NewReader(doc),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, _ esutil.BulkIndexerResponseItem, err error) {
				if ix.Logger != nil {
					ix.Logger.WithError(err).WithField("university_id", item.DocumentID).Warn("es bulk item failed")
				}
			},
		})
		if err != nil {
			return err
		}
	}
	if err := bi.Close(ctx); err != nil {
		return err
	}
	stats := bi.Stats()
	if stats.NumFailed > 0 {
		return fmt.Errorf("es bulk: %d of %d documents failed", stats.NumFailed, len(universities))
	}
	return nil
}

// Search performs a multi_match over name, country and domains.
func (ix *Index) Search(ctx context.Context, q string, size int) ([]entity.UniversitySummary, error) {
	if !ix.enabled() {
		return []entity.UniversitySummary{}, nil
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "country", "domains"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := ix.Client.Search(
		ix.Client.Search.WithContext(c),
		ix.Client.Search.WithIndex(ix.Name),
		ix.Client.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, responseError("search", res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.UniversitySummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, entity.UniversitySummary{ID: d.ID, Name: d.Name, Country: d.Country, StateProvince: d.StateProvince})
	}
	return out, nil
}
