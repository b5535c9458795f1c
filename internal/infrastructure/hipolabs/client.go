// Package hipolabs reads the public university dataset served at
// universities.hipolabs.com.
package hipolabs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

const DefaultBaseURL = "http://universities.hipolabs.com/search"

// record is the upstream wire shape.
type record struct {
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	StateProvince *string  `json:"state-province"`
	AlphaTwoCode  string   `json:"alpha_two_code"`
	WebPages      []string `json:"web_pages"`
	Domains       []string `json:"domains"`
}

func (r record) university() entity.University {
	return entity.University{
		Name:          r.Name,
		Country:       r.Country,
		StateProvince: r.StateProvince,
		AlphaTwoCode:  r.AlphaTwoCode,
		WebPages:      r.WebPages,
		Domains:       r.Domains,
	}
}

type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts uint64
	// NewBackOff builds the retry schedule for one fetch.
	NewBackOff func() backoff.BackOff
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  baseURL,
		HTTP:     &http.Client{Timeout: timeout},
		Attempts: 3,
		NewBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			return b
		},
	}
}

// Fetch returns the universities listed for country, without ids.
// Transport errors and 5xx answers are retried; 4xx answers are not.
func (c *Client) Fetch(ctx context.Context, country string) ([]entity.University, error) {
	var records []record
	op := func() error {
		rs, err := c.get(ctx, country)
		if err != nil {
			return err
		}
		records = rs
		return nil
	}

	attempts := c.Attempts
	if attempts == 0 {
		attempts = 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(c.NewBackOff(), attempts-1), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", country, err)
	}

	out := make([]entity.University, 0, len(records))
	for _, r := range records {
		out = append(out, r.university())
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, country string) ([]record, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	q := u.Query()
	q.Set("country", country)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode >= 500:
		return nil, fmt.Errorf("upstream status %d", res.StatusCode)
	case res.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("upstream status %d", res.StatusCode))
	}

	var records []record
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode: %w", err))
	}
	return records, nil
}
