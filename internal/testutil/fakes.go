// Package testutil holds deterministic capability doubles shared by tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

// Hasher prefixes values with "hashed:" and compares accordingly.
type Hasher struct {
	Err   error
	Calls atomic.Int32
}

func (h *Hasher) Hash(_ context.Context, value string) (string, error) {
	h.Calls.Add(1)
	if h.Err != nil {
		return "", h.Err
	}
	return "hashed:" + value, nil
}

func (h *Hasher) Compare(_ context.Context, value, hash string) (bool, error) {
	if h.Err != nil {
		return false, h.Err
	}
	return hash == "hashed:"+value, nil
}

// UUIDs hands out "id-1", "id-2", ...
type UUIDs struct {
	n atomic.Int64
}

func (u *UUIDs) Generate() string {
	return fmt.Sprintf("id-%d", u.n.Add(1))
}

// Encrypter renders the payload id into "token-<id>".
type Encrypter struct {
	Err error
}

func (e *Encrypter) Encrypt(payload map[string]any) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return fmt.Sprintf("token-%v", payload["id"]), nil
}

// EmailValidator accepts anything with an "@" followed by a dot.
type EmailValidator struct{}

func (EmailValidator) IsValid(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && strings.Contains(email[at:], ".")
}

// Searcher returns canned hits and records the last query.
type Searcher struct {
	Hits      []entity.UniversitySummary
	Err       error
	LastQuery string
	LastSize  int
}

func (s *Searcher) Search(_ context.Context, q string, size int) ([]entity.UniversitySummary, error) {
	s.LastQuery, s.LastSize = q, size
	return s.Hits, s.Err
}

// Notification is one recorded Notifier call.
type Notification struct {
	To       string
	Template string
	Data     map[string]any
}

// Notifier records notifications instead of delivering them.
type Notifier struct {
	mu   sync.Mutex
	Sent []Notification
	Err  error
}

func (n *Notifier) Notify(_ context.Context, to, template string, data map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, Notification{To: to, Template: template, Data: data})
	return n.Err
}
