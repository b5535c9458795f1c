// Package contract declares the single-method capabilities the use cases
// depend on. Infrastructure adapters implement them; tests use fakes.
package contract

import (
	"context"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/entity"
)

type Hasher interface {
	Hash(ctx context.Context, value string) (string, error)
}

type HashComparer interface {
	Compare(ctx context.Context, value, hash string) (bool, error)
}

// Encrypter turns a payload into an opaque signed token.
type Encrypter interface {
	Encrypt(payload map[string]any) (string, error)
}

type UUIDGenerator interface {
	Generate() string
}

type EmailValidator interface {
	IsValid(email string) bool
}

// UniversitySearcher runs full-text queries against the search index.
type UniversitySearcher interface {
	Search(ctx context.Context, query string, size int) ([]entity.UniversitySummary, error)
}

// Notifier hands an outbound notification to the delivery pipeline.
type Notifier interface {
	Notify(ctx context.Context, to, template string, data map[string]any) error
}
