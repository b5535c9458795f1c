package helpers

import "github.com/google/uuid"

// UUIDGenerator implements contract.UUIDGenerator with random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string { return uuid.NewString() }
