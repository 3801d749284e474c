package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID transaction IDs. ULIDs sort
// lexicographically by creation time, which keeps the id a stable
// tiebreaker when ordering the transaction log.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
