package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for conflicts and other
// server-created records.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string; v7 IDs sort by creation time, which
// keeps conflict listings naturally ordered. Falls back to a random v4 if
// v7 generation fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
