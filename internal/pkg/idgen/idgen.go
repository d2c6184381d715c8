// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/hexgame-api/internal/pkg/idgen Generator

// Generator generates unique identifiers scoped by entity kind
type Generator interface {
	Generate(kind string) string
}

// UUIDGenerator generates ids of the form kind_uuid
type UUIDGenerator struct{}

// NewUUID creates a new UUID generator
func NewUUID() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate(kind string) string {
	id := uuid.New().String()
	if kind != "" {
		return fmt.Sprintf("%s_%s", kind, id)
	}
	return id
}

// SequentialGenerator generates predictable ids for testing. Each kind has
// its own counter, so the first game is always game_1.
type SequentialGenerator struct {
	mu       sync.Mutex
	counters map[string]uint64
}

// NewSequential creates a new sequential generator
func NewSequential() *SequentialGenerator {
	return &SequentialGenerator{counters: make(map[string]uint64)}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate(kind string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counters[kind]++
	n := g.counters[kind]
	if kind != "" {
		return fmt.Sprintf("%s_%d", kind, n)
	}
	return fmt.Sprintf("%d", n)
}
