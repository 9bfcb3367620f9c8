package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// NumberGenerator produces human-readable ticket numbers.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// DefaultNumberGenerator issues date-scoped sequential numbers. The database
// unique index on the number column is the actual uniqueness guarantee across
// processes.
type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateKey := time.Now().UTC().Format("20060102")
	g.counters[dateKey]++

	return fmt.Sprintf("TKT-%s-%04d", dateKey, g.counters[dateKey]), nil
}
