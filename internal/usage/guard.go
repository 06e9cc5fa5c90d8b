package usage

import (
	"fmt"
	"sync"
)

// Rough cost assumptions; adjust to current pricing.
const (
	DefaultCostPer1KTokens = 0.002
	DefaultLimitDollars    = 4.50
)

// Ledger is the durable token trail behind the guard.
type Ledger interface {
	RecordUsage(callID string, tokens int) error
	TotalTokens() (int64, error)
}

// Guard is the budget gate in front of the classifier. The read-increment-
// write cycle is a critical section shared by concurrent calls, so all
// accounting happens under one mutex.
type Guard struct {
	mu           sync.Mutex
	ledger       Ledger
	costPer1K    float64
	limitDollars float64

	totalTokens int64
	loaded      bool
}

// NewGuard creates a guard over a ledger with the given cost model.
func NewGuard(ledger Ledger, costPer1KTokens, limitDollars float64) *Guard {
	if costPer1KTokens <= 0 {
		costPer1KTokens = DefaultCostPer1KTokens
	}
	if limitDollars <= 0 {
		limitDollars = DefaultLimitDollars
	}
	return &Guard{
		ledger:       ledger,
		costPer1K:    costPer1KTokens,
		limitDollars: limitDollars,
	}
}

// CanProceed reports whether another classifier call fits the budget.
func (g *Guard) CanProceed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.load(); err != nil {
		// If the ledger cannot be read, fail closed: the caller escalates
		// instead of spending.
		return false
	}
	return g.cost(g.totalTokens) <= g.limitDollars
}

// Record adds a token count to the running total and the durable ledger.
func (g *Guard) Record(callID string, tokens int) error {
	if tokens <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.load(); err != nil {
		return err
	}
	if err := g.ledger.RecordUsage(callID, tokens); err != nil {
		return fmt.Errorf("failed to persist usage: %w", err)
	}
	g.totalTokens += int64(tokens)
	return nil
}

// TotalCost returns the accumulated spend in dollars.
func (g *Guard) TotalCost() (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.load(); err != nil {
		return 0, err
	}
	return g.cost(g.totalTokens), nil
}

func (g *Guard) load() error {
	if g.loaded {
		return nil
	}
	total, err := g.ledger.TotalTokens()
	if err != nil {
		return fmt.Errorf("failed to load usage total: %w", err)
	}
	g.totalTokens = total
	g.loaded = true
	return nil
}

func (g *Guard) cost(tokens int64) float64 {
	return float64(tokens) / 1000 * g.costPer1K
}
