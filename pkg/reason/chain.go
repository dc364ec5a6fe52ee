package reason

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aidrank/aidrank/pkg/priority"
)

// Chain tries each scorer in order and returns the first success.
// Its name tracks the scorer that most recently produced a score, so
// results attribute the engine that actually ran.
type Chain struct {
	scorers []priority.Scorer

	mu   sync.Mutex
	last string
}

// NewChain creates a chain over the given scorers, preferred first.
func NewChain(scorers ...priority.Scorer) *Chain {
	return &Chain{scorers: scorers}
}

// Name implements priority.Scorer. Before any successful score it reports
// the preferred scorer's name.
func (c *Chain) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last != "" {
		return c.last
	}
	if len(c.scorers) > 0 {
		return c.scorers[0].Name()
	}
	return "chain"
}

// Score implements priority.Scorer. All scorer failures are joined into
// the returned error.
func (c *Chain) Score(ctx context.Context, in priority.Inputs) (float64, error) {
	if len(c.scorers) == 0 {
		return 0, errors.New("no scorers configured")
	}

	var errs []error
	for _, s := range c.scorers {
		score, err := s.Score(ctx, in)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		c.mu.Lock()
		c.last = s.Name()
		c.mu.Unlock()
		return score, nil
	}

	return 0, errors.Join(errs...)
}

var _ priority.Scorer = (*Chain)(nil)
