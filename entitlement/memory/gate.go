package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/entitlement"
	"github.com/w-h-a/brain/model"
)

type memoryGate struct {
	options  entitlement.Options
	counters map[string]int
	mtx      sync.Mutex
}

// Authorize performs a conditional increment of the usage counter for
// (userId, op, period) under a single lock. The check and the increment are
// one critical section, so concurrent requests can never push usage past
// the quota.
func (g *memoryGate) Authorize(ctx context.Context, userId string, op entitlement.Operation, opts ...entitlement.AuthorizeOption) error {
	options := entitlement.NewAuthorizeOptions(opts...)

	quota := g.options.Quota(op)

	if options.Cost > quota {
		return goerr.New(
			"operation cost exceeds plan quota",
			goerr.T(model.TagEntitlement),
			goerr.V("user_id", userId),
			goerr.V("operation", op),
			goerr.V("cost", options.Cost),
			goerr.V("quota", quota),
		)
	}

	key := counterKey(userId, op, time.Now().UTC().Truncate(g.options.Period))

	g.mtx.Lock()
	defer g.mtx.Unlock()

	used := g.counters[key]
	if used+options.Cost > quota {
		return goerr.New(
			"quota exceeded for this period",
			goerr.T(model.TagEntitlement),
			goerr.V("user_id", userId),
			goerr.V("operation", op),
			goerr.V("used", used),
			goerr.V("quota", quota),
		)
	}

	g.counters[key] = used + options.Cost

	return nil
}

func counterKey(userId string, op entitlement.Operation, periodStart time.Time) string {
	return fmt.Sprintf("%s|%s|%d", userId, op, periodStart.Unix())
}

func NewGate(opts ...entitlement.Option) entitlement.Gate {
	options := entitlement.NewOptions(opts...)

	g := &memoryGate{
		options:  options,
		counters: map[string]int{},
		mtx:      sync.Mutex{},
	}

	return g
}
