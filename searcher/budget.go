package searcher

import (
	"context"
	"time"
)

// Budget is the wall-clock allowance shared by one decision. It is only
// consulted between top-level candidates, so a deep subtree may overrun it.
type Budget struct {
	ctx      context.Context
	deadline time.Time
	now      func() time.Time
}

// NewBudget starts a budget of limit from now. A non-positive limit never
// expires on its own; a cancelled ctx always expires it.
func NewBudget(ctx context.Context, limit time.Duration, now func() time.Time) Budget {
	if now == nil {
		now = time.Now
	}
	b := Budget{ctx: ctx, now: now}
	if limit > 0 {
		b.deadline = now().Add(limit)
	}
	if d, ok := ctx.Deadline(); ok && (b.deadline.IsZero() || d.Before(b.deadline)) {
		b.deadline = d
	}
	return b
}

func (b Budget) Expired() bool {
	if b.ctx.Err() != nil {
		return true
	}
	return !b.deadline.IsZero() && !b.now().Before(b.deadline)
}

// Remaining is zero once expired and negative when there is no deadline.
func (b Budget) Remaining() time.Duration {
	if b.deadline.IsZero() {
		return -1
	}
	if left := b.deadline.Sub(b.now()); left > 0 {
		return left
	}
	return 0
}
