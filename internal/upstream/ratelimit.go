package upstream

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Completer with a token bucket shared by all callers.
type RateLimited struct {
	next    Completer
	limiter *rate.Limiter
}

// NewRateLimited allows qps requests per second with a burst of ceil(qps).
func NewRateLimited(next Completer, qps float64) *RateLimited {
	burst := int(math.Ceil(qps))
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(qps), burst),
	}
}

func (r *RateLimited) Name() string {
	return r.next.Name()
}

// Complete waits for a token; a cancelled context aborts the wait.
func (r *RateLimited) Complete(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Complete(ctx, prompt)
}
