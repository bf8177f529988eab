package httpserver

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/moroboxai/game-sdk-go/pkg/cmap"
)

// limiterIdleTTL is the minimum time a client's bucket is kept without
// requests.
const limiterIdleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// limiterTable keeps one token bucket per client and sweeps idle ones at
// most once per idle period, on the request path.
type limiterTable struct {
	clients *cmap.Map[string, *clientLimiter]
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time

	lastSweep atomic.Int64
}

func newLimiterTable(requestsPerSecond float64, burst int) *limiterTable {
	if burst < 1 {
		burst = 1
	}

	// An evicted bucket comes back full, so keep it at least until it
	// would have refilled on its own.
	idle := limiterIdleTTL
	if requestsPerSecond > 0 {
		refill := time.Duration(float64(burst) / requestsPerSecond * float64(time.Second))
		idle = max(idle, refill)
	}

	t := &limiterTable{
		clients: cmap.New[string, *clientLimiter](),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
	t.lastSweep.Store(t.now().UnixNano())
	return t
}

func (t *limiterTable) allow(ip string) bool {
	now := t.now()
	t.maybeSweep(now)

	c := t.clients.GetOrCreate(ip, func() *clientLimiter {
		c := &clientLimiter{limiter: rate.NewLimiter(t.limit, t.burst)}
		c.lastSeen.Store(now.UnixNano())
		return c
	})
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

func (t *limiterTable) maybeSweep(now time.Time) {
	last := t.lastSweep.Load()
	if now.UnixNano()-last < int64(t.idle) {
		return
	}
	if t.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		t.sweep(now)
	}
}

// sweep drops clients idle for longer than t.idle and returns how many
// were dropped.
func (t *limiterTable) sweep(now time.Time) int {
	cutoff := now.Add(-t.idle).UnixNano()
	return t.clients.DeleteFunc(func(_ string, c *clientLimiter) bool {
		return c.lastSeen.Load() < cutoff
	})
}
