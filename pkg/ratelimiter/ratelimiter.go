package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	clients map[string]*client
	mutex   sync.Mutex
	limit   rate.Limit
	perMin  int
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// New creates a RateLimiter allowing requestsPerMinute with the given burst.
// Clients idle for longer than idleTTL are dropped by Cleanup.
func New(requestsPerMinute, burst int, idleTTL time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(requestsPerMinute) / 60.0),
		perMin:  requestsPerMinute,
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (rl *RateLimiter) get(ip string) *client {
	c, exists := rl.clients[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = rl.now()
	return c
}

// Allow reports whether ip may make a request now. When it may not, the
// returned duration is how long until a token is available.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	c := rl.get(ip)
	now := rl.now()
	reservation := c.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Remaining returns the whole tokens currently available to ip
func (rl *RateLimiter) Remaining(ip string) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	c, exists := rl.clients[ip]
	if !exists {
		return rl.burst
	}
	tokens := int(c.limiter.TokensAt(rl.now()))
	if tokens < 0 {
		return 0
	}
	return tokens
}

// Size returns the number of tracked clients
func (rl *RateLimiter) Size() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.clients)
}

// Cleanup removes clients not seen within the idle TTL
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}
