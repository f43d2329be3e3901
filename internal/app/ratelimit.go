package app

import (
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// once this many clients are tracked, idle ones are pruned
	maxTrackedClients = 4096
	clientIdleTimeout = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	// set while the client is being refused, cleared by its next allowed request
	refused bool
}

// RateLimiter is a per-client-IP token bucket
type RateLimiter struct {
	perMinute int
	burst     int
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter allows perMinute requests per client IP with the given burst.
// A perMinute of 0 disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
	}
}

// Allow reports whether a request from ip may proceed
func (rl *RateLimiter) Allow(ip string) bool {
	ok, _ := rl.check(ip)
	return ok
}

// check is Allow that also reports whether this is the first refusal since
// the client was last allowed
func (rl *RateLimiter) check(ip string) (allowed, firstRefusal bool) {
	if rl == nil || rl.perMinute <= 0 {
		return true, false
	}

	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			rl.pruneLocked(now)
		}
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMinute)), rl.burst),
		}
		rl.clients[ip] = c
	}
	c.lastSeen = now

	if c.limiter.AllowN(now, 1) {
		c.refused = false
		return true, false
	}
	firstRefusal = !c.refused
	c.refused = true
	return false, firstRefusal
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) > clientIdleTimeout {
			delete(rl.clients, ip)
		}
	}
}

// Limit is a middleware that rejects requests over the limit with 429
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		allowed, firstRefusal := rl.check(ip)
		if !allowed {
			if firstRefusal {
				log.Printf("Rate limited IP: %s", ip)
			}
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) retryAfterSeconds() int {
	return int(math.Ceil(60 / float64(rl.perMinute)))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
