package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles callers identified by an arbitrary key, one token
// bucket per key. Stale entries are dropped after Expiry minutes of
// inactivity.
type Limiter struct {
	Expiry   int
	Burst    int
	LimitRPS float64
	visitors map[string]*visitor
	mu       sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(burst int, expiry int, limitRPS float64) *Limiter {
	lm := &Limiter{
		Expiry:   expiry,
		LimitRPS: limitRPS,
		Burst:    burst,
		visitors: make(map[string]*visitor),
	}
	go lm.cleanup()
	return lm
}

// Allow reports whether the caller identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.LimitRPS), l.Burst)}
		l.visitors[key] = v
	}

	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (l *Limiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for key, v := range l.visitors {
			if time.Since(v.lastSeen) > time.Duration(l.Expiry)*time.Minute {
				delete(l.visitors, key)
			}
		}
		l.mu.Unlock()
	}
}

func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
