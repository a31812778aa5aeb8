package amethyst

import (
	"errors"
	"math"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

var ErrRateLimitReached = errors.New("rate limit reached")

// RateLimitByIP limits the connections per remote IP with a sliding window
// of windowLength. IPv6 addresses are grouped by their /64 prefix.
func RateLimitByIP(requestLimit int, windowLength time.Duration) Filterer {
	return newRateLimiter(requestLimit, windowLength, keyByIP, time.Now).filterer()
}

func keyByIP(c net.Conn) string {
	rAddr := c.RemoteAddr().String()
	ip, _, err := net.SplitHostPort(rAddr)
	if err != nil {
		ip = rAddr
	}
	return canonicalizeIP(ip)
}

// canonicalizeIP returns the /64 prefix of IPv6 addresses and every other
// address unchanged.
func canonicalizeIP(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() != nil {
		return ip
	}

	return parsed.Mask(net.CIDRMask(64, 128)).String()
}

type rateLimiter struct {
	requestLimit int
	windowLength time.Duration
	keyFn        func(c net.Conn) string
	now          func() time.Time

	mu        sync.Mutex
	counters  map[uint64]*windowCount
	lastEvict time.Time
}

type windowCount struct {
	value     int
	updatedAt time.Time
}

func newRateLimiter(requestLimit int, windowLength time.Duration, keyFn func(c net.Conn) string, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		requestLimit: requestLimit,
		windowLength: windowLength,
		keyFn:        keyFn,
		now:          now,
		counters:     map[uint64]*windowCount{},
	}
}

// rate estimates the requests of the last windowLength by weighting the
// previous window with the share it still overlaps.
func (rl *rateLimiter) rate(key string, t time.Time) float64 {
	currentWindow := t.Truncate(rl.windowLength)
	previousWindow := currentWindow.Add(-rl.windowLength)

	curr, prev := rl.count(key, currentWindow), rl.count(key, previousWindow)
	diff := t.Sub(currentWindow)
	return float64(prev)*(float64(rl.windowLength)-float64(diff))/float64(rl.windowLength) + float64(curr)
}

func (rl *rateLimiter) count(key string, window time.Time) int {
	c, ok := rl.counters[limitCounterKey(key, window)]
	if !ok {
		return 0
	}
	return c.value
}

func (rl *rateLimiter) allow(key string) bool {
	t := rl.now().UTC()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.evict(t)

	if int(math.Round(rl.rate(key, t))) >= rl.requestLimit {
		return false
	}

	hkey := limitCounterKey(key, t.Truncate(rl.windowLength))
	c, ok := rl.counters[hkey]
	if !ok {
		c = &windowCount{}
		rl.counters[hkey] = c
	}
	c.value++
	c.updatedAt = t
	return true
}

// evict drops counters that can no longer influence the rate.
func (rl *rateLimiter) evict(t time.Time) {
	if t.Sub(rl.lastEvict) < rl.windowLength {
		return
	}
	rl.lastEvict = t

	for k, c := range rl.counters {
		if t.Sub(c.updatedAt) >= 2*rl.windowLength {
			delete(rl.counters, k)
		}
	}
}

func (rl *rateLimiter) filterer() Filterer {
	return FilterFunc(func(c net.Conn) error {
		if !rl.allow(rl.keyFn(c)) {
			return ErrRateLimitReached
		}
		return nil
	})
}

func limitCounterKey(key string, window time.Time) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(key)
	_, _ = h.WriteString(strconv.FormatInt(window.Unix(), 10))
	return h.Sum64()
}
