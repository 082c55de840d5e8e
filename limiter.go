package beeola

import (
	"sync"
	"time"
)

// LoginLimiter tracks failed admin logins per IP over a sliding window.
// Check gates an attempt without charging it, Record charges a failure;
// Allow combines the two for callers that charge every attempt.
type LoginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
}

// NewLoginLimiter allows max failures per window for each IP and starts a
// background sweep that evicts idle entries.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
	}
	go l.sweep()
	return l
}

// prune drops failures older than the window for one IP and returns what is
// left. Callers must hold the mutex.
func (l *LoginLimiter) prune(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.failures[ip][:0]
	for _, ts := range l.failures[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, ip)
		return nil
	}
	l.failures[ip] = kept
	return kept
}

// sweep keeps the map from accumulating entries for IPs that never return.
func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for now := range ticker.C {
		l.mu.Lock()
		for ip := range l.failures {
			l.prune(ip, now)
		}
		l.mu.Unlock()
	}
}

// Check reports whether the IP still has attempts left in the window.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(ip, time.Now())) < l.max
}

// Record charges one failed attempt against the IP.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	l.failures[ip] = append(l.failures[ip], time.Now())
	l.mu.Unlock()
}

// Allow is Check plus Record in one step.
func (l *LoginLimiter) Allow(ip string) bool {
	if !l.Check(ip) {
		return false
	}
	l.Record(ip)
	return true
}
