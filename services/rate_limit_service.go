package services

import (
	"sync"
	"time"
)

// RateLimiter is consulted by the contact pipeline before validation runs.
// It is an interface so tests can inject fresh or scripted instances.
type RateLimiter interface {
	Check(identifier string) (allowed bool, remaining int)
}

type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// RateLimitService bounds contact submissions per identifier within a fixed
// time window, using a mutex-guarded in-process map.
//
// This is deliberately per-instance state: each running process counts on its
// own, which is acceptable because the limiter exists to deter form abuse,
// not to enforce a hard quota. Swapping in a shared store would require an
// explicit requirement change.
type RateLimitService struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimitService creates a limiter allowing max requests per identifier
// within the given window.
func NewRateLimitService(max int, window time.Duration) *RateLimitService {
	return &RateLimitService{
		entries: make(map[string]*rateLimitEntry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Check records an attempt for the identifier and reports whether it is
// allowed along with the number of attempts left in the current window.
// Expired entries are swept before the check; the O(n) scan is fine at
// contact-form volume.
func (s *RateLimitService) Check(identifier string) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	entry, ok := s.entries[identifier]
	if !ok || now.Sub(entry.windowStart) > s.window {
		s.entries[identifier] = &rateLimitEntry{count: 1, windowStart: now}
		return true, s.max - 1
	}

	if entry.count >= s.max {
		return false, 0
	}

	entry.count++
	return true, s.max - entry.count
}

// evictExpired removes entries whose window has elapsed. Caller must hold mu.
func (s *RateLimitService) evictExpired(now time.Time) {
	for key, entry := range s.entries {
		if now.Sub(entry.windowStart) > s.window {
			delete(s.entries, key)
		}
	}
}
