package auth

import (
	"sync"
	"time"
)

// Admission is the outcome of a pre-login lockout check.
type Admission struct {
	Allowed    bool
	RetryAfter int // remaining lockout, whole seconds, rounded up
	Attempts   int
}

type attemptRecord struct {
	attempts     int
	lockoutUntil time.Time // zero while unlocked
}

// LockoutTracker counts failed login attempts per normalized identity key
// and refuses admission while a lockout is active. State is process-local;
// records never outlive the process.
type LockoutTracker struct {
	mu        sync.Mutex
	records   map[string]*attemptRecord
	threshold int
	duration  time.Duration
	now       func() time.Time
}

// NewLockoutTracker creates a tracker that locks an identity out for the
// given duration after threshold consecutive failures.
func NewLockoutTracker(threshold int, duration time.Duration) *LockoutTracker {
	return &LockoutTracker{
		records:   make(map[string]*attemptRecord),
		threshold: threshold,
		duration:  duration,
		now:       time.Now,
	}
}

// Check decides whether a login attempt for key may proceed. An expired
// lockout is deleted here, not merely reset, so the next failure starts a
// fresh window at attempt 1.
func (t *LockoutTracker) Check(key string) Admission {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[key]
	if !ok {
		return Admission{Allowed: true}
	}

	now := t.now()
	if !rec.lockoutUntil.IsZero() {
		if now.Before(rec.lockoutUntil) {
			remaining := rec.lockoutUntil.Sub(now)
			seconds := int((remaining + time.Second - 1) / time.Second)
			return Admission{Allowed: false, RetryAfter: seconds, Attempts: rec.attempts}
		}
		delete(t.records, key)
		return Admission{Allowed: true}
	}

	return Admission{Allowed: true, Attempts: rec.attempts}
}

// RecordFailure increments the failure count for key, creating the record on
// first failure. Reaching the threshold starts the lockout clock; further
// failures during an active lock do not extend it (Check rejects those
// attempts before they reach credential verification).
func (t *LockoutTracker) RecordFailure(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[key]
	if !ok {
		rec = &attemptRecord{}
		t.records[key] = rec
	}

	rec.attempts++
	if rec.attempts >= t.threshold && rec.lockoutUntil.IsZero() {
		rec.lockoutUntil = t.now().Add(t.duration)
	}
}

// RecordSuccess clears any attempt state for key.
func (t *LockoutTracker) RecordSuccess(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.records, key)
}

// SetClock overrides the tracker's time source. Test hook.
func (t *LockoutTracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.now = now
}
