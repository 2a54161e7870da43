package auth

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// FailureDelay pads rejected login attempts to a minimum elapsed time plus
// jitter, so "unknown email" and "wrong password" are indistinguishable by
// response latency.
type FailureDelay struct {
	base   time.Duration
	jitter time.Duration
}

func NewFailureDelay(base, jitter time.Duration) *FailureDelay {
	return &FailureDelay{base: base, jitter: jitter}
}

// Wait sleeps until at least base (+ random jitter) has elapsed since start.
// No-op when the target time already passed, e.g. after a slow bcrypt compare.
func (d *FailureDelay) Wait(start time.Time) {
	if d == nil || d.base <= 0 {
		return
	}

	target := d.base + randomJitter(d.jitter)
	if elapsed := time.Since(start); elapsed < target {
		time.Sleep(target - elapsed)
	}
}

// randomJitter draws from crypto/rand; math/rand is predictable enough to
// let an observer subtract the jitter back out.
func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return time.Duration(binary.BigEndian.Uint64(buf[:]) % uint64(max))
}
