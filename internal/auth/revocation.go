package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// RevocationRegistry remembers tokens invalidated by logout until they would
// have expired anyway. State is process-local.
type RevocationRegistry struct {
	entries sync.Map // token digest -> time.Time
	clock   Clock
}

// RegistryOption customizes a RevocationRegistry.
type RegistryOption func(*RevocationRegistry)

// WithRegistryClock overrides the time source used for pruning.
func WithRegistryClock(clock Clock) RegistryOption {
	return func(r *RevocationRegistry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRevocationRegistry returns an empty registry.
func NewRevocationRegistry(opts ...RegistryOption) *RevocationRegistry {
	r := &RevocationRegistry{clock: SystemClock()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Revoke records token as revoked until expiresAt, overwriting any previous
// entry. Empty tokens and zero expiries are ignored.
func (r *RevocationRegistry) Revoke(token string, expiresAt time.Time) {
	if token == "" || expiresAt.IsZero() {
		return
	}
	r.entries.Store(digest(token), expiresAt)
}

// IsRevoked prunes expired entries and reports whether token is still revoked.
func (r *RevocationRegistry) IsRevoked(token string) bool {
	if token == "" {
		return false
	}
	now := r.clock.Now()
	r.prune(now)

	val, ok := r.entries.Load(digest(token))
	if !ok {
		return false
	}
	return now.Before(val.(time.Time))
}

// Prune drops every entry whose expiry has passed and returns how many were removed.
func (r *RevocationRegistry) Prune() int {
	return r.prune(r.clock.Now())
}

// Len returns the number of tracked entries, expired or not.
func (r *RevocationRegistry) Len() int {
	n := 0
	r.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (r *RevocationRegistry) prune(now time.Time) int {
	removed := 0
	r.entries.Range(func(key, val any) bool {
		if !now.Before(val.(time.Time)) {
			// A concurrent Revoke may have replaced the entry with a later expiry.
			if r.entries.CompareAndDelete(key, val) {
				removed++
			}
		}
		return true
	})
	return removed
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
