package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Guard defaults. Tunable per instance via options.
const (
	defaultDedupTTL   = 5 * time.Minute
	defaultRateWindow = 30 * time.Second
	defaultRateLimit  = 5

	// fingerprintBucket absorbs near-simultaneous duplicate deliveries of
	// the same logical event.
	fingerprintBucket = 10 * time.Second
)

// Admission is the outcome of the dedup and rate checks for one event.
type Admission struct {
	Fingerprint string
	Admitted    bool
	Reason      string
}

// Guard holds the process-wide dedup, rate and throttle bookkeeping. All
// maps are mutex-protected; entries are pruned lazily on access and by the
// periodic cleanup sweep.
type Guard struct {
	mu           sync.Mutex
	seen         map[string]time.Time
	windows      map[string][]time.Time
	lastNotified map[string]time.Time

	dedupTTL   time.Duration
	rateWindow time.Duration
	rateLimit  int
}

// GuardOption is a functional option for Guard configuration
type GuardOption func(*Guard)

// WithDedupTTL sets how long fingerprints are remembered.
func WithDedupTTL(d time.Duration) GuardOption {
	return func(g *Guard) {
		g.dedupTTL = d
	}
}

// WithRateWindow sets the trailing window of the per-destination rate cap.
func WithRateWindow(d time.Duration) GuardOption {
	return func(g *Guard) {
		g.rateWindow = d
	}
}

// WithRateLimit sets the maximum admitted events per destination per window.
func WithRateLimit(n int) GuardOption {
	return func(g *Guard) {
		g.rateLimit = n
	}
}

// NewGuard creates a new Guard.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		seen:         make(map[string]time.Time),
		windows:      make(map[string][]time.Time),
		lastNotified: make(map[string]time.Time),
		dedupTTL:     defaultDedupTTL,
		rateWindow:   defaultRateWindow,
		rateLimit:    defaultRateLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fingerprint computes the content hash identifying a logical event. The
// timestamp is floored to a bucket so redeliveries within the bucket collide.
func Fingerprint(destinationID, description, triggeredBy string, now time.Time) string {
	bucket := now.Unix() - now.Unix()%int64(fingerprintBucket/time.Second)
	input := strings.Join([]string{
		destinationID,
		strings.TrimSpace(description),
		triggeredBy,
		fmt.Sprintf("%d", bucket),
	}, "\n")
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Admit runs the duplicate check and then the rate check for one inbound
// event. A duplicate never consumes rate budget.
func (g *Guard) Admit(destinationID, description, triggeredBy string, now time.Time) Admission {
	fp := Fingerprint(destinationID, description, triggeredBy, now)

	g.mu.Lock()
	defer g.mu.Unlock()

	if seenAt, ok := g.seen[fp]; ok && now.Sub(seenAt) < g.dedupTTL {
		return Admission{Fingerprint: fp, Admitted: false, Reason: "duplicate"}
	}
	g.seen[fp] = now

	window := g.pruneWindowLocked(destinationID, now)
	if len(window) >= g.rateLimit {
		return Admission{Fingerprint: fp, Admitted: false, Reason: "rate limit exceeded"}
	}
	g.windows[destinationID] = append(window, now)

	return Admission{Fingerprint: fp, Admitted: true}
}

// LastNotified returns when the destination was last notified.
func (g *Guard) LastNotified(destinationID string) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ts, ok := g.lastNotified[destinationID]
	return ts, ok
}

// MarkNotified records a successful send. Called only after delivery so a
// failed send never counts against the throttle.
func (g *Guard) MarkNotified(destinationID string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastNotified[destinationID] = now
}

// Prune drops expired fingerprints and empty rate windows.
func (g *Guard) Prune(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for fp, seenAt := range g.seen {
		if now.Sub(seenAt) >= g.dedupTTL {
			delete(g.seen, fp)
		}
	}
	for dest := range g.windows {
		if len(g.pruneWindowLocked(dest, now)) == 0 {
			delete(g.windows, dest)
		} else {
			g.windows[dest] = g.pruneWindowLocked(dest, now)
		}
	}
}

// pruneWindowLocked returns the request timestamps still inside the trailing
// rate window. Caller must hold the mutex.
func (g *Guard) pruneWindowLocked(destinationID string, now time.Time) []time.Time {
	var kept []time.Time
	for _, ts := range g.windows[destinationID] {
		if now.Sub(ts) < g.rateWindow {
			kept = append(kept, ts)
		}
	}
	return kept
}
