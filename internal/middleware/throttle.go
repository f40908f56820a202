package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	authpkg "github.com/acadsharsh/mockera12/pkg/auth"
)

// requestRecord tracks the number of requests and the window start time
type requestRecord struct {
	count       int
	windowStart time.Time
	mu          sync.Mutex
}

// throttleStore stores rate limit data per user
type throttleStore struct {
	records map[uint64]*requestRecord
	mu      sync.RWMutex
}

func newThrottleStore() *throttleStore {
	store := &throttleStore{
		records: make(map[uint64]*requestRecord),
	}
	// Cleanup goroutine keeps the map from growing without bound.
	go store.startCleanup()
	return store
}

func (ts *throttleStore) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ts.cleanupOldRecords()
	}
}

func (ts *throttleStore) cleanupOldRecords() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	oneHourAgo := time.Now().Add(-1 * time.Hour)
	for userID, record := range ts.records {
		record.mu.Lock()
		if record.windowStart.Before(oneHourAgo) {
			delete(ts.records, userID)
		}
		record.mu.Unlock()
	}
}

func (ts *throttleStore) getOrCreateRecord(userID uint64) *requestRecord {
	ts.mu.RLock()
	record, exists := ts.records[userID]
	ts.mu.RUnlock()

	if exists {
		return record
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	// Double-check after acquiring write lock
	if record, exists := ts.records[userID]; exists {
		return record
	}
	record = &requestRecord{
		count:       0,
		windowStart: time.Now(),
	}
	ts.records[userID] = record
	return record
}

// checkAndIncrement returns true if the request is allowed within the window.
func (ts *throttleStore) checkAndIncrement(userID uint64, maxRequests int, period time.Duration) bool {
	record := ts.getOrCreateRecord(userID)

	record.mu.Lock()
	defer record.mu.Unlock()

	now := time.Now()
	if now.Sub(record.windowStart) >= period {
		record.count = 1
		record.windowStart = now
		return true
	}

	if record.count >= maxRequests {
		return false
	}

	record.count++
	return true
}

// ThrottleMiddleware creates an HTTP middleware that rate limits requests per
// user. It requires AuthMiddleware to have run first; unauthenticated
// requests pass through untouched.
func ThrottleMiddleware(maxRequests int, period time.Duration) func(http.Handler) http.Handler {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if period <= 0 {
		period = time.Minute
	}

	store := newThrottleStore()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, err := authpkg.GetUserFromContext(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if !store.checkAndIncrement(userCtx.UserID, maxRequests, period) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", formatRetryAfter(period))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// formatRetryAfter formats the period as seconds for Retry-After header
func formatRetryAfter(period time.Duration) string {
	seconds := int(period.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
