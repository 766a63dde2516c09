package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadLimiter applies per-client token-bucket rate limiting to the photo
// upload endpoints. Surveyors in the field batch-upload from a single device,
// so the bucket is sized for bursts; sustained abuse gets a 429.
type UploadLimiter struct {
	buckets map[string]*bucketState
	mu      sync.RWMutex

	maxTokens  int           // bucket capacity (burst size)
	refillRate time.Duration // time between token refills

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

// bucketState tracks the token bucket for a single client address.
type bucketState struct {
	tokens     int
	lastRefill time.Time
	mu         sync.Mutex
}

// NewUploadLimiter creates a limiter allowing maxTokens burst uploads per
// client, refilling one token every refillRate.
//
// Example:
//
//	// 30 uploads burst, refill 1 every 2 seconds
//	limiter := NewUploadLimiter(30, 2*time.Second)
func NewUploadLimiter(maxTokens int, refillRate time.Duration) *UploadLimiter {
	l := &UploadLimiter{
		buckets:     make(map[string]*bucketState),
		maxTokens:   maxTokens,
		refillRate:  refillRate,
		stopCleanup: make(chan struct{}),
	}

	l.cleanupTicker = time.NewTicker(10 * time.Minute)
	go l.cleanup()

	return l
}

// Handler returns the Fiber middleware enforcing the limit, keyed by client
// IP. Requests over the limit get 429 without reading the multipart body.
func (l *UploadLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			return fiber.NewError(fiber.StatusTooManyRequests, "upload rate limit exceeded, retry later")
		}
		return c.Next()
	}
}

// allow consumes a token for the identifier, refilling by elapsed time first.
func (l *UploadLimiter) allow(identifier string) bool {
	l.mu.Lock()
	bucket, exists := l.buckets[identifier]
	if !exists {
		l.buckets[identifier] = &bucketState{
			tokens:     l.maxTokens - 1,
			lastRefill: time.Now(),
		}
		l.mu.Unlock()
		return true
	}
	l.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	elapsed := time.Since(bucket.lastRefill)
	if refill := int(elapsed / l.refillRate); refill > 0 {
		bucket.tokens += refill
		if bucket.tokens > l.maxTokens {
			bucket.tokens = l.maxTokens
		}
		bucket.lastRefill = time.Now()
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}

// cleanup periodically drops buckets idle for over an hour so the map does
// not grow with every client address ever seen.
func (l *UploadLimiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.mu.Lock()
			now := time.Now()
			for id, bucket := range l.buckets {
				bucket.mu.Lock()
				if now.Sub(bucket.lastRefill) > time.Hour {
					delete(l.buckets, id)
				}
				bucket.mu.Unlock()
			}
			l.mu.Unlock()
		case <-l.stopCleanup:
			return
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *UploadLimiter) Stop() {
	l.cleanupTicker.Stop()
	close(l.stopCleanup)
}
