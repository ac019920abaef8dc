package ratelimit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/scholaris/intake-api/internal/usecase"
)

// openTestDB connects to the database named by DATABASE_URL and makes
// sure the events table exists. Tests are skipped without one.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", url)
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS rate_limit_events (
			id         BIGSERIAL PRIMARY KEY,
			identifier TEXT NOT NULL,
			endpoint   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	assert.NoError(t, err)

	return db
}

func uniqueKey(t *testing.T) string {
	return fmt.Sprintf("test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestAllow_AdmitsUpToLimitThenRejects(t *testing.T) {
	db := openTestDB(t)
	limiter := NewPostgresLimiter(db)
	policy := usecase.RateLimitPolicy{Endpoint: "contact", Limit: 3, Window: time.Hour}
	key := uniqueKey(t)

	for i := 0; i < policy.Limit; i++ {
		allowed, err := limiter.Allow(context.Background(), key, policy)
		assert.NoError(t, err)
		assert.True(t, allowed, "request %d should be admitted", i+1)
	}

	allowed, err := limiter.Allow(context.Background(), key, policy)
	assert.NoError(t, err)
	assert.False(t, allowed, "request over the limit should be rejected")
}

func TestAllow_AdmitsAgainAfterWindowCloses(t *testing.T) {
	db := openTestDB(t)
	limiter := NewPostgresLimiter(db)
	policy := usecase.RateLimitPolicy{Endpoint: "demo", Limit: 2, Window: 2 * time.Second}
	key := uniqueKey(t)

	for i := 0; i < policy.Limit; i++ {
		allowed, err := limiter.Allow(context.Background(), key, policy)
		assert.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(context.Background(), key, policy)
	assert.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(policy.Window + 500*time.Millisecond)

	allowed, err = limiter.Allow(context.Background(), key, policy)
	assert.NoError(t, err)
	assert.True(t, allowed, "should admit again once the earlier events age out")
}

func TestAllow_KeysAndEndpointsAreIndependent(t *testing.T) {
	db := openTestDB(t)
	limiter := NewPostgresLimiter(db)
	policy := usecase.RateLimitPolicy{Endpoint: "newsletter", Limit: 1, Window: time.Hour}
	key := uniqueKey(t)

	allowed, err := limiter.Allow(context.Background(), key, policy)
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), key, policy)
	assert.NoError(t, err)
	assert.False(t, allowed)

	// A different key on the same endpoint is unaffected.
	allowed, err = limiter.Allow(context.Background(), key+"-other", policy)
	assert.NoError(t, err)
	assert.True(t, allowed)

	// The same key on a different endpoint is unaffected.
	other := usecase.RateLimitPolicy{Endpoint: "vote", Limit: 1, Window: time.Hour}
	allowed, err = limiter.Allow(context.Background(), key, other)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_ConcurrentRequestsNeverOvershoot(t *testing.T) {
	db := openTestDB(t)
	limiter := NewPostgresLimiter(db)
	policy := usecase.RateLimitPolicy{Endpoint: "contact", Limit: 3, Window: time.Hour}
	key := uniqueKey(t)

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := limiter.Allow(context.Background(), key, policy)
			assert.NoError(t, err)
			if allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, policy.Limit, admitted)
}
