package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	return f.keys[key], nil
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	f.keys[ikey.Key] = ikey
	return nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	for k, v := range f.keys {
		if v.IsExpired() {
			delete(f.keys, k)
		}
	}
	return nil
}

func newSubmitRouter(repo *fakeIdempotencyRepo, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/submit", IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		*calls++
		c.JSON(201, gin.H{"success": true, "order_reference": "1042"})
	})
	return router
}

func doPost(router *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	calls := 0
	router := newSubmitRouter(newFakeIdempotencyRepo(), &calls)

	w := doPost(router, "/submit", "")

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if calls != 0 {
		t.Errorf("handler ran %d times, want 0", calls)
	}
}

func TestIdempotencyRequiredReplaysCachedResponse(t *testing.T) {
	calls := 0
	router := newSubmitRouter(newFakeIdempotencyRepo(), &calls)

	first := doPost(router, "/submit", "key-1")
	second := doPost(router, "/submit", "key-1")

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if first.Code != 201 || second.Code != 201 {
		t.Errorf("statuses = %d, %d, want 201 for both", first.Code, second.Code)
	}
	if first.Header().Get("X-Idempotency-Replayed") != "" {
		t.Error("first response must not carry the replay header")
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("second response missing X-Idempotency-Replayed header")
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("replayed body %q differs from original %q", second.Body.String(), first.Body.String())
	}
}

func TestIdempotencyRequiredRunsAgainAfterKeyExpiry(t *testing.T) {
	calls := 0
	repo := newFakeIdempotencyRepo()
	router := newSubmitRouter(repo, &calls)

	doPost(router, "/submit", "key-1")
	repo.keys["key-1"].ExpiresAt = time.Now().Add(-time.Minute)
	doPost(router, "/submit", "key-1")

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2 after the key expired", calls)
	}
}

func TestIdempotencyRequiredDoesNotCacheFailures(t *testing.T) {
	calls := 0
	repo := newFakeIdempotencyRepo()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/submit", IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(502, gin.H{"success": false, "message": "upstream rejected the order"})
			return
		}
		c.JSON(201, gin.H{"success": true})
	})

	first := doPost(router, "/submit", "key-1")
	second := doPost(router, "/submit", "key-1")

	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2: a failed attempt must stay retryable", calls)
	}
	if first.Code != 502 {
		t.Errorf("first status = %d, want 502", first.Code)
	}
	if second.Code != 201 {
		t.Errorf("second status = %d, want 201", second.Code)
	}
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	calls := 0
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/payments", Idempotency(IdempotencyConfig{Repo: newFakeIdempotencyRepo()}), func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"success": true})
	})

	doPost(router, "/payments", "")
	doPost(router, "/payments", "")

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2: keyless requests are not deduplicated", calls)
	}
}

func TestIdempotencyReplaysWithKey(t *testing.T) {
	calls := 0
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/payments", Idempotency(IdempotencyConfig{Repo: newFakeIdempotencyRepo()}), func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"success": true, "payment_id": "abc"})
	})

	first := doPost(router, "/payments", "key-9")
	second := doPost(router, "/payments", "key-9")

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replayed response missing X-Idempotency-Replayed header")
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("replayed body %q differs from original %q", second.Body.String(), first.Body.String())
	}
}
