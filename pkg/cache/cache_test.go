package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/observability"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

func init() {
	retryDelay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}

	if err := c.Set(ctx, "a", []byte("alpha"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "b", []byte("beta"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "alpha" {
		t.Fatalf("Get(a) = %q, %v, %v", data, hit, err)
	}

	entries, size, err := c.Stats()
	if err != nil || entries != 2 || size == 0 {
		t.Errorf("Stats = %d, %d, %v", entries, size, err)
	}

	// Expired entries are misses and are removed.
	now = now.Add(2 * time.Hour)
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expired entry should miss")
	}
	if _, hit, _ := c.Get(ctx, "b"); !hit {
		t.Error("entry without ttl should not expire")
	}

	if err := c.Delete(ctx, "b"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "b"); err != nil {
		t.Errorf("Delete twice: %v", err)
	}
	if entries, _, _ := c.Stats(); entries != 0 {
		t.Errorf("entries after delete = %d", entries)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = %v, %v; want miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		if err := c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.ClearCount()
	if err != nil || n != 5 {
		t.Fatalf("ClearCount = %d, %v; want 5", n, err)
	}
	left, _ := os.ReadDir(c.Dir())
	if len(left) != 0 {
		t.Errorf("%d entries left after clear", len(left))
	}
}

func TestFileCacheConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte(strings.Repeat("x", 100+i)), 0)
		}()
	}
	wg.Wait()
	data, hit, err := c.Get(ctx, "shared")
	if err != nil || !hit || len(data) < 100 {
		t.Errorf("Get after concurrent sets = %d bytes, %v, %v", len(data), hit, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	// xxh3-128 produces 32 hex chars
	if len(h1) != 32 {
		t.Errorf("Hash length should be 32, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	th := style.DefaultTheme()

	a := k.ArtifactKey("rec", ArtifactKeyOpts{Format: "pdf", Theme: th})
	b := k.ArtifactKey("rec", ArtifactKeyOpts{Format: "png", Theme: th})
	if a == b {
		t.Error("format should change the artifact key")
	}
	if !strings.HasPrefix(a, "artifact:") {
		t.Errorf("ArtifactKey = %q", a)
	}

	other := th
	other.Brand.Name = "Other Garage"
	if a == k.ArtifactKey("rec", ArtifactKeyOpts{Format: "pdf", Theme: other}) {
		t.Error("theme should change the artifact key")
	}
	if a != k.ArtifactKey("rec", ArtifactKeyOpts{Format: "pdf", Theme: th}) {
		t.Error("ArtifactKey should be deterministic")
	}

	if got := k.ScoreKey("abc"); got != "score:abc" {
		t.Errorf("ScoreKey = %q", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "IR:")
	if got := scoped.ScoreKey("abc"); got != "IR:score:abc" {
		t.Errorf("ScoreKey = %q", got)
	}
	if got := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "pdf"}); !strings.HasPrefix(got, "IR:artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.ScoreKey("h"); key != "prefix:score:h" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRecordHash(t *testing.T) {
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Toyota", Model: "Camry"})
	h1, err := RecordHash(rec)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := RecordHash(rec)
	if h1 != h2 {
		t.Error("RecordHash should be deterministic")
	}
	rec.Sections[0].Photos = []inspection.Photo{inspection.NewPhoto([]byte{1, 2, 3})}
	if h3, _ := RecordHash(rec); h3 == h1 {
		t.Error("photo payload should change the record hash")
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestObserved(t *testing.T) {
	defer observability.Reset()
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Observed(fc, "artifact")
	_, _, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _, _ = c.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hits/misses/sets = %d/%d/%d, want 1/1/1", hooks.hits, hooks.misses, hooks.sets)
	}
	if cl, ok := c.(Clearer); !ok {
		t.Error("observed cache should forward Clear")
	} else if err := cl.Clear(ctx); err != nil {
		t.Errorf("Clear: %v", err)
	}
}

func TestRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if !errs.Is(err, errs.ErrCodeStorage) {
		t.Errorf("err = %v, want STORAGE_ERROR", err)
	}
	if _, err := NewRedisCache(ctx, RedisConfig{}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("empty addr err = %v, want INVALID_CONFIG", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	netErr := &net.OpError{Op: "dial", Err: errors.New("refused")}
	if err := classify(netErr); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("net error should be retryable network error: %v", err)
	}
	plain := errors.New("WRONGTYPE")
	if IsRetryable(classify(plain)) {
		t.Error("server errors should not be retryable")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrClosed) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrClosed
	})
	if err != ErrClosed || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err=%v calls=%d", err, calls)
	}

	// Gives up after three attempts
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
