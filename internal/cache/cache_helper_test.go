package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedCourse struct {
	ID       uint   `json:"id"`
	JoinCode string `json:"join_code"`
}

func newTestHelper(t *testing.T) *CacheHelper {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "course:")
}

func TestCacheSetAndGet(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	want := cachedCourse{ID: 7, JoinCode: "A1B2C3D4"}
	if err := helper.Set(ctx, "code:A1B2C3D4", want, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got cachedCourse
	if err := helper.Get(ctx, "code:A1B2C3D4", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheGetMissing(t *testing.T) {
	helper := newTestHelper(t)

	var got cachedCourse
	err := helper.Get(context.Background(), "code:MISSING0", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &cachedCourse{ID: 9, JoinCode: "ZZZZ1111"}, nil
	}

	var first cachedCourse
	if err := helper.CacheOrExecute(ctx, "code:ZZZZ1111", &first, time.Minute, fetch); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	var second cachedCourse
	if err := helper.CacheOrExecute(ctx, "code:ZZZZ1111", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("fetch ran %d times, want 1 (second call should hit the cache)", calls)
	}
	if second.ID != 9 {
		t.Errorf("cached value = %+v", second)
	}
}

func TestCacheOrExecutePropagatesFetchError(t *testing.T) {
	helper := newTestHelper(t)

	wantErr := errors.New("record not found")
	var dest cachedCourse
	err := helper.CacheOrExecute(context.Background(), "code:NOPE0000", &dest, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to pass through unwrapped, got %v", err)
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("set with nil client returned %v", err)
	}

	calls := 0
	var dest string
	err := helper.CacheOrExecute(ctx, "k", &dest, time.Minute, func() (interface{}, error) {
		calls++
		return "fresh", nil
	})
	if err != nil {
		t.Fatalf("cache-or-execute with nil client failed: %v", err)
	}
	if calls != 1 || dest != "fresh" {
		t.Errorf("fetch not executed directly: calls=%d dest=%q", calls, dest)
	}
}
