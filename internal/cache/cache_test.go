package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(1 * time.Second)
	defer c.Close()

	c.Set("/projects", "value1")

	val, found := c.Get("/projects")
	if !found {
		t.Error("Expected to find /projects")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New(100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(1 * time.Second)
	defer c.Close()

	c.Set("key1", "value1")
	c.Clear("key1")

	_, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_ZeroTTLDisablesCaching(t *testing.T) {
	c := New(0)
	defer c.Close()

	c.Set("key1", "value1")
	if _, found := c.Get("key1"); found {
		t.Error("Expected no caching with zero TTL")
	}
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("/projects", 1)
	c.Set("/projects/1", 2)
	c.Set("/projects/featured", 3)
	c.Set("/blogs", 4)

	if n := c.InvalidatePrefix("/projects"); n != 3 {
		t.Errorf("Expected 3 keys invalidated, got %d", n)
	}
	if _, found := c.Get("/projects/1"); found {
		t.Error("Expected /projects/1 to be invalidated")
	}
	if _, found := c.Get("/blogs"); !found {
		t.Error("Expected /blogs to survive")
	}

	c.Flush()
	if _, found := c.Get("/blogs"); found {
		t.Error("Expected flush to remove /blogs")
	}
}

func TestCache_GetOrLoad(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	var calls int32
	load := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "/skills", load)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "loaded" {
			t.Errorf("Expected loaded, got %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("Expected one load, got %d", calls)
	}
}

func TestCache_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	boom := errors.New("boom")
	if _, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (interface{}, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected failed load not to be cached")
	}
}

func TestCache_GetOrLoadSharesConcurrentLoads(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetOrLoad(context.Background(), "/languages", load)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n < 1 || n > 5 {
		t.Errorf("Expected between 1 and 5 loads, got %d", n)
	}
	if v, found := c.Get("/languages"); !found || v != 42 {
		t.Errorf("Expected cached 42, got %v (found=%v)", v, found)
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New(time.Second)
	c.Close()
	c.Close()
}
