package generator

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPropertiesGetOrCreateOnce(t *testing.T) {
	g := New("test")
	var calls atomic.Int32
	start := make(chan struct{})

	const n = 32
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			v, err := g.Properties().GetOrCreate("fonts", func() (any, error) {
				calls.Add(1)
				return &struct{ name string }{"fonts"}, nil
			})
			if err != nil {
				t.Errorf("GetOrCreate() error = %v", err)
			}
			results[i] = v
		}(i)
	}
	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("instantiator calls = %d, want 1", got)
	}
	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("results[%d] differs from results[0]", i)
		}
	}
}

func TestPropertiesDistinctKeysDoNotBlock(t *testing.T) {
	g := New("test")
	props := g.Properties()
	release := make(chan struct{})
	entered := make(chan struct{})

	done := make(chan any)
	go func() {
		v, _ := props.GetOrCreate("slow", func() (any, error) {
			close(entered)
			<-release
			return "slow", nil
		})
		done <- v
	}()
	<-entered

	fast := make(chan any)
	go func() {
		v, _ := props.GetOrCreate("fast", func() (any, error) { return "fast", nil })
		fast <- v
	}()

	select {
	case v := <-fast:
		if v != "fast" {
			t.Errorf("fast = %v, want fast", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("key B blocked behind slow key A")
	}

	close(release)
	if v := <-done; v != "slow" {
		t.Errorf("slow = %v, want slow", v)
	}
}

func TestPropertiesFailureNotCached(t *testing.T) {
	g := New("test")
	props := g.Properties()

	if _, err := props.GetOrCreate("k", func() (any, error) { return nil, fmt.Errorf("nope") }); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := props.Get("k"); ok {
		t.Error("failed value should not be cached")
	}
	v, err := props.GetOrCreate("k", func() (any, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Errorf("GetOrCreate() = %v, %v; want 7, nil", v, err)
	}
}

type colorTag struct{}

func TestCacheTyped(t *testing.T) {
	g := New("test")

	c := Cache[string, int](g, colorTag{})
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	c.Store("red", 1)

	again := Cache[string, int](g, colorTag{})
	if again != c {
		t.Error("Cache() should return the same container for the same tag")
	}
	if v, ok := again.Load("red"); !ok || v != 1 {
		t.Errorf("Load(red) = %v, %v; want 1, true", v, ok)
	}

	other := Cache[string, string](g, colorTag{})
	if other.Len() != 0 {
		t.Error("different value types should yield distinct containers")
	}

	if Cache[string, int](New("other"), colorTag{}).Len() != 0 {
		t.Error("containers should be scoped to their generator")
	}
}

func TestKeyedCacheGetOrAdd(t *testing.T) {
	c := NewKeyedCache[int, string]()
	calls := 0
	create := func() string { calls++; return "v" }

	if got := c.GetOrAdd(1, create); got != "v" {
		t.Errorf("GetOrAdd() = %q, want %q", got, "v")
	}
	c.GetOrAdd(1, create)
	if calls != 1 {
		t.Errorf("create calls = %d, want 1", calls)
	}

	c.Delete(1)
	if _, ok := c.Load(1); ok {
		t.Error("Delete() did not remove key")
	}
}
