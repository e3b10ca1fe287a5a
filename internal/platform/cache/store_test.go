package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected value")

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", time.Minute, loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.GetOrLoad(context.Background(), "standings:redraft", time.Minute, loader)
		if err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
		if got, _ := v.(int); got != 7 {
			t.Fatalf("unexpected value %v", v)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32
	wantErr := errors.New("upstream unavailable")

	_, err := store.GetOrLoad(context.Background(), "matchups:dynasty:10", time.Minute, func(context.Context) (any, error) {
		calls.Add(1)
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}

	v, err := store.GetOrLoad(context.Background(), "matchups:dynasty:10", time.Minute, func(context.Context) (any, error) {
		calls.Add(1)
		return "pairs", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if got, _ := v.(string); got != "pairs" {
		t.Fatalf("unexpected value %v", v)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_SetRespectsTTL(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Set(context.Background(), "bracket:redraft", "rounds", 30*time.Millisecond)

	if _, ok := store.Get(context.Background(), "bracket:redraft"); !ok {
		t.Fatal("expected fresh entry to be present")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "bracket:redraft"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	store.Set(ctx, "standings:redraft", 1, time.Minute)
	store.Set(ctx, "standings:dynasty", 2, time.Minute)
	store.Set(ctx, "bracket:redraft", 3, time.Minute)

	store.DeletePrefix(ctx, "standings:")

	if _, ok := store.Get(ctx, "standings:redraft"); ok {
		t.Fatal("expected standings:redraft to be deleted")
	}
	if _, ok := store.Get(ctx, "standings:dynasty"); ok {
		t.Fatal("expected standings:dynasty to be deleted")
	}
	if _, ok := store.Get(ctx, "bracket:redraft"); !ok {
		t.Fatal("expected bracket:redraft to survive")
	}
}
