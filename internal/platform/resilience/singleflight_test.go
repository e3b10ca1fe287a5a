package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("roster-key", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if got, _ := v.(string); got != "ok" {
				t.Errorf("unexpected value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_Do_ClearsEntryAfterError(t *testing.T) {
	var g SingleFlight

	wantErr := errors.New("upstream down")
	_, err, _ := g.Do("bracket-key", func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected first call error, got %v", err)
	}

	v, err, shared := g.Do("bracket-key", func() (any, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if shared {
		t.Fatal("second call should not share the failed first call")
	}
	if got, _ := v.(int); got != 42 {
		t.Fatalf("unexpected value: %v", v)
	}
}
