package wallpaper

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/echoflaresat/sunpaper/solar"
)

func TestCachedProviderMemoizesByDate(t *testing.T) {
	var calls int32
	counted := func(ts time.Time) (solar.Day, error) {
		atomic.AddInt32(&calls, 1)
		return fixedSun(6, 18)(ts)
	}

	provider := CachedProvider(counted, 8)

	for i := 0; i < 10; i++ {
		if _, err := provider(at(6+i, 0)); err != nil {
			t.Fatalf("provider failed: %v", err)
		}
	}
	if _, err := provider(at(12, 0).AddDate(0, 0, 1)); err != nil {
		t.Fatalf("provider failed: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("underlying provider called %d times, want 2 (one per date)", got)
	}
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	boom := errors.New("boom")
	var calls int32
	failing := func(time.Time) (solar.Day, error) {
		atomic.AddInt32(&calls, 1)
		return solar.Day{}, boom
	}

	provider := CachedProvider(failing, 8)
	for i := 0; i < 3; i++ {
		if _, err := provider(at(12, 0)); !errors.Is(err, boom) {
			t.Fatalf("got %v, want boom", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("underlying provider called %d times, want 3", got)
	}
}

func TestCachedProviderConcurrent(t *testing.T) {
	provider := CachedProvider(fixedSun(6, 18), 8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h := 0; h < 24; h++ {
				d, err := provider(at(h, 0))
				if err != nil {
					t.Errorf("provider failed: %v", err)
					return
				}
				if d.Sunrise.Hour() != 6 {
					t.Errorf("unexpected sunrise %v", d.Sunrise)
					return
				}
			}
		}()
	}
	wg.Wait()
}
