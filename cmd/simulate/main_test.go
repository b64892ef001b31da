package main

import (
	"sync"
	"sync/atomic"
	"testing"
)

// Concurrent workers must never be granted more than the max-games bound,
// however many race for the last slot.
func TestClaimGame_BoundsConcurrentClaims(t *testing.T) {
	var seq atomic.Int64
	const maxGames = 25
	const workers = 8

	var granted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := claimGame(&seq, maxGames); !ok {
					return
				}
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := granted.Load(); got != maxGames {
		t.Fatalf("granted=%d want=%d", got, maxGames)
	}
}

func TestClaimGame_UnboundedAndSequential(t *testing.T) {
	var seq atomic.Int64
	for want := int64(1); want <= 100; want++ {
		n, ok := claimGame(&seq, 0)
		if !ok {
			t.Fatalf("claim %d refused with no bound set", want)
		}
		if n != want {
			t.Fatalf("seq=%d want=%d", n, want)
		}
	}
}
