package counter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
}

func TestNext_SequentialNoGaps(t *testing.T) {
	mock := newCounterMock()
	s := NewStore(mock, "counters")
	s.nowFunc = fixedClock(2026)

	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		got, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		want := fmt.Sprintf("OPTI-INV-2026-%04d", i)
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestNext_YearRolloverResetsToOne(t *testing.T) {
	mock := newCounterMock()
	mock.seed(2025, 847)

	s := NewStore(mock, "counters")
	s.nowFunc = fixedClock(2026)

	got, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if got != "OPTI-INV-2026-0001" {
		t.Fatalf("expected reset to 0001, got %s", got)
	}
}

func TestNext_ConcurrentCallsNeverShareANumber(t *testing.T) {
	mock := newCounterMock()
	s := NewStore(mock, "counters")
	s.nowFunc = fixedClock(2026)

	const callers = 50
	results := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := s.Next(context.Background())
			if err != nil {
				t.Errorf("Next error: %v", err)
				return
			}
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for num := range results {
		if seen[num] {
			t.Fatalf("duplicate invoice number issued: %s", num)
		}
		seen[num] = true
	}
	if len(seen) != callers {
		t.Fatalf("expected %d unique numbers, got %d", callers, len(seen))
	}
}

func TestNext_SequenceExhausted(t *testing.T) {
	mock := newCounterMock()
	mock.seed(2026, maxSequence)

	s := NewStore(mock, "counters")
	s.nowFunc = fixedClock(2026)

	_, err := s.Next(context.Background())
	if !errors.Is(err, ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted, got %v", err)
	}
}

func TestNext_RetriesThroughWriteConflicts(t *testing.T) {
	mock := newCounterMock()
	mock.seed(2026, 10)
	mock.failNextUpdates = 2 // first two increments lose their race

	s := NewStore(mock, "counters")
	s.nowFunc = fixedClock(2026)

	got, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if got != "OPTI-INV-2026-0011" {
		t.Fatalf("expected OPTI-INV-2026-0011, got %s", got)
	}
	if mock.updateCalls < 3 {
		t.Fatalf("expected at least 3 update attempts, got %d", mock.updateCalls)
	}
}

func TestNext_NonConditionalErrorPropagates(t *testing.T) {
	mock := newCounterMock()
	mock.hardErr = errors.New("dynamo down")

	s := NewStore(mock, "counters")
	s.nowFunc = fixedClock(2026)

	_, err := s.Next(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrSequenceExhausted) {
		t.Fatalf("unexpected exhaustion error: %v", err)
	}
}
