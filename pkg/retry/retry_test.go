package retry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fastPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, InitialDelay: time.Millisecond, Multiplier: 2.0}
}

func TestDo_SuccessFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), fastPolicy(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("want 1 call, got %d", calls)
	}
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), fastPolicy(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("want 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func() error {
		calls++
		return sentinel
	})
	if calls != 3 {
		t.Fatalf("want 3 calls, got %d", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("final error must wrap the last failure, got %v", err)
	}
	// В тексте ошибки — число сделанных попыток.
	if !strings.Contains(err.Error(), "3 attempt") {
		t.Fatalf("error must mention attempts made, got %q", err.Error())
	}
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), fastPolicy(5), func() error {
		calls++
		return Permanent(errors.New("bad input"))
	})
	if calls != 1 {
		t.Fatalf("permanent error must not be retried, got %d calls", calls)
	}
	if err == nil || !IsPermanent(err) {
		t.Fatalf("want permanent error, got %v", err)
	}
}

func TestDo_ContextCancelDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxAttempts: 3, InitialDelay: time.Minute, Multiplier: 2.0}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, p, func() error { return errors.New("temporary") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestDo_NormalizesBadPolicy(t *testing.T) {
	t.Parallel()

	calls := 0
	// MaxAttempts=0 падает в дефолтные 3.
	err := Do(context.Background(), Policy{InitialDelay: time.Millisecond, Multiplier: 1}, func() error {
		calls++
		return errors.New("x")
	})
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 3 {
		t.Fatalf("want default 3 attempts, got %d", calls)
	}
}
