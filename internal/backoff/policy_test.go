package backoff_test

import (
	"errors"
	"testing"
	"time"

	"adsync/internal/backoff"
	"adsync/internal/services"
)

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	policy := backoff.Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Multiplier:  2,
		MaxDelay:    30 * time.Second,
		Sleeper:     func(d time.Duration) { slept = append(slept, d) },
	}

	calls := 0
	err := policy.Do(func() error {
		calls++
		if calls < 3 {
			return services.Wrap(services.ErrTransport, "test", "fetch", "flaky", errors.New("boom"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(slept) != 2 || slept[0] != 2*time.Second || slept[1] != 4*time.Second {
		t.Fatalf("unexpected sleep schedule: %v", slept)
	}
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	policy := backoff.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
		Sleeper:     func(d time.Duration) { slept = append(slept, d) },
	}

	calls := 0
	failure := services.Wrap(services.ErrTransport, "test", "fetch", "down", errors.New("refused"))
	err := policy.Do(func() error {
		calls++
		return failure
	})
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 sleeps (none after the final attempt), got %d", len(slept))
	}
}

func TestDoStopsImmediatelyOnTerminalError(t *testing.T) {
	t.Parallel()

	policy := backoff.Default()
	policy.Sleeper = func(time.Duration) { t.Fatal("must not sleep on terminal errors") }

	calls := 0
	err := policy.Do(func() error {
		calls++
		return services.Wrap(services.ErrValidation, "test", "check", "bad input", nil)
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("terminal errors must not be retried, got %d attempts", calls)
	}
}

func TestDelayIsCappedAtMaxDelay(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	policy := backoff.Policy{
		MaxAttempts: 5,
		BaseDelay:   2 * time.Second,
		Multiplier:  4,
		MaxDelay:    10 * time.Second,
		Sleeper:     func(d time.Duration) { slept = append(slept, d) },
	}

	_ = policy.Do(func() error { return errors.New("always") })

	want := []time.Duration{2 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), slept)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("sleep %d: expected %v, got %v", i, want[i], slept[i])
		}
	}
}

func TestZeroAttemptsStillRunsOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	err := backoff.Policy{}.Do(func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("expected a single successful attempt, got calls=%d err=%v", calls, err)
	}
}
