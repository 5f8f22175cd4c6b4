// Package backoff implements the exponential-backoff retry policy shared by
// the download and upload paths of the sync pipeline.
package backoff

import (
	"time"

	"adsync/internal/services"
)

// Policy describes a bounded exponential backoff.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration

	// Sleeper performs the inter-attempt sleep. Overridable for tests. Sleeps
	// are not interruptible: a running retry sequence finishes or exhausts its
	// budget regardless of the caller.
	Sleeper func(time.Duration)
}

// Default mirrors the pipeline defaults: 3 attempts, 2s base, doubling.
func Default() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Multiplier:  2,
		MaxDelay:    30 * time.Second,
	}
}

// Do runs fn until it succeeds or the attempt budget is exhausted, sleeping
// between attempts. The final error is returned unwrapped. Errors marked
// terminal by the services taxonomy are returned immediately.
func (p Policy) Do(fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	sleeper := p.Sleeper
	if sleeper == nil {
		sleeper = time.Sleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if services.Terminal(err) {
			return err
		}
		if attempt < attempts {
			sleeper(p.delay(attempt))
		}
	}
	return err
}

// delay returns the sleep before the attempt following the given 1-based one.
func (p Policy) delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	delay := float64(base)
	for i := 1; i < attempt; i++ {
		delay *= multiplier
	}
	d := time.Duration(delay)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
