package chat

import (
	"context"
	"math/rand/v2"
	"time"
)

// Default bounds for both simulated pauses.
const (
	DefaultMinDelay = 600 * time.Millisecond
	DefaultMaxDelay = 900 * time.Millisecond
)

// DelaySource yields the length of one simulated pause.
type DelaySource func() time.Duration

// RandomDelay draws uniformly from [min, max). A non-positive span always yields min.
func RandomDelay(min, max time.Duration) (source DelaySource) {
	span := max - min
	source = func() (d time.Duration) {
		d = min
		if span > 0 {
			d += rand.N(span)
		}
		return d
	}
	return source
}

// FixedDelay always yields d.
func FixedDelay(d time.Duration) (source DelaySource) {
	source = func() time.Duration {
		return d
	}
	return source
}

// NoDelay skips both pauses.
func NoDelay() (source DelaySource) {
	source = FixedDelay(0)
	return source
}

// pause blocks for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) (err error) {
	if d <= 0 {
		err = ctx.Err()
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
	}

	return err
}
