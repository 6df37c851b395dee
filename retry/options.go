package retry

import (
	"time"

	"go.uber.org/zap"

	"operation-history/hydrate"
)

type Option func(*Executor)

// WithMaxAttempts sets the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Executor) {
		if n >= 1 {
			e.maxAttempts = n
		}
	}
}

// WithDelay sets the constant pause between attempts.
func WithDelay(d time.Duration) Option {
	return func(e *Executor) {
		if d >= 0 {
			e.delay = d
		}
	}
}

func WithClock(c Clock) Option {
	return func(e *Executor) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithHydration sets the options responses are hydrated with.
func WithHydration(opts ...hydrate.Option) Option {
	return func(e *Executor) {
		e.hydration = append(e.hydration, opts...)
	}
}

// WithCallID replaces the generator of per-call correlation ids.
func WithCallID(gen func() string) Option {
	return func(e *Executor) {
		if gen != nil {
			e.newCallID = gen
		}
	}
}

// OnRetry is called after a failed attempt that will be retried, before the pause.
func OnRetry(fn func(Attempt)) Option {
	return func(e *Executor) { e.onRetry = fn }
}

func OnSuccess(fn func(Attempt)) Option {
	return func(e *Executor) { e.onSuccess = fn }
}

// OnExhausted is called once the last attempt failed; Attempt.Err is the last failure.
func OnExhausted(fn func(Attempt)) Option {
	return func(e *Executor) { e.onExhausted = fn }
}
