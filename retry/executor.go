package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"operation-history/hydrate"
)

const (
	DefaultMaxAttempts = 10
	DefaultDelay       = 5 * time.Second
)

// Attempt describes one invocation of a remote operation.
type Attempt struct {
	CallID    string
	Operation string
	// Number counts from 1.
	Number int
	// Err is nil for the successful attempt.
	Err error
}

// Executor runs remote calls under a retry policy. It holds no per-call state
// and may be shared between goroutines.
type Executor struct {
	transport   Transport
	maxAttempts int
	delay       time.Duration
	clock       Clock
	logger      *zap.Logger
	metrics     *Metrics
	hydration   []hydrate.Option
	newCallID   func() string

	onRetry     func(Attempt)
	onSuccess   func(Attempt)
	onExhausted func(Attempt)
}

func New(transport Transport, opts ...Option) *Executor {
	e := &Executor{
		transport:   transport,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
		clock:       WallClock(),
		logger:      zap.NewNop(),
		newCallID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.metrics == nil {
		e.metrics = NewMetrics(nil)
	}

	return e
}

func (e *Executor) Metrics() *Metrics {
	return e.metrics
}

// Do invokes op until an attempt succeeds or the budget is spent, and returns the raw
// result of the successful attempt. Exhaustion yields an *ExhaustedError, cancellation
// the context's error.
func (e *Executor) Do(ctx context.Context, op string, param Param) (any, error) {
	callID := e.newCallID()
	logger := e.logger.With(zap.String("call_id", callID), zap.String("operation", op))

	var last error

	for n := 1; n <= e.maxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		e.metrics.Attempts(op).Inc()

		raw, err := e.transport.Call(ctx, op, param)
		attempt := Attempt{CallID: callID, Operation: op, Number: n, Err: classify(raw, err)}

		if attempt.Err == nil {
			logger.Debug("call succeeded", zap.Int("attempt", n))

			if e.onSuccess != nil {
				e.onSuccess(attempt)
			}

			return raw, nil
		}

		last = attempt.Err
		e.metrics.Failures(op).Inc()

		if n == e.maxAttempts {
			break
		}

		logger.Warn("attempt failed, retrying",
			zap.Int("attempt", n),
			zap.Duration("delay", e.delay),
			zap.Error(attempt.Err))

		if e.onRetry != nil {
			e.onRetry(attempt)
		}

		if err := e.clock.Sleep(ctx, e.delay); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	e.metrics.Exhausted(op).Inc()
	logger.Error("all attempts failed", zap.Int("attempts", e.maxAttempts), zap.Error(last))

	if e.onExhausted != nil {
		e.onExhausted(Attempt{CallID: callID, Operation: op, Number: e.maxAttempts, Err: last})
	}

	return nil, &ExhaustedError{Operation: op, Attempts: e.maxAttempts, Last: last}
}

// Call invokes op with req and hydrates the result onto def.
//
// The returned response is always usable: on exhaustion, cancellation or a malformed
// result it is def, accompanied by the error.
func Call[Req, Resp any](ctx context.Context, e *Executor, op string, req Req, def Resp) (Resp, error) {
	raw, err := e.Do(ctx, op, paramOf(req))
	if err != nil {
		return def, err
	}

	tree, ok := raw.(map[string]any)
	if !ok {
		return def, fmt.Errorf("%s: %w: %T", op, ErrMalformedResponse, raw)
	}

	return hydrate.Hydrate(def, tree, e.hydration...)
}
