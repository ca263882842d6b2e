package db

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 100 * time.Millisecond
)

type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
}

type RetryOption func(*retryConfig)

func WithMaxAttempts(n int) RetryOption {
	return func(c *retryConfig) {
		if n >= 1 {
			c.maxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d > 0 {
			c.baseDelay = d
		}
	}
}

// Retry はdatastore操作を1つ実行し、一時的な失敗（Classify=FaultTransient）に限り
// 再実行する。n回目の失敗後は baseDelay×n 待ってから次を試す（線形、ジッタなし）。
//
// - Transient以外の失敗は即座にそのまま返す（エラーは包まない）。
// - 試行回数を使い切ったら最後に観測したエラーを返す。
// - 部分的に適用された書き込みのロールバックや重複排除はしない。
//   操作の冪等性は呼び出し側の責任。
func Retry[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...RetryOption) (T, error) {
	cfg := retryConfig{
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
	for _, o := range opts {
		o(&cfg)
	}

	var zero T
	var lastErr error

	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if Classify(err) != FaultTransient {
			return zero, err
		}
		if attempt == cfg.maxAttempts {
			break
		}

		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"max":     cfg.maxAttempts,
		}).WithError(err).Warn("transient datastore fault, retrying")

		timer := time.NewTimer(cfg.baseDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// RetryErr は結果値のない操作向けのRetry。
func RetryErr(ctx context.Context, op func(ctx context.Context) error, opts ...RetryOption) error {
	_, err := Retry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)
	return err
}
