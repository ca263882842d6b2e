package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// テストを速くするため待ち時間は1msにする
func fastDelay() RetryOption {
	return WithBaseDelay(time.Millisecond)
}

func transientErr() error {
	return errors.New(`ERROR: prepared statement "stmt_7" already exists`)
}

// =====================
// Classify
// =====================

func TestClassify_Transient_PreparedStatementMessage(t *testing.T) {
	err := transientErr()
	assert.Equal(t, FaultTransient, Classify(err))
}

func TestClassify_Transient_DuplicatePreparedStatementCode(t *testing.T) {
	err := &pgconn.PgError{Code: "42P05", Message: "duplicate prepared statement"}
	assert.Equal(t, FaultTransient, Classify(err))
}

func TestClassify_Transient_StaleStatementCacheCode(t *testing.T) {
	err := &pgconn.PgError{Code: "26000", Message: "invalid sql statement name"}
	assert.Equal(t, FaultTransient, Classify(err))
}

// ラップされていてもerrors.Asで拾える
func TestClassify_Transient_WrappedPgError(t *testing.T) {
	inner := &pgconn.PgError{Code: "42P05"}
	err := fmt.Errorf("query failed: %w", inner)
	assert.Equal(t, FaultTransient, Classify(err))
}

func TestClassify_Other(t *testing.T) {
	cases := []error{
		nil,
		errors.New("connection refused"),
		&pgconn.PgError{Code: "23505", Message: "duplicate key value"},
		context.DeadlineExceeded,
	}
	for _, err := range cases {
		assert.Equal(t, FaultOther, Classify(err))
	}
}

// =====================
// Retry
// =====================

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	v, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}, fastDelay())

	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

// 2回transientで落ちて3回目に成功 => 呼び出しはちょうど3回
func TestRetry_SucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	v, err := Retry(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", transientErr()
		}
		return "ok", nil
	}, fastDelay())

	assert.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)
}

// transient以外は即終了。エラーは包まずそのまま返る
func TestRetry_NonTransient_FailsImmediately(t *testing.T) {
	boom := errors.New("connection refused")
	calls := 0

	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	}, fastDelay())

	assert.Equal(t, 1, calls)
	assert.Same(t, boom, err)
}

// 全部transientで使い切ったら「最後の」エラーが返る
func TestRetry_Exhausted_ReturnsLastError(t *testing.T) {
	calls := 0
	last := &pgconn.PgError{Code: "42P05", Message: "third failure"}

	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, transientErr()
		}
		return 0, last
	}, fastDelay())

	assert.Equal(t, 3, calls)
	assert.Same(t, error(last), err)
}

func TestRetry_MaxAttemptsOption(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, transientErr()
	}, fastDelay(), WithMaxAttempts(5))

	assert.Error(t, err)
	assert.Equal(t, 5, calls)
}

// 待ち中にctxが切れたら、ctxのエラーではなく最後に観測したエラーを返す
func TestRetry_ContextCanceled_ReturnsLastError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Retry(ctx, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, transientErr()
	}, WithBaseDelay(time.Hour))

	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "prepared statement")
}

func TestRetryErr_PassesThrough(t *testing.T) {
	calls := 0
	err := RetryErr(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return transientErr()
		}
		return nil
	}, fastDelay())

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
