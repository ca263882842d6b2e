package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// FaultClass はdatastoreエラーの分類。
// リトライ判定はこの列挙にだけ依存し、呼び出し側でのメッセージ文字列比較はしない。
type FaultClass int

const (
	// リトライしても無駄な失敗（制約違反・接続拒否など）
	FaultOther FaultClass = iota

	// 一時的な失敗。同じ操作の再実行で解消しうる
	FaultTransient
)

const (
	// duplicate_prepared_statement
	sqlstateDuplicatePreparedStatement = "42P05"

	// invalid_sql_statement_name。
	// プーリングされた接続でstatementキャッシュが古くなったときに出る
	sqlstateStaleStatementCache = "26000"
)

// Classify はエラーをFaultClassへ分類する。
// Transient扱いは閉じた集合：42P05 / 26000 / "prepared statement" を含むメッセージのみ。
func Classify(err error) FaultClass {
	if err == nil {
		return FaultOther
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateDuplicatePreparedStatement, sqlstateStaleStatementCache:
			return FaultTransient
		}
	}

	if strings.Contains(err.Error(), "prepared statement") {
		return FaultTransient
	}

	return FaultOther
}
