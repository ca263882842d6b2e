package usecase

import "time"

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ハッシュと平文の照合。
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// セッショントークン（cookieに入れるJWT）の発行。
type SessionIssuer interface {
	Issue(userID string, now time.Time) (token string, expiresAt time.Time, err error)
}
