package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/sirupsen/logrus"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, password string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type RegisteredUserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterOutput struct {
	Message string               `json:"message"`
	User    RegisteredUserOutput `json:"user"`
}

type LoginInput struct {
	Username string
	Password string
}

// ログイン成功時のレスポンス本体（パスワードは絶対に含めない）
type LoginOutput struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}

// ログインの副作用（handlerがcookieにセットする）
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    SessionIssuer
	idGen     IDGenerator
	clock     Clock
}

func NewAuthUsecase(
	users repository.UserRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer SessionIssuer,
	idGen IDGenerator,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		idGen:     idGen,
		clock:     clock,
	}
}

// Register は会員登録。パスワードは必ずハッシュ化して保存する（平文保存しない）。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		logrus.WithError(err).Error("auth: password hash failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		logrus.WithError(err).Error("auth: user create failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &RegisterOutput{
		Message: "registration successful",
		User: RegisteredUserOutput{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// Login はユーザー名＋パスワードの認証。
// 「誰が存在しないか」を漏らさないため、失敗理由は常に同じメッセージにする。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, *LoginSession, error) {
	if err := u.validator.ValidateLogin(ctx, in.Username, in.Password); err != nil {
		return nil, nil, err
	}

	// ユーザー参照はRepository側でRetry経由になっている
	user, err := u.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if err != nil {
		logrus.WithError(err).Error("auth: user lookup failed")
		return nil, nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return nil, nil, NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, u.clock.Now())
	if err != nil {
		logrus.WithError(err).Error("auth: session issue failed")
		return nil, nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := &LoginOutput{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		ProfilePicture: user.ProfilePicture,
	}
	return out, &LoginSession{Token: token, ExpiresAt: expiresAt}, nil
}
