package validator

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// 必須チェック
	if username == "" || email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password too short")
	}

	// ユーザー名・メールの重複チェック（DBが必要）
	if u, err := v.users.FindByUsername(ctx, username); err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "username already exists")
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return usecase.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if u, err := v.users.FindByEmail(ctx, email); err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "email already exists")
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return usecase.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	return nil
}

// メールチェック
func isEmailLike(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
