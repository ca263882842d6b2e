package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockAuthValidator struct{ mock.Mock }

func (m *MockAuthValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	args := m.Called(ctx, username, email, password)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

// テスト用の固定issuer
type stubIssuer struct{}

func (i *stubIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	return "token-" + userID, now.Add(time.Hour), nil
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(b)
}

func newAuthUC(users *MockUserRepository, v *MockAuthValidator) *AuthUsecase {
	return NewAuthUsecase(
		users,
		v,
		NewBcryptPasswordHasher(bcrypt.MinCost),
		NewBcryptPasswordVerifier(),
		&stubIssuer{},
		&fixedIDGen{id: "user-1"},
		&fixedClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)},
	)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	v := new(MockAuthValidator)

	v.On("ValidateRegister", mock.Anything, "ash_ketchum", "ash@example.com", "password123").Return(nil)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 平文のまま保存していないこと
		return u.Username == "ash_ketchum" &&
			u.Email == "ash@example.com" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "password123"
	})).Return(nil)

	u := newAuthUC(users, v)
	out, err := u.Register(context.Background(), RegisterInput{
		Username: "ash_ketchum",
		Email:    "ash@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "registration successful", out.Message)
	assert.Equal(t, "ash_ketchum", out.User.Username)
	users.AssertExpectations(t)
	v.AssertExpectations(t)
}

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	users := new(MockUserRepository)
	v := new(MockAuthValidator)

	v.On("ValidateRegister", mock.Anything, "", "", "").
		Return(NewHTTPError(http.StatusBadRequest, "missing required fields"))

	u := newAuthUC(users, v)
	_, err := u.Register(context.Background(), RegisterInput{})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	users := new(MockUserRepository)
	v := new(MockAuthValidator)

	v.On("ValidateLogin", mock.Anything, "ash_ketchum", "password123").Return(nil)
	users.On("FindByUsername", mock.Anything, "ash_ketchum").Return(&model.User{
		ID:           "user-1",
		Username:     "ash_ketchum",
		Email:        "ash@example.com",
		PasswordHash: mustHash(t, "password123"),
	}, nil)

	u := newAuthUC(users, v)
	out, session, err := u.Login(context.Background(), LoginInput{
		Username: "ash_ketchum",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ash_ketchum", out.Username)
	assert.Equal(t, "token-user-1", session.Token)
	assert.False(t, session.ExpiresAt.IsZero())
}

// 存在しないユーザーとパスワード違いは同じメッセージで401
func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	v := new(MockAuthValidator)

	v.On("ValidateLogin", mock.Anything, "nobody", "password123").Return(nil)
	users.On("FindByUsername", mock.Anything, "nobody").Return(nil, repository.ErrUserNotFound)

	u := newAuthUC(users, v)
	out, session, err := u.Login(context.Background(), LoginInput{Username: "nobody", Password: "password123"})

	assert.Nil(t, out)
	assert.Nil(t, session)
	assertHTTPError(t, err, http.StatusUnauthorized, "invalid username or password")
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	v := new(MockAuthValidator)

	v.On("ValidateLogin", mock.Anything, "ash_ketchum", "wrong").Return(nil)
	users.On("FindByUsername", mock.Anything, "ash_ketchum").Return(&model.User{
		ID:           "user-1",
		Username:     "ash_ketchum",
		PasswordHash: mustHash(t, "password123"),
	}, nil)

	u := newAuthUC(users, v)
	_, session, err := u.Login(context.Background(), LoginInput{Username: "ash_ketchum", Password: "wrong"})

	assert.Nil(t, session)
	assertHTTPError(t, err, http.StatusUnauthorized, "invalid username or password")
}
