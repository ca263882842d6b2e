package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks（handler => usecase 本物、repoだけ差し替え）
// =====================

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartRepoMock) FindByUserAndListing(ctx context.Context, userID string, listingID string) (model.CartItem, error) {
	args := m.Called(ctx, userID, listingID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *cartRepoMock) FindByID(ctx context.Context, cartItemID string) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *cartRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *cartRepoMock) UpdateQuantityAndTotal(ctx context.Context, cartItemID string, qty int64, total int64) error {
	args := m.Called(ctx, cartItemID, qty, total)
	return args.Error(0)
}

func (m *cartRepoMock) DeleteByID(ctx context.Context, cartItemID string) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *cartRepoMock) IsOwnedByUser(ctx context.Context, cartItemID string, userID string) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *cartRepoMock) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type listingRepoMock struct{ mock.Mock }

func (m *listingRepoMock) FindByID(ctx context.Context, id string) (model.Listing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(model.Listing)
	return l, args.Error(1)
}

func (m *listingRepoMock) Search(ctx context.Context, q string) ([]model.Listing, error) {
	panic("not used in cart handler tests")
}

func (m *listingRepoMock) Trending(ctx context.Context, limit int) ([]model.Listing, error) {
	panic("not used in cart handler tests")
}

func (m *listingRepoMock) ListBySellerID(ctx context.Context, sellerID string) ([]model.Listing, error) {
	panic("not used in cart handler tests")
}

func (m *listingRepoMock) IncrementSeenCount(ctx context.Context, id string) error {
	panic("not used in cart handler tests")
}

func (m *listingRepoMock) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	panic("not used in cart handler tests")
}

type seqIDGen struct{}

func (g *seqIDGen) NewID() string { return "generated-id" }

type testClock struct{}

func (c *testClock) Now() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) }

func newCartHandler(cartRepo *cartRepoMock, listingRepo *listingRepoMock) *CartHandler {
	uc := usecase.NewCartUsecase(cartRepo, listingRepo, &seqIDGen{}, &testClock{})
	return NewCartHandler(uc)
}

// ミドルウェアを通さず、認証済みcontextを直接作る
func newAuthedContext(t *testing.T, method string, path string, body string, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.CtxUserIDKey, userID)
	}
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestCartHandler_Add_Unauthorized(t *testing.T) {
	h := newCartHandler(new(cartRepoMock), new(listingRepoMock))

	c, rec := newAuthedContext(t, http.MethodPost, "/cart", `{"listing_id":"l1","quantity":1}`, "")
	assert.NoError(t, h.add(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandler_Add_Success(t *testing.T) {
	cartRepo := new(cartRepoMock)
	listingRepo := new(listingRepoMock)

	listingRepo.On("FindByID", mock.Anything, "l1").Return(model.Listing{ID: "l1", Price: 50000}, nil)
	cartRepo.On("FindByUserAndListing", mock.Anything, "u1", "l1").Return(model.CartItem{}, repo.ErrNotFound)
	cartRepo.On("Create", mock.Anything, mock.AnythingOfType("model.CartItem")).Return(model.CartItem{
		ID: "generated-id", UserID: "u1", ListingID: "l1", Quantity: 2, TotalPrice: 100000,
	}, nil)

	h := newCartHandler(cartRepo, listingRepo)
	c, rec := newAuthedContext(t, http.MethodPost, "/cart", `{"listing_id":"l1","quantity":2}`, "u1")

	assert.NoError(t, h.add(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.CartItemOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(100000), out.TotalPrice)
}

func TestCartHandler_Add_ListingNotFound(t *testing.T) {
	cartRepo := new(cartRepoMock)
	listingRepo := new(listingRepoMock)
	listingRepo.On("FindByID", mock.Anything, "missing").Return(model.Listing{}, repo.ErrNotFound)

	h := newCartHandler(cartRepo, listingRepo)
	c, rec := newAuthedContext(t, http.MethodPost, "/cart", `{"listing_id":"missing","quantity":1}`, "u1")

	assert.NoError(t, h.add(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "listing not found", decodeError(t, rec))
}

func TestCartHandler_Add_MissingFields(t *testing.T) {
	h := newCartHandler(new(cartRepoMock), new(listingRepoMock))

	c, rec := newAuthedContext(t, http.MethodPost, "/cart", `{"quantity":1}`, "u1")
	assert.NoError(t, h.add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing required fields", decodeError(t, rec))
}

func TestCartHandler_UpdateQuantity_InvalidQuantity(t *testing.T) {
	h := newCartHandler(new(cartRepoMock), new(listingRepoMock))

	c, rec := newAuthedContext(t, http.MethodPatch, "/cart/c1", `{"quantity":0}`, "u1")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	assert.NoError(t, h.updateQuantity(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid cart item id or quantity", decodeError(t, rec))
}

func TestCartHandler_UpdateQuantity_Success(t *testing.T) {
	cartRepo := new(cartRepoMock)
	cartRepo.On("FindByID", mock.Anything, "c1").Return(model.CartItem{
		ID: "c1", UserID: "u1", ListingID: "l1", Quantity: 1, TotalPrice: 50000,
		Listing: &model.Listing{ID: "l1", Price: 50000},
	}, nil)
	cartRepo.On("UpdateQuantityAndTotal", mock.Anything, "c1", int64(3), int64(150000)).Return(nil)

	h := newCartHandler(cartRepo, new(listingRepoMock))
	c, rec := newAuthedContext(t, http.MethodPatch, "/cart/c1", `{"quantity":3}`, "u1")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	assert.NoError(t, h.updateQuantity(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.CartItemOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(150000), out.TotalPrice)
	cartRepo.AssertExpectations(t)
}

func TestCartHandler_Remove_NotOwned(t *testing.T) {
	cartRepo := new(cartRepoMock)
	cartRepo.On("IsOwnedByUser", mock.Anything, "c1", "u2").Return(false, nil)

	h := newCartHandler(cartRepo, new(listingRepoMock))
	c, rec := newAuthedContext(t, http.MethodDelete, "/cart/c1", "", "u2")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	assert.NoError(t, h.remove(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "cart item not found", decodeError(t, rec))
}
