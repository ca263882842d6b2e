package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx に渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	carts     repo.CartRepository
	listings  repo.ListingRepository
	purchases repo.PurchaseRepository
}

func (r *TxReposMock) Carts() repo.CartRepository         { return r.carts }
func (r *TxReposMock) Listings() repo.ListingRepository   { return r.listings }
func (r *TxReposMock) Purchases() repo.PurchaseRepository { return r.purchases }

type MockPurchaseRepository struct{ mock.Mock }

func (m *MockPurchaseRepository) CreateBulk(ctx context.Context, purchases []model.PurchaseHistory) error {
	args := m.Called(ctx, purchases)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListByUserID(ctx context.Context, userID string) ([]model.PurchaseHistory, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]model.PurchaseHistory)
	return ps, args.Error(1)
}

type MockExpeditionRepository struct{ mock.Mock }

func (m *MockExpeditionRepository) List(ctx context.Context) ([]model.Expedition, error) {
	args := m.Called(ctx)
	es, _ := args.Get(0).([]model.Expedition)
	return es, args.Error(1)
}

// チェックアウト用の在庫付きListingRepositoryモック
type CheckoutListingRepoMock struct{ mock.Mock }

func (m *CheckoutListingRepoMock) FindByID(ctx context.Context, id string) (model.Listing, error) {
	panic("not used in CheckoutUsecase tests")
}

func (m *CheckoutListingRepoMock) Search(ctx context.Context, q string) ([]model.Listing, error) {
	panic("not used in CheckoutUsecase tests")
}

func (m *CheckoutListingRepoMock) Trending(ctx context.Context, limit int) ([]model.Listing, error) {
	panic("not used in CheckoutUsecase tests")
}

func (m *CheckoutListingRepoMock) ListBySellerID(ctx context.Context, sellerID string) ([]model.Listing, error) {
	panic("not used in CheckoutUsecase tests")
}

func (m *CheckoutListingRepoMock) IncrementSeenCount(ctx context.Context, id string) error {
	panic("not used in CheckoutUsecase tests")
}

func (m *CheckoutListingRepoMock) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func newCheckoutUC(tx *TxManagerMock, expeditions *MockExpeditionRepository, purchases *MockPurchaseRepository) *CheckoutUsecase {
	return NewCheckoutUsecase(
		tx,
		expeditions,
		purchases,
		&fixedIDGen{id: "purchase-1"},
		&fixedClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)},
	)
}

func TestCheckoutUsecase_Checkout_MissingExpedition(t *testing.T) {
	u := newCheckoutUC(new(TxManagerMock), new(MockExpeditionRepository), new(MockPurchaseRepository))

	_, err := u.Checkout(context.Background(), "u1", CheckoutInput{})
	assertHTTPError(t, err, http.StatusBadRequest, "expedition id is required")
}

func TestCheckoutUsecase_Checkout_EmptyCart(t *testing.T) {
	carts := new(MockCartRepository)
	carts.On("ListByUserID", mock.Anything, "u1").Return([]model.CartItem{}, nil)

	tx := &TxManagerMock{Repos: &TxReposMock{carts: carts}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	u := newCheckoutUC(tx, new(MockExpeditionRepository), new(MockPurchaseRepository))
	_, err := u.Checkout(context.Background(), "u1", CheckoutInput{ExpeditionID: "e1"})

	assertHTTPError(t, err, http.StatusBadRequest, "cart is empty")
}

// 在庫が足りなければ400。履歴は作られずカートも消えない
func TestCheckoutUsecase_Checkout_OutOfStock(t *testing.T) {
	carts := new(MockCartRepository)
	listings := new(CheckoutListingRepoMock)
	purchases := new(MockPurchaseRepository)

	carts.On("ListByUserID", mock.Anything, "u1").Return([]model.CartItem{
		{ID: "c1", UserID: "u1", ListingID: "l1", Quantity: 5, TotalPrice: 250000},
	}, nil)
	listings.On("DecreaseStockIfEnough", mock.Anything, "l1", int64(5)).Return(false, nil)

	tx := &TxManagerMock{Repos: &TxReposMock{carts: carts, listings: listings, purchases: purchases}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	u := newCheckoutUC(tx, new(MockExpeditionRepository), purchases)
	_, err := u.Checkout(context.Background(), "u1", CheckoutInput{ExpeditionID: "e1"})

	assertHTTPError(t, err, http.StatusBadRequest, "stock exceeded")
	purchases.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_Checkout_Success(t *testing.T) {
	carts := new(MockCartRepository)
	listings := new(CheckoutListingRepoMock)
	purchases := new(MockPurchaseRepository)

	carts.On("ListByUserID", mock.Anything, "u1").Return([]model.CartItem{
		{ID: "c1", UserID: "u1", ListingID: "l1", Quantity: 2, TotalPrice: 100000,
			Listing: &model.Listing{ID: "l1", Name: "Charizard Base Set Holo"}},
		{ID: "c2", UserID: "u1", ListingID: "l2", Quantity: 1, TotalPrice: 60000},
	}, nil)
	listings.On("DecreaseStockIfEnough", mock.Anything, "l1", int64(2)).Return(true, nil)
	listings.On("DecreaseStockIfEnough", mock.Anything, "l2", int64(1)).Return(true, nil)

	purchases.On("CreateBulk", mock.Anything, mock.MatchedBy(func(ps []model.PurchaseHistory) bool {
		return len(ps) == 2 &&
			ps[0].Status == model.PurchaseStatusPending &&
			ps[0].ExpeditionID == "e1" &&
			ps[0].TotalPrice == 100000
	})).Return(nil)
	carts.On("Clear", mock.Anything, "u1").Return(nil)

	tx := &TxManagerMock{Repos: &TxReposMock{carts: carts, listings: listings, purchases: purchases}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	u := newCheckoutUC(tx, new(MockExpeditionRepository), purchases)
	out, err := u.Checkout(context.Background(), "u1", CheckoutInput{ExpeditionID: "e1"})

	assert.NoError(t, err)
	assert.Len(t, out.Purchases, 2)
	assert.Equal(t, int64(160000), out.TotalPrice)
	assert.Equal(t, "Charizard Base Set Holo", out.Purchases[0].ListingName)

	carts.AssertExpectations(t)
	listings.AssertExpectations(t)
	purchases.AssertExpectations(t)
}

func TestCheckoutUsecase_ListExpeditions(t *testing.T) {
	expeditions := new(MockExpeditionRepository)
	expeditions.On("List", mock.Anything).Return([]model.Expedition{
		{ID: "e1", Name: "JNE Express", PricePerKg: 12000},
	}, nil)

	u := newCheckoutUC(new(TxManagerMock), expeditions, new(MockPurchaseRepository))
	out, err := u.ListExpeditions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 1)
}
