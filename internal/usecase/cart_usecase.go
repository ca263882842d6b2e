package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

// CartUsecase は /cart の業務ロジックです。
// 合計金額は必ずサーバー側で出品の現在価格から計算する。
// クライアントが送ってきた合計は一切信用しない。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	listingRepo repo.ListingRepository
	idGen       IDGenerator
	clock       Clock
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	listingRepo repo.ListingRepository,
	idGen IDGenerator,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		listingRepo: listingRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

type AddCartItemInput struct {
	UserID    string
	ListingID string
	Quantity  int64
}

type CartSellerOutput struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

type CartListingOutput struct {
	Name    string           `json:"name"`
	PictURL string           `json:"pict_url"`
	Price   int64            `json:"price"`
	Stock   int64            `json:"stock"`
	Seller  CartSellerOutput `json:"seller"`
}

type CartItemOutput struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	ListingID  string             `json:"listing_id"`
	Quantity   int64              `json:"quantity"`
	TotalPrice int64              `json:"total_price"`
	CreatedAt  string             `json:"created_at"`
	Listing    *CartListingOutput `json:"listing,omitempty"`
}

// AddItem は出品をカートに入れる。
// 同じ (user, listing) の明細が既にあれば数量を「上書き」する（加算ではない）。
// 2回連続で数量1を追加しても明細は数量1のまま。
func (u *CartUsecase) AddItem(ctx context.Context, in AddCartItemInput) (CartItemOutput, error) {
	if in.UserID == "" || in.ListingID == "" || in.Quantity == 0 {
		return CartItemOutput{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if in.Quantity < 1 {
		return CartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 価格の基準になる出品を取得
	listing, err := u.listingRepo.FindByID(ctx, in.ListingID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "listing not found")
	}
	if err != nil {
		logrus.WithError(err).Error("cart: listing lookup failed")
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	total := listing.Price * in.Quantity

	// 既存明細があるか
	existing, err := u.cartRepo.FindByUserAndListing(ctx, in.UserID, in.ListingID)
	if err == nil {
		// 数量と合計を上書き
		if err := u.cartRepo.UpdateQuantityAndTotal(ctx, existing.ID, in.Quantity, total); err != nil {
			logrus.WithError(err).Error("cart: update failed")
			return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		existing.Quantity = in.Quantity
		existing.TotalPrice = total
		return toCartItemOutput(existing, nil), nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		logrus.WithError(err).Error("cart: lookup failed")
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// 無ければ新規作成
	now := u.clock.Now()
	created, err := u.cartRepo.Create(ctx, model.CartItem{
		ID:         u.idGen.NewID(),
		UserID:     in.UserID,
		ListingID:  in.ListingID,
		Quantity:   in.Quantity,
		TotalPrice: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		logrus.WithError(err).Error("cart: create failed")
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return toCartItemOutput(created, nil), nil
}

// UpdateQuantity は明細IDを指定して数量を変更する。
// 合計は出品の「現在の」価格で再計算する。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) (CartItemOutput, error) {
	if cartItemID == "" || qty < 1 {
		return CartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart item id or quantity")
	}

	item, err := u.cartRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		logrus.WithError(err).Error("cart: lookup failed")
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// 出品の現在価格
	listing := item.Listing
	if listing == nil {
		l, err := u.listingRepo.FindByID(ctx, item.ListingID)
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			logrus.WithError(err).Error("cart: listing lookup failed")
			return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		listing = &l
	}

	total := listing.Price * qty
	if err := u.cartRepo.UpdateQuantityAndTotal(ctx, cartItemID, qty, total); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		logrus.WithError(err).Error("cart: update failed")
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	item.Quantity = qty
	item.TotalPrice = total
	return toCartItemOutput(item, listing), nil
}

// ListByUser はカートの中身を出品・出品者付きで返す（新しい順）。
func (u *CartUsecase) ListByUser(ctx context.Context, userID string) ([]CartItemOutput, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("cart: list failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]CartItemOutput, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItemOutput(it, it.Listing))
	}
	return out, nil
}

// RemoveItem は明細を削除する（本人の明細のみ）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, cartItemID string) error {
	if userID == "" || cartItemID == "" {
		return NewHTTPError(http.StatusBadRequest, "cart item id is required")
	}

	owned, err := u.cartRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		logrus.WithError(err).Error("cart: ownership check failed")
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "cart item not found")
	}

	if err := u.cartRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		logrus.WithError(err).Error("cart: delete failed")
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return nil
}

func toCartItemOutput(item model.CartItem, listing *model.Listing) CartItemOutput {
	out := CartItemOutput{
		ID:         item.ID,
		UserID:     item.UserID,
		ListingID:  item.ListingID,
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice,
		CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
	}

	if listing != nil {
		lo := &CartListingOutput{
			Name:    listing.Name,
			PictURL: listing.PictURL,
			Price:   listing.Price,
			Stock:   listing.Stock,
		}
		if listing.Seller != nil {
			lo.Seller = CartSellerOutput{
				ID:             listing.Seller.ID,
				Username:       listing.Seller.Username,
				ProfilePicture: listing.Seller.ProfilePicture,
			}
		}
		out.Listing = lo
	}

	return out
}
