package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

type CheckoutUsecase struct {
	tx          repo.TransactionManager
	expeditions repo.ExpeditionRepository
	purchases   repo.PurchaseRepository
	idGen       IDGenerator
	clock       Clock
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	expeditions repo.ExpeditionRepository,
	purchases repo.PurchaseRepository,
	idGen IDGenerator,
	clock Clock,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:          tx,
		expeditions: expeditions,
		purchases:   purchases,
		idGen:       idGen,
		clock:       clock,
	}
}

type CheckoutInput struct {
	ExpeditionID string
}

type PurchaseOutput struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	ListingName string    `json:"listing_name,omitempty"`
	Quantity    int64     `json:"quantity"`
	TotalPrice  int64     `json:"total_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CheckoutOutput struct {
	Purchases  []PurchaseOutput `json:"purchases"`
	TotalPrice int64            `json:"total_price"`
}

// Checkout はカートの中身を購入履歴へ確定する。
// 在庫の再チェックと減算・履歴作成・カートのクリアを1トランザクションで行う。
// 決済そのもの（QR表示と支払い確認）は画面側のモックで、ここでは扱わない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (CheckoutOutput, error) {
	if userID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ExpeditionID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "expedition id is required")
	}

	var out CheckoutOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Carts().ListByUserID(ctx, userID)
		if err != nil {
			logrus.WithError(err).Error("checkout: cart list failed")
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		now := u.clock.Now()
		purchases := make([]model.PurchaseHistory, 0, len(items))
		var total int64

		for _, it := range items {
			// 確定時に在庫を再チェックして減らす
			ok, err := r.Listings().DecreaseStockIfEnough(ctx, it.ListingID, it.Quantity)
			if err != nil {
				logrus.WithError(err).Error("checkout: stock update failed")
				return NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "stock exceeded")
			}

			purchases = append(purchases, model.PurchaseHistory{
				ID:           u.idGen.NewID(),
				UserID:       userID,
				ListingID:    it.ListingID,
				ExpeditionID: in.ExpeditionID,
				Quantity:     it.Quantity,
				TotalPrice:   it.TotalPrice,
				Status:       model.PurchaseStatusPending,
				CreatedAt:    now,
			})
			total += it.TotalPrice
		}

		if err := r.Purchases().CreateBulk(ctx, purchases); err != nil {
			logrus.WithError(err).Error("checkout: purchase create failed")
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		// 再購入防止のためカートを空にする
		if err := r.Carts().Clear(ctx, userID); err != nil {
			logrus.WithError(err).Error("checkout: cart clear failed")
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		outs := make([]PurchaseOutput, 0, len(purchases))
		for i, p := range purchases {
			o := toPurchaseOutput(p)
			if items[i].Listing != nil {
				o.ListingName = items[i].Listing.Name
			}
			outs = append(outs, o)
		}
		out = CheckoutOutput{Purchases: outs, TotalPrice: total}
		return nil
	})

	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CheckoutOutput{}, err
		}
		logrus.WithError(err).Error("checkout: transaction failed")
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return out, nil
}

// ListExpeditions は配送業者の一覧を返す。
func (u *CheckoutUsecase) ListExpeditions(ctx context.Context) ([]model.Expedition, error) {
	expeditions, err := u.expeditions.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("checkout: expedition list failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return expeditions, nil
}

// ListPurchases は購入履歴を返す（新しい順）。
func (u *CheckoutUsecase) ListPurchases(ctx context.Context, userID string) ([]PurchaseOutput, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	purchases, err := u.purchases.ListByUserID(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("checkout: purchase list failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]PurchaseOutput, 0, len(purchases))
	for _, p := range purchases {
		o := toPurchaseOutput(p)
		if p.Listing != nil {
			o.ListingName = p.Listing.Name
		}
		out = append(out, o)
	}
	return out, nil
}

func toPurchaseOutput(p model.PurchaseHistory) PurchaseOutput {
	return PurchaseOutput{
		ID:         p.ID,
		ListingID:  p.ListingID,
		Quantity:   p.Quantity,
		TotalPrice: p.TotalPrice,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
	}
}
