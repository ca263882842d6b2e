package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	carts     repo.CartRepository
	listings  repo.ListingRepository
	purchases repo.PurchaseRepository
}

func (r *txReposGorm) Carts() repo.CartRepository         { return r.carts }
func (r *txReposGorm) Listings() repo.ListingRepository   { return r.listings }
func (r *txReposGorm) Purchases() repo.PurchaseRepository { return r.purchases }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(gdb *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: gdb}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			carts:     NewCartGormRepository(tx),
			listings:  NewListingGormRepository(tx),
			purchases: NewPurchaseGormRepository(tx),
		}
		return fn(r)
	})
}
