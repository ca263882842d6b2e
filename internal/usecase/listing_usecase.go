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

const trendingLimit = 4

type ListingUsecase struct {
	listingRepo repo.ListingRepository
}

func NewListingUsecase(listingRepo repo.ListingRepository) *ListingUsecase {
	return &ListingUsecase{listingRepo: listingRepo}
}

type ListingSellerOutput struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name,omitempty"`
	ProfilePicture string `json:"profile_picture"`
	City           string `json:"city,omitempty"`
}

type ListingOutput struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	PictURL     string               `json:"pict_url"`
	Price       int64                `json:"price"`
	Stock       int64                `json:"stock"`
	SeenCount   int64                `json:"seen_count"`
	CreatedAt   time.Time            `json:"created_at"`
	Seller      *ListingSellerOutput `json:"seller,omitempty"`
}

// GetDetail は出品詳細を返し、閲覧数を+1する。
func (u *ListingUsecase) GetDetail(ctx context.Context, id string) (ListingOutput, error) {
	if id == "" {
		return ListingOutput{}, NewHTTPError(http.StatusBadRequest, "listing id is required")
	}

	l, err := u.listingRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ListingOutput{}, NewHTTPError(http.StatusNotFound, "listing not found")
	}
	if err != nil {
		logrus.WithError(err).Error("listing: lookup failed")
		return ListingOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// 閲覧数の更新失敗で詳細表示は落とさない
	if err := u.listingRepo.IncrementSeenCount(ctx, id); err != nil {
		logrus.WithError(err).Warn("listing: seen count update failed")
	}

	return toListingOutput(l), nil
}

// Search は名前・説明の部分一致で検索する（新着順）。
func (u *ListingUsecase) Search(ctx context.Context, q string) ([]ListingOutput, error) {
	listings, err := u.listingRepo.Search(ctx, q)
	if err != nil {
		logrus.WithError(err).Error("listing: search failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return toListingOutputs(listings), nil
}

// Trending は閲覧数上位の出品を返す。
func (u *ListingUsecase) Trending(ctx context.Context) ([]ListingOutput, error) {
	listings, err := u.listingRepo.Trending(ctx, trendingLimit)
	if err != nil {
		logrus.WithError(err).Error("listing: trending failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return toListingOutputs(listings), nil
}

func toListingOutput(l model.Listing) ListingOutput {
	out := ListingOutput{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		PictURL:     l.PictURL,
		Price:       l.Price,
		Stock:       l.Stock,
		SeenCount:   l.SeenCount,
		CreatedAt:   l.CreatedAt,
	}

	if l.Seller != nil {
		s := &ListingSellerOutput{
			Username:       l.Seller.Username,
			FullName:       l.Seller.FullName,
			ProfilePicture: l.Seller.ProfilePicture,
		}
		if l.Seller.ShipDetails != nil {
			s.City = l.Seller.ShipDetails.City
		}
		out.Seller = s
	}

	return out
}

func toListingOutputs(listings []model.Listing) []ListingOutput {
	out := make([]ListingOutput, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingOutput(l))
	}
	return out
}
