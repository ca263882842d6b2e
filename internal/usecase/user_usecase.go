package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserUsecase struct {
	users       repository.UserRepository
	listingRepo repo.ListingRepository
	ratingRepo  repo.RatingRepository
}

func NewUserUsecase(
	users repository.UserRepository,
	listingRepo repo.ListingRepository,
	ratingRepo repo.RatingRepository,
) *UserUsecase {
	return &UserUsecase{
		users:       users,
		listingRepo: listingRepo,
		ratingRepo:  ratingRepo,
	}
}

// 公開プロフィール（パスワード等は含めない）
type PublicProfileOutput struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	ProfilePicture string          `json:"profile_picture"`
	CreatedAt      time.Time       `json:"created_at"`
	Location       string          `json:"location,omitempty"`
	Province       string          `json:"province,omitempty"`
	AverageRating  float64         `json:"average_rating"`
	ReviewCount    int             `json:"review_count"`
	Listings       []ListingOutput `json:"listings"`
}

// GetPublicProfile はIDまたはユーザー名でプロフィールを返す。
func (u *UserUsecase) GetPublicProfile(ctx context.Context, idOrUsername string, byUsername bool) (PublicProfileOutput, error) {
	if idOrUsername == "" {
		return PublicProfileOutput{}, NewHTTPError(http.StatusBadRequest, "user id or username is required")
	}

	var user *model.User
	var err error
	if byUsername {
		user, err = u.users.FindByUsername(ctx, idOrUsername)
	} else {
		user, err = u.users.FindByID(ctx, idOrUsername)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return PublicProfileOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		logrus.WithError(err).Error("user: lookup failed")
		return PublicProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	listings, err := u.listingRepo.ListBySellerID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("user: listings lookup failed")
		return PublicProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// 受けた評価から平均を出す
	received, err := u.ratingRepo.ListInvolving(ctx, user.ID, repo.RatingRoleSeller, repo.RatingSortNewest)
	if err != nil {
		logrus.WithError(err).Error("user: ratings lookup failed")
		return PublicProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := PublicProfileOutput{
		ID:             user.ID,
		Username:       user.Username,
		FullName:       user.FullName,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		AverageRating:  roundToOneDecimal(averageScore(received)),
		ReviewCount:    len(received),
		Listings:       toListingOutputs(listings),
	}
	if user.ShipDetails != nil {
		out.Location = user.ShipDetails.City
		out.Province = user.ShipDetails.Province
	}

	return out, nil
}

// 評価件数・平均（全体／購入者として／出品者として）
type UserStatsOutput struct {
	Total         int    `json:"total"`
	AverageRating string `json:"average_rating"`
	AsBuyer       int    `json:"as_buyer"`
	AsBuyerAvg    string `json:"as_buyer_avg"`
	AsSeller      int    `json:"as_seller"`
	AsSellerAvg   string `json:"as_seller_avg"`
}

// GetStats はユーザーの評価集計を返す。平均は小数1桁の文字列。
func (u *UserUsecase) GetStats(ctx context.Context, userID string) (UserStatsOutput, error) {
	if userID == "" {
		return UserStatsOutput{}, NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	ratings, err := u.ratingRepo.ListInvolving(ctx, userID, repo.RatingRoleAll, repo.RatingSortNewest)
	if err != nil {
		logrus.WithError(err).Error("user: stats lookup failed")
		return UserStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var buyer, seller []model.Rating
	for _, r := range ratings {
		if r.UserID == userID {
			buyer = append(buyer, r)
		}
		if r.SellerID == userID {
			seller = append(seller, r)
		}
	}

	return UserStatsOutput{
		Total:         len(ratings),
		AverageRating: formatOneDecimal(averageScore(ratings)),
		AsBuyer:       len(buyer),
		AsBuyerAvg:    formatOneDecimal(averageScore(buyer)),
		AsSeller:      len(seller),
		AsSellerAvg:   formatOneDecimal(averageScore(seller)),
	}, nil
}

type ReviewPartyOutput struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

type ReviewOutput struct {
	ID        string             `json:"id"`
	Score     int                `json:"score"`
	Review    string             `json:"review"`
	CreatedAt time.Time          `json:"created_at"`
	User      *ReviewPartyOutput `json:"user,omitempty"`
	Seller    *ReviewPartyOutput `json:"seller,omitempty"`
	Listing   string             `json:"listing_name,omitempty"`
}

// ListReviews はユーザーが関わるレビューを返す。
// typeはall/buyer/seller、sortByはnewest/oldest/rating-high/rating-low。
func (u *UserUsecase) ListReviews(ctx context.Context, userID string, typ string, sortBy string) ([]ReviewOutput, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	role := repo.RatingRoleAll
	switch typ {
	case "buyer":
		role = repo.RatingRoleBuyer
	case "seller":
		role = repo.RatingRoleSeller
	}

	sort := repo.RatingSortNewest
	switch sortBy {
	case "oldest":
		sort = repo.RatingSortOldest
	case "rating-high":
		sort = repo.RatingSortRatingHigh
	case "rating-low":
		sort = repo.RatingSortRatingLow
	}

	ratings, err := u.ratingRepo.ListInvolving(ctx, userID, role, sort)
	if err != nil {
		logrus.WithError(err).Error("user: reviews lookup failed")
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]ReviewOutput, 0, len(ratings))
	for _, r := range ratings {
		ro := ReviewOutput{
			ID:        r.ID,
			Score:     r.Score,
			Review:    r.Review,
			CreatedAt: r.CreatedAt,
		}
		if r.User != nil {
			ro.User = &ReviewPartyOutput{Username: r.User.Username, ProfilePicture: r.User.ProfilePicture}
		}
		if r.Seller != nil {
			ro.Seller = &ReviewPartyOutput{Username: r.Seller.Username, ProfilePicture: r.Seller.ProfilePicture}
		}
		if r.Listing != nil {
			ro.Listing = r.Listing.Name
		}
		out = append(out, ro)
	}
	return out, nil
}

func averageScore(ratings []model.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(ratings))
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
