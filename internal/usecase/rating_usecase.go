package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

const recentReviewLimit = 3

type RatingUsecase struct {
	users      repository.UserRepository
	ratingRepo repo.RatingRepository
	clock      Clock
}

func NewRatingUsecase(
	users repository.UserRepository,
	ratingRepo repo.RatingRepository,
	clock Clock,
) *RatingUsecase {
	return &RatingUsecase{
		users:      users,
		ratingRepo: ratingRepo,
		clock:      clock,
	}
}

type SellerSummaryOutput struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	ProfilePicture string  `json:"profile_picture"`
	OverallRating  float64 `json:"overall_rating"`
	TotalReviews   int     `json:"total_reviews"`
}

type RecentReviewOutput struct {
	ID             string `json:"id"`
	ReviewerName   string `json:"reviewer_name"`
	ReviewerAvatar string `json:"reviewer_avatar"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	TimeAgo        string `json:"time_ago"`
	ListingName    string `json:"listing_name"`
}

type SellerRatingsOutput struct {
	Seller        SellerSummaryOutput  `json:"seller"`
	RecentReviews []RecentReviewOutput `json:"recent_reviews"`
}

// GetSellerRatings は出品者の総合評価と直近のレビュー（本文ありのみ、最大3件）を返す。
func (u *RatingUsecase) GetSellerRatings(ctx context.Context, sellerID string) (SellerRatingsOutput, error) {
	if sellerID == "" {
		return SellerRatingsOutput{}, NewHTTPError(http.StatusBadRequest, "seller id is required")
	}

	seller, err := u.users.FindByID(ctx, sellerID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return SellerRatingsOutput{}, NewHTTPError(http.StatusNotFound, "seller not found")
	}
	if err != nil {
		logrus.WithError(err).Error("rating: seller lookup failed")
		return SellerRatingsOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	ratings, err := u.ratingRepo.ListBySellerID(ctx, sellerID)
	if err != nil {
		logrus.WithError(err).Error("rating: list failed")
		return SellerRatingsOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := SellerRatingsOutput{
		Seller: SellerSummaryOutput{
			ID:             seller.ID,
			Username:       seller.Username,
			ProfilePicture: seller.ProfilePicture,
			OverallRating:  roundToOneDecimal(averageScore(ratings)),
			TotalReviews:   len(ratings),
		},
		RecentReviews: []RecentReviewOutput{},
	}

	now := u.clock.Now()
	for _, r := range ratings {
		if strings.TrimSpace(r.Review) == "" {
			continue
		}
		if len(out.RecentReviews) == recentReviewLimit {
			break
		}

		rv := RecentReviewOutput{
			ID:          r.ID,
			Rating:      r.Score,
			Comment:     r.Review,
			TimeAgo:     formatTimeAgo(now, r.CreatedAt),
			ListingName: listingName(r.Listing),
		}
		if r.User != nil {
			rv.ReviewerName = r.User.Username
			rv.ReviewerAvatar = r.User.ProfilePicture
		}
		out.RecentReviews = append(out.RecentReviews, rv)
	}

	return out, nil
}

func listingName(l *model.Listing) string {
	if l == nil {
		return ""
	}
	return l.Name
}

// 「3 days ago」形式の相対表記
func formatTimeAgo(now time.Time, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff >= 365*24*time.Hour:
		return plural(int(diff/(365*24*time.Hour)), "year")
	case diff >= 30*24*time.Hour:
		return plural(int(diff/(30*24*time.Hour)), "month")
	case diff >= 7*24*time.Hour:
		return plural(int(diff/(7*24*time.Hour)), "week")
	case diff >= 24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	case diff >= time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff >= time.Minute:
		return plural(int(diff/time.Minute), "minute")
	default:
		return "just now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
