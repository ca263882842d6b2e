package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ユーザーの公開プロフィールと評価の参照API
type UserHandler struct {
	uc       *usecase.UserUsecase
	ratingUC *usecase.RatingUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase, ratingUC *usecase.RatingUsecase) *UserHandler {
	return &UserHandler{uc: uc, ratingUC: ratingUC}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/users/:id", h.profile)
	e.GET("/users/:id/stats", h.stats)
	e.GET("/users/:id/reviews", h.reviews)
	e.GET("/sellers/:id/ratings", h.sellerRatings)
}

func (h *UserHandler) profile(c echo.Context) error {
	// ?username=true ならユーザー名で引く
	byUsername := c.QueryParam("username") == "true"

	out, err := h.uc.GetPublicProfile(c.Request().Context(), c.Param("id"), byUsername)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) stats(c echo.Context) error {
	out, err := h.uc.GetStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) reviews(c echo.Context) error {
	out, err := h.uc.ListReviews(
		c.Request().Context(),
		c.Param("id"),
		c.QueryParam("type"),
		c.QueryParam("sortBy"),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) sellerRatings(c echo.Context) error {
	out, err := h.ratingUC.GetSellerRatings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
