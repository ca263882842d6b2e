package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	listingH *handler.ListingHandler,
	userH *handler.UserHandler,
	cartH *handler.CartHandler,
	profileH *handler.ProfileHandler,
	checkoutH *handler.CheckoutHandler,
) {
	authH.RegisterRoutes(e)
	listingH.RegisterRoutes(e)
	userH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	profileH.RegisterRoutes(e, cfg)
	checkoutH.RegisterRoutes(e, cfg)
}
