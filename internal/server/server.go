package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func New(
	cfg config.Config,
	authH *handler.AuthHandler,
	listingH *handler.ListingHandler,
	userH *handler.UserHandler,
	cartH *handler.CartHandler,
	profileH *handler.ProfileHandler,
	checkoutH *handler.CheckoutHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	// cookie認証なのでcredentials必須
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowCredentials: true,
	}))

	RegisterRoutes(e, cfg, authH, listingH, userH, cartH, profileH, checkoutH)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
