package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// セッションcookieの有効期限
const sessionTTL = 30 * 24 * time.Hour

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtSessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (i *jwtSessionIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはローカル用。無ければ環境変数だけで動く
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	if cfg.GoEnv == "prod" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.AddressDetails{},
		&model.User{},
		&model.Listing{},
		&model.CartItem{},
		&model.Rating{},
		&model.Expedition{},
		&model.PurchaseHistory{},
	); err != nil {
		logrus.WithError(err).Fatal("migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	listingRepo := infraRepo.NewListingGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	expeditionRepo := infraRepo.NewExpeditionGormRepository(gormDB)
	purchaseRepo := infraRepo.NewPurchaseGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//セッションcookie用のJWT issuer
	issuer := &jwtSessionIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    sessionTTL,
	}

	authValidator := validator.NewAuthValidator(userRepo)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, authValidator, hasher, verifier, issuer, idGen, clock)
	listingUC := usecase.NewListingUsecase(listingRepo)
	userUC := usecase.NewUserUsecase(userRepo, listingRepo, ratingRepo)
	ratingUC := usecase.NewRatingUsecase(userRepo, ratingRepo, clock)
	cartUC := usecase.NewCartUsecase(cartRepo, listingRepo, idGen, clock)
	addressUC := usecase.NewAddressUsecase(userRepo, addressRepo, idGen, clock)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, expeditionRepo, purchaseRepo, idGen, clock)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg)
	listingH := handler.NewListingHandler(listingUC)
	userH := handler.NewUserHandler(userUC, ratingUC)
	cartH := handler.NewCartHandler(cartUC)
	profileH := handler.NewProfileHandler(addressUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)

	//Server起動
	e := server.New(cfg, authH, listingH, userH, cartH, profileH, checkoutH)

	addr := ":" + cfg.Port
	logrus.WithField("addr", addr).Info("server starting")
	if err := server.Start(e, addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
