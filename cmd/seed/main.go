package main

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ローカル開発用のデモデータ投入。
// 既にユーザーがいるDBには何もしない。
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

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

	var count int64
	if err := gormDB.Model(&model.User{}).Count(&count).Error; err != nil {
		logrus.WithError(err).Fatal("user count failed")
	}
	if count > 0 {
		logrus.Info("database already seeded, skipping")
		return
	}

	ctx := context.Background()
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)

	now := time.Now()

	//デモユーザー
	ash := demoUser("ash_ketchum", "ash@example.com", "Ash Ketchum")
	misty := demoUser("misty_waterflower", "misty@example.com", "Misty Waterflower")
	brock := demoUser("brock_harrison", "brock@example.com", "Brock Harrison")

	for _, u := range []*model.User{ash, misty, brock} {
		if err := userRepo.Create(ctx, u); err != nil {
			logrus.WithError(err).WithField("username", u.Username).Fatal("user seed failed")
		}
	}

	//デモ出品（ルピア建て）
	listings := []model.Listing{
		demoListing(ash.ID, "Charizard Base Set Holo", "PSA 8. Light whitening on the back edges.", 2500000, 1, 320),
		demoListing(ash.ID, "Pikachu Illustrator Promo Reprint", "Celebrations reprint, pack fresh.", 150000, 4, 210),
		demoListing(misty.ID, "Gyarados EX Full Art", "Near mint, sleeved since pull.", 450000, 2, 95),
		demoListing(misty.ID, "Starmie Jungle 1st Edition", "Played condition, see photos.", 60000, 3, 40),
		demoListing(brock.ID, "Onix Base Set Shadowless", "Ungraded, crisp corners.", 85000, 5, 58),
		demoListing(brock.ID, "Geodude Common Bundle x10", "Ten commons from Fossil set.", 25000, 10, 12),
	}
	if err := gormDB.Create(&listings).Error; err != nil {
		logrus.WithError(err).Fatal("listing seed failed")
	}

	//デモ評価
	ratings := []model.Rating{
		{UserID: misty.ID, SellerID: ash.ID, ListingID: listings[0].ID, Score: 5, Review: "Card arrived double-sleeved and well packed."},
		{UserID: brock.ID, SellerID: ash.ID, ListingID: listings[1].ID, Score: 4, Review: "Fast shipping, minor box dent."},
		{UserID: ash.ID, SellerID: misty.ID, ListingID: listings[2].ID, Score: 5, Review: ""},
	}
	for _, r := range ratings {
		r.ID = uuid.NewString()
		r.CreatedAt = now
		if _, err := ratingRepo.Create(ctx, r); err != nil {
			logrus.WithError(err).Fatal("rating seed failed")
		}
	}

	//配送業者
	expeditions := []model.Expedition{
		{ID: uuid.NewString(), Name: "JNE Express", PricePerKg: 12000},
		{ID: uuid.NewString(), Name: "SiCepat", PricePerKg: 10000},
		{ID: uuid.NewString(), Name: "AnterAja", PricePerKg: 9000},
	}
	if err := gormDB.Create(&expeditions).Error; err != nil {
		logrus.WithError(err).Fatal("expedition seed failed")
	}

	logrus.Info("seed completed")
}

func demoUser(username string, email string, fullName string) *model.User {
	// デモ共通パスワード
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("password hash failed")
	}

	return &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     fullName,
	}
}

func demoListing(sellerID string, name string, description string, price int64, stock int64, seen int64) model.Listing {
	return model.Listing{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		SeenCount:   seen,
	}
}
