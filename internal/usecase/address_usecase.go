package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

type AddressUsecase struct {
	users     repository.UserRepository
	addresses repo.AddressRepository
	idGen     IDGenerator
	clock     Clock
}

func NewAddressUsecase(
	users repository.UserRepository,
	addresses repo.AddressRepository,
	idGen IDGenerator,
	clock Clock,
) *AddressUsecase {
	return &AddressUsecase{
		users:     users,
		addresses: addresses,
		idGen:     idGen,
		clock:     clock,
	}
}

type AddressOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Receiver   string `json:"receiver"`
	Province   string `json:"province"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

// 住所未登録はaddress=nullで返す（404ではない）
type ShipAddressOutput struct {
	Address *AddressOutput `json:"address"`
}

type UpsertAddressInput struct {
	Name       string `json:"name"`
	Receiver   string `json:"receiver"`
	Province   string `json:"province"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

// GetShipAddress は配送元住所を返す。
func (u *AddressUsecase) GetShipAddress(ctx context.Context, userID string) (ShipAddressOutput, error) {
	if userID == "" {
		return ShipAddressOutput{}, NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ShipAddressOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		logrus.WithError(err).Error("address: user lookup failed")
		return ShipAddressOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if user.ShipDetails == nil {
		return ShipAddressOutput{Address: nil}, nil
	}

	a := toAddressOutput(*user.ShipDetails)
	return ShipAddressOutput{Address: &a}, nil
}

// UpsertShipAddress は配送元住所を作成または更新し、ユーザーに紐付ける。
func (u *AddressUsecase) UpsertShipAddress(ctx context.Context, userID string, in UpsertAddressInput) (AddressOutput, error) {
	if userID == "" {
		return AddressOutput{}, NewHTTPError(http.StatusBadRequest, "user id is required")
	}
	if in.Name == "" || in.Receiver == "" || in.Province == "" || in.City == "" ||
		in.PostalCode == "" || in.Address == "" {
		return AddressOutput{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return AddressOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		logrus.WithError(err).Error("address: user lookup failed")
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()

	// 既存があれば更新、無ければ作成してユーザーへ紐付け
	if user.AddressDetailsID != nil {
		a := model.AddressDetails{
			ID:         *user.AddressDetailsID,
			Name:       in.Name,
			Receiver:   in.Receiver,
			Province:   in.Province,
			City:       in.City,
			PostalCode: in.PostalCode,
			Address:    in.Address,
			Phone:      in.Phone,
			UpdatedAt:  now,
		}
		if err := u.addresses.Update(ctx, a); err != nil {
			logrus.WithError(err).Error("address: update failed")
			return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		return toAddressOutput(a), nil
	}

	created, err := u.addresses.Create(ctx, model.AddressDetails{
		ID:         u.idGen.NewID(),
		Name:       in.Name,
		Receiver:   in.Receiver,
		Province:   in.Province,
		City:       in.City,
		PostalCode: in.PostalCode,
		Address:    in.Address,
		Phone:      in.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		logrus.WithError(err).Error("address: create failed")
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.AddressDetailsID = &created.ID
	if err := u.users.Update(ctx, user); err != nil {
		logrus.WithError(err).Error("address: user link failed")
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return toAddressOutput(created), nil
}

func toAddressOutput(a model.AddressDetails) AddressOutput {
	return AddressOutput{
		ID:         a.ID,
		Name:       a.Name,
		Receiver:   a.Receiver,
		Province:   a.Province,
		City:       a.City,
		PostalCode: a.PostalCode,
		Address:    a.Address,
		Phone:      a.Phone,
	}
}
