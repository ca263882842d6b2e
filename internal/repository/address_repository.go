package repository

import (
	"context"

	"app/internal/domain/model"
)

type AddressRepository interface {
	FindByID(ctx context.Context, id string) (model.AddressDetails, error)
	Create(ctx context.Context, a model.AddressDetails) (model.AddressDetails, error)
	Update(ctx context.Context, a model.AddressDetails) error
}
