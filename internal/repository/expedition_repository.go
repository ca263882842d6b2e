package repository

import (
	"context"

	"app/internal/domain/model"
)

type ExpeditionRepository interface {
	List(ctx context.Context) ([]model.Expedition, error)
}
