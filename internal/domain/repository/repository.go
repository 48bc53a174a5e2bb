package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/vietqr-hub/internal/domain/entity"
)

var ErrNotFound = errors.New("not found")

type BankAccountRepository interface {
	// FindByIDForShare locks the row against deletion until the unit of work ends.
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error)
}

type IssuanceRepository interface {
	Create(ctx context.Context, issuance *entity.Issuance) error
}
