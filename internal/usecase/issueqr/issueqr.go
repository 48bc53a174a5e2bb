package issueqr

import (
	"context"

	"github.com/google/uuid"

	"github.com/Xausdorf/vietqr-hub/internal/domain/entity"
	"github.com/Xausdorf/vietqr-hub/internal/domain/repository"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
)

//go:generate mockgen -source=../../domain/repository/repository.go -destination=mocks/repository_mock.go -package=mocks
//go:generate mockgen -source=../../domain/repository/unit_of_work.go -destination=mocks/unit_of_work_mock.go -package=mocks

type Request struct {
	AccountID uuid.UUID
	Amount    int64
	Purpose   string
}

type Response struct {
	IssuanceID uuid.UUID
	Payload    string
	Method     entity.InitiationMethod
}

type UseCase struct {
	uow     repository.UnitOfWork
	encoder *vietqr.Encoder
}

func NewUseCase(uow repository.UnitOfWork, encoder *vietqr.Encoder) *UseCase {
	return &UseCase{uow: uow, encoder: encoder}
}

// Execute encodes the payload for a stored account and records the issuance.
// Nothing is written when encoding fails.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	tx, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	account, err := tx.Accounts().FindByIDForShare(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	res, err := uc.encoder.Encode(vietqr.Request{
		Account: vietqr.BankAccountInfo{
			AccountNumber:     account.AccountNumber(),
			AccountHolderName: account.AccountHolderName(),
			BankName:          account.BankName(),
			BankCode:          account.BankCode(),
		},
		Amount:  req.Amount,
		Purpose: req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	issuance := entity.NewIssuance(account.ID(), max(req.Amount, 0), res.Purpose, mapMethod(res.Method), res.Payload)
	if err := tx.Issuances().Create(ctx, issuance); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &Response{
		IssuanceID: issuance.ID(),
		Payload:    issuance.Payload(),
		Method:     issuance.Method(),
	}, nil
}

func mapMethod(m vietqr.InitiationMethod) entity.InitiationMethod {
	if m == vietqr.Static {
		return entity.MethodStatic
	}
	return entity.MethodDynamic
}
