package renderqr

import (
	"context"

	"github.com/google/uuid"

	"github.com/Xausdorf/vietqr-hub/internal/domain/payload"
	"github.com/Xausdorf/vietqr-hub/internal/domain/qrcode"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
)

//go:generate mockgen -source=../../domain/payload/payload.go -destination=mocks/payload_mock.go -package=mocks
//go:generate mockgen -source=../../domain/qrcode/qrcode.go -destination=mocks/qrcode_mock.go -package=mocks

type Request struct {
	AccountID string
	Amount    int64
	Purpose   string
}

// InlineRequest carries the account itself instead of a stored id.
type InlineRequest struct {
	Account vietqr.BankAccountInfo
	Amount  int64
	Purpose string
}

type Result struct {
	IssuanceID       string
	Payload          string
	InitiationMethod string
}

type UseCase struct {
	client   payload.Client
	renderer qrcode.Renderer
	encoder  *vietqr.Encoder
}

func NewUseCase(client payload.Client, renderer qrcode.Renderer, encoder *vietqr.Encoder) *UseCase {
	return &UseCase{
		client:   client,
		renderer: renderer,
		encoder:  encoder,
	}
}

// Payload fetches the payload of a stored account from the core service.
func (uc *UseCase) Payload(ctx context.Context, req Request) (*Result, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, err
	}

	resp, err := uc.client.GeneratePayload(ctx, payload.Request{
		AccountID: accountID,
		Amount:    req.Amount,
		Purpose:   req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		IssuanceID:       resp.IssuanceID,
		Payload:          resp.Payload,
		InitiationMethod: resp.InitiationMethod,
	}, nil
}

func (uc *UseCase) Image(ctx context.Context, req Request) ([]byte, error) {
	res, err := uc.Payload(ctx, req)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(res.Payload)
}

// Inline encodes locally; nothing is recorded.
func (uc *UseCase) Inline(req InlineRequest) (*Result, error) {
	res, err := uc.encoder.Encode(vietqr.Request{
		Account: req.Account,
		Amount:  req.Amount,
		Purpose: req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	method := "dynamic"
	if res.Method == vietqr.Static {
		method = "static"
	}
	return &Result{Payload: res.Payload, InitiationMethod: method}, nil
}

func (uc *UseCase) InlineImage(req InlineRequest) ([]byte, error) {
	res, err := uc.Inline(req)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(res.Payload)
}
