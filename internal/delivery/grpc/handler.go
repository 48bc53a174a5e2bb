package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Xausdorf/vietqr-hub/api/qrpb"
	"github.com/Xausdorf/vietqr-hub/internal/domain/repository"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/issueqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
)

type Handler struct {
	issueUC *issueqr.UseCase
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandler(issueUC *issueqr.UseCase, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{issueUC: issueUC, metrics: m, logger: logger}
}

func (h *Handler) GeneratePayload(
	ctx context.Context,
	req *qrpb.GeneratePayloadRequest,
) (*qrpb.GeneratePayloadResponse, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid account_id")
	}

	resp, err := h.issueUC.Execute(ctx, issueqr.Request{
		AccountID: accountID,
		Amount:    req.Amount,
		Purpose:   req.Purpose,
	})
	if err != nil {
		return nil, h.mapError(accountID, err)
	}

	h.metrics.PayloadsIssued.WithLabelValues(string(resp.Method)).Inc()
	h.logger.Info("payload issued",
		"account_id", accountID,
		"issuance_id", resp.IssuanceID,
		"method", resp.Method,
	)

	return &qrpb.GeneratePayloadResponse{
		IssuanceID:       resp.IssuanceID.String(),
		Payload:          resp.Payload,
		InitiationMethod: string(resp.Method),
	}, nil
}

func (h *Handler) mapError(accountID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, "bank account not found")
	case vietqr.IsInvalidInput(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.logger.Error("payload issue failed", "account_id", accountID, "error", err)
		return status.Error(codes.Internal, "payload generation failed")
	}
}
