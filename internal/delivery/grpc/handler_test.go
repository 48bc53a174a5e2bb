package grpc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Xausdorf/vietqr-hub/api/qrpb"
	grpchandler "github.com/Xausdorf/vietqr-hub/internal/delivery/grpc"
	"github.com/Xausdorf/vietqr-hub/internal/domain/entity"
	"github.com/Xausdorf/vietqr-hub/internal/domain/repository"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/issueqr"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/issueqr/mocks"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
)

var _ qrpb.QRServiceServer = (*grpchandler.Handler)(nil)

type fixture struct {
	handler  *grpchandler.Handler
	metrics  *metrics.Metrics
	tx       *mocks.MockUnitOfWork
	accounts *mocks.MockBankAccountRepository
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	uow := mocks.NewMockUnitOfWork(ctrl)
	tx := mocks.NewMockUnitOfWork(ctrl)
	accounts := mocks.NewMockBankAccountRepository(ctrl)

	uow.EXPECT().Begin(gomock.Any()).Return(tx, nil).AnyTimes()
	tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	tx.EXPECT().Accounts().Return(accounts).AnyTimes()

	m, err := metrics.New("core", prometheus.NewRegistry())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := issueqr.NewUseCase(uow, vietqr.NewEncoder(nil))
	return &fixture{
		handler:  grpchandler.NewHandler(uc, m, logger),
		metrics:  m,
		tx:       tx,
		accounts: accounts,
	}
}

func TestHandler_GeneratePayload(t *testing.T) {
	f := newFixture(t)
	issuances := mocks.NewMockIssuanceRepository(gomock.NewController(t))

	accountID := uuid.New()
	f.accounts.EXPECT().FindByIDForShare(gomock.Any(), accountID).
		Return(entity.ReconstructBankAccount(accountID, "0099999999", "Test Account", "TPBank", ""), nil)
	f.tx.EXPECT().Issuances().Return(issuances)
	f.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	issuances.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := f.handler.GeneratePayload(context.Background(), &qrpb.GeneratePayloadRequest{
		AccountID: accountID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, "00020101021138540010A00000072701240006970423011000999999990208QRIBFTTA53037045802VN6304CBB4", resp.Payload)
	assert.Equal(t, "static", resp.InitiationMethod)
	_, err = uuid.Parse(resp.IssuanceID)
	assert.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.PayloadsIssued.WithLabelValues("static")), 0)
}

func TestHandler_GeneratePayload_Errors(t *testing.T) {
	tests := []struct {
		name     string
		account  *entity.BankAccount
		findErr  error
		wantCode codes.Code
	}{
		{name: "not found", findErr: repository.ErrNotFound, wantCode: codes.NotFound},
		{name: "database failure", findErr: errors.New("conn refused"), wantCode: codes.Internal},
		{
			name:     "invalid stored account",
			account:  entity.ReconstructBankAccount(uuid.Nil, "123", "Test Account", "TPBank", ""),
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "unknown bank",
			account:  entity.ReconstructBankAccount(uuid.Nil, "0099999999", "Test Account", "UnknownBank", ""),
			wantCode: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.accounts.EXPECT().FindByIDForShare(gomock.Any(), gomock.Any()).Return(tt.account, tt.findErr)

			_, err := f.handler.GeneratePayload(context.Background(), &qrpb.GeneratePayloadRequest{
				AccountID: uuid.NewString(),
				Amount:    1000,
			})

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Zero(t, testutil.CollectAndCount(f.metrics.PayloadsIssued))
		})
	}
}

func TestHandler_GeneratePayload_InvalidAccountID(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.GeneratePayload(context.Background(), &qrpb.GeneratePayloadRequest{AccountID: "not-a-uuid"})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
