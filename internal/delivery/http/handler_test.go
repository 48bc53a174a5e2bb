package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	httpdelivery "github.com/Xausdorf/vietqr-hub/internal/delivery/http"
	"github.com/Xausdorf/vietqr-hub/internal/domain/payload"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/renderqr"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/renderqr/mocks"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr/bankdir"
)

const staticPayload = "00020101021138540010A00000072701240006970423011000999999990208QRIBFTTA53037045802VN6304CBB4"

type fixture struct {
	server   http.Handler
	client   *mocks.MockClient
	renderer *mocks.MockRenderer
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)

	m, err := metrics.New("gateway", prometheus.NewRegistry())
	require.NoError(t, err)

	uc := renderqr.NewUseCase(client, renderer, vietqr.NewEncoder(nil))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := httpdelivery.NewHandler(uc, bankdir.Default(), m, logger)

	return &fixture{
		server:   httpdelivery.NewRouter(h, m),
		client:   client,
		renderer: renderer,
		metrics:  m,
	}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func TestHandleQR(t *testing.T) {
	f := newFixture(t)
	accountID := uuid.New()

	f.client.EXPECT().GeneratePayload(gomock.Any(), payload.Request{
		AccountID: accountID,
		Amount:    120000,
		Purpose:   "ủng hộ",
	}).Return(&payload.Response{Payload: "P"}, nil)
	f.renderer.EXPECT().Render("P").Return([]byte("\x89PNG"), nil)

	rec := f.do(http.MethodGet, "/api/qr/"+accountID.String()+"?amount=120000&purpose=%E1%BB%A7ng+h%E1%BB%99", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}

func TestHandleQR_AmountOptional(t *testing.T) {
	f := newFixture(t)
	accountID := uuid.New()

	f.client.EXPECT().GeneratePayload(gomock.Any(), payload.Request{AccountID: accountID}).
		Return(&payload.Response{Payload: "P"}, nil)
	f.renderer.EXPECT().Render("P").Return([]byte("png"), nil)

	rec := f.do(http.MethodGet, "/api/qr/"+accountID.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleQR_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"bad account id", "/api/qr/not-a-uuid"},
		{"bad amount", "/api/qr/" + uuid.NewString() + "?amount=12.5"},
		{"negative amount", "/api/qr/" + uuid.NewString() + "?amount=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newFixture(t).do(http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlePayload_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", status.Error(codes.NotFound, "bank account not found"), http.StatusNotFound},
		{"invalid", status.Error(codes.InvalidArgument, "account number must be 8 to 16 digits"), http.StatusBadRequest},
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), http.StatusBadGateway},
		{"internal", status.Error(codes.Internal, "boom"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.client.EXPECT().GeneratePayload(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := f.do(http.MethodGet, "/api/qr/"+uuid.NewString()+"/payload", "")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHandlePayload(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().GeneratePayload(gomock.Any(), gomock.Any()).
		Return(&payload.Response{IssuanceID: "i-1", Payload: staticPayload, InitiationMethod: "static"}, nil)

	rec := f.do(http.MethodGet, "/api/qr/"+uuid.NewString()+"/payload", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httpdelivery.PayloadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httpdelivery.PayloadResponse{IssuanceID: "i-1", Payload: staticPayload, InitiationMethod: "static"}, resp)
}

func TestHandleEncode_JSON(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/qr", `{"account_number":"0099999999","account_holder_name":"Test Account","bank_name":"TPBank"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httpdelivery.PayloadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, staticPayload, resp.Payload)
	assert.Equal(t, "static", resp.InitiationMethod)
}

func TestHandleEncode_PNG(t *testing.T) {
	f := newFixture(t)
	f.renderer.EXPECT().Render(gomock.Any()).Return([]byte("png"), nil)

	rec := f.do(http.MethodPost, "/api/qr?format=png",
		`{"account_number":"0011001932418","account_holder_name":"Test Account","bank_name":"Vietinbank","bank_code":"ICB","amount":120000,"purpose":"ủng hộ lũ lụt"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestHandleEncode_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"account_number":`},
		{"missing holder", `{"account_number":"0099999999","bank_name":"TPBank"}`},
		{"short account", `{"account_number":"123","account_holder_name":"A","bank_name":"TPBank"}`},
		{"unknown bank", `{"account_number":"0099999999","account_holder_name":"A","bank_name":"UnknownBank"}`},
		{"negative amount", `{"account_number":"0099999999","account_holder_name":"A","bank_name":"TPBank","amount":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newFixture(t).do(http.MethodPost, "/api/qr", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleBanks(t *testing.T) {
	rec := newFixture(t).do(http.MethodGet, "/api/banks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var banks []bankdir.Bank
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&banks))
	assert.Len(t, banks, len(bankdir.Default().Banks()))

	var found bool
	for _, b := range banks {
		if b.Code == "ICB" {
			found = true
			assert.Equal(t, "970415", b.BIN)
		}
	}
	assert.True(t, found)
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	f.renderer.EXPECT().Render(gomock.Any()).Return([]byte("png"), nil)

	f.do(http.MethodPost, "/api/qr?format=png", `{"account_number":"0099999999","account_holder_name":"A","bank_name":"TPBank"}`)
	f.do(http.MethodGet, "/api/qr/not-a-uuid", "")
	f.do(http.MethodGet, "/nowhere", "")

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.QRImages), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.HTTPRequests.WithLabelValues("/api/qr", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.HTTPRequests.WithLabelValues("/api/qr/{account_id}", "400")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.HTTPRequests.WithLabelValues("unmatched", "404")), 0)

	rec := f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vietqr_qr_images_total")
}
