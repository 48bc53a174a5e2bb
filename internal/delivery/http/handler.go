package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/renderqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr/bankdir"
)

var errInvalidAmount = errors.New("amount must be a non-negative integer")

type Handler struct {
	renderUC *renderqr.UseCase
	banks    *bankdir.Directory
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewHandler(
	renderUC *renderqr.UseCase,
	banks *bankdir.Directory,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		renderUC: renderUC,
		banks:    banks,
		metrics:  m,
		logger:   logger,
	}
}

type EncodeRequest struct {
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
	BankCode          string `json:"bank_code,omitempty"`
	Amount            int64  `json:"amount,omitempty"`
	Purpose           string `json:"purpose,omitempty"`
}

type PayloadResponse struct {
	IssuanceID       string `json:"issuance_id,omitempty"`
	Payload          string `json:"payload"`
	InitiationMethod string `json:"initiation_method"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	req, ok := h.storedRequest(w, r)
	if !ok {
		return
	}

	png, err := h.renderUC.Image(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writePNG(w, png)
}

func (h *Handler) HandlePayload(w http.ResponseWriter, r *http.Request) {
	req, ok := h.storedRequest(w, r)
	if !ok {
		return
	}

	res, err := h.renderUC.Payload(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PayloadResponse{
		IssuanceID:       res.IssuanceID,
		Payload:          res.Payload,
		InitiationMethod: res.InitiationMethod,
	})
}

func (h *Handler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var body EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if body.Amount < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errInvalidAmount.Error()})
		return
	}

	req := renderqr.InlineRequest{
		Account: vietqr.BankAccountInfo{
			AccountNumber:     body.AccountNumber,
			AccountHolderName: body.AccountHolderName,
			BankName:          body.BankName,
			BankCode:          body.BankCode,
		},
		Amount:  body.Amount,
		Purpose: body.Purpose,
	}

	if r.URL.Query().Get("format") == "png" {
		png, err := h.renderUC.InlineImage(req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writePNG(w, png)
		return
	}

	res, err := h.renderUC.Inline(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PayloadResponse{
		Payload:          res.Payload,
		InitiationMethod: res.InitiationMethod,
	})
}

func (h *Handler) HandleBanks(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, h.banks.Banks())
}

func (h *Handler) storedRequest(w http.ResponseWriter, r *http.Request) (renderqr.Request, bool) {
	accountID := chi.URLParam(r, "account_id")
	if err := uuid.Validate(accountID); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account_id"})
		return renderqr.Request{}, false
	}

	q := r.URL.Query()
	var amount int64
	if s := q.Get("amount"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: errInvalidAmount.Error()})
			return renderqr.Request{}, false
		}
		amount = v
	}

	return renderqr.Request{
		AccountID: accountID,
		Amount:    amount,
		Purpose:   q.Get("purpose"),
	}, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if vietqr.IsInvalidInput(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.InvalidArgument:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: st.Message()})
			return
		case codes.NotFound:
			writeJSON(w, http.StatusNotFound, errorResponse{Error: st.Message()})
			return
		case codes.Unavailable, codes.DeadlineExceeded:
			h.logger.Error("core service unavailable", "error", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "core service unavailable"})
			return
		}
	}

	h.logger.Error("qr request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "qr generation failed"})
}

func (h *Handler) writePNG(w http.ResponseWriter, png []byte) {
	h.metrics.QRImages.Inc()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
