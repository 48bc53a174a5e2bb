package vietqr

import (
	"errors"

	"github.com/Xausdorf/vietqr-hub/internal/vietqr/bankdir"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr/tlv"
)

var (
	ErrMissingRequiredField       = errors.New("missing required field")
	ErrInvalidAccountNumberFormat = errors.New("account number must be 8 to 16 digits")
	ErrBankBINNotFound            = bankdir.ErrBINNotFound
	ErrFieldTooLong               = tlv.ErrFieldTooLong
)

// IsInvalidInput reports whether err was caused by the caller's data rather
// than by the encoder itself.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrInvalidAccountNumberFormat) ||
		errors.Is(err, ErrBankBINNotFound) ||
		errors.Is(err, ErrFieldTooLong)
}
