// Package vietqr builds VietQR (NAPAS 247) payment payloads: EMV
// merchant-presented QR strings for interbank transfers to a bank account.
package vietqr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Xausdorf/vietqr-hub/internal/vietqr/bankdir"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr/tlv"
)

const (
	tagPayloadFormat    = "00"
	tagInitiationMethod = "01"
	tagMerchantAccount  = "38"
	tagCurrency         = "53"
	tagAmount           = "54"
	tagCountry          = "58"
	tagAdditionalData   = "62"
	tagCRC              = "63"

	// Sub-tags of 38.
	tagGUID        = "00"
	tagBeneficiary = "01"
	tagService     = "02"

	// Sub-tags of 38/01.
	tagAcquirerBIN   = "00"
	tagAccountNumber = "01"

	// Sub-tag of 62.
	tagPurpose = "08"

	payloadFormatIndicator = "01"
	napasGUID              = "A000000727"
	serviceAccountTransfer = "QRIBFTTA"
	currencyVND            = "704"
	countryVN              = "VN"

	crcLen = 4
)

type InitiationMethod string

const (
	Static  InitiationMethod = "11"
	Dynamic InitiationMethod = "12"
)

var accountNumberPattern = regexp.MustCompile(`^[0-9]{8,16}$`)

// BankAccountInfo identifies the beneficiary. BankCode takes priority over
// BankName when resolving the BIN.
type BankAccountInfo struct {
	AccountNumber     string
	AccountHolderName string
	BankName          string
	BankCode          string
}

// Request carries one encode call. Amount is in dong; values <= 0 mean no
// amount. Purpose is free text and is normalized before use.
type Request struct {
	Account BankAccountInfo
	Amount  int64
	Purpose string
}

// Result holds the payload and the decisions taken while building it.
// Purpose is the normalized text that was embedded, empty when omitted.
type Result struct {
	Payload string
	Method  InitiationMethod
	Purpose string
	BIN     string
}

type Encoder struct {
	banks *bankdir.Directory
}

// NewEncoder returns an encoder resolving BINs through banks. A nil
// directory selects bankdir.Default.
func NewEncoder(banks *bankdir.Directory) *Encoder {
	if banks == nil {
		banks = bankdir.Default()
	}
	return &Encoder{banks: banks}
}

var defaultEncoder = NewEncoder(nil)

// Generate encodes a payload using the built-in bank directory.
func Generate(info BankAccountInfo, amount int64, purpose string) (string, error) {
	return defaultEncoder.Generate(info, amount, purpose)
}

func (e *Encoder) Generate(info BankAccountInfo, amount int64, purpose string) (string, error) {
	res, err := e.Encode(Request{Account: info, Amount: amount, Purpose: purpose})
	if err != nil {
		return "", err
	}
	return res.Payload, nil
}

func (e *Encoder) Encode(req Request) (*Result, error) {
	acc := req.Account
	if strings.TrimSpace(acc.AccountNumber) == "" {
		return nil, fmt.Errorf("%w: account number", ErrMissingRequiredField)
	}
	if strings.TrimSpace(acc.AccountHolderName) == "" {
		return nil, fmt.Errorf("%w: account holder name", ErrMissingRequiredField)
	}
	if !accountNumberPattern.MatchString(acc.AccountNumber) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidAccountNumberFormat, acc.AccountNumber)
	}

	bin, err := e.banks.BIN(acc.BankCode, acc.BankName)
	if err != nil {
		return nil, err
	}

	purpose := NormalizePurpose(req.Purpose)
	method := Static
	if req.Amount > 0 || purpose != "" {
		method = Dynamic
	}

	nodes := []tlv.Node{
		tlv.Leaf(tagPayloadFormat, payloadFormatIndicator),
		tlv.Leaf(tagInitiationMethod, string(method)),
		tlv.Nest(tagMerchantAccount,
			tlv.Leaf(tagGUID, napasGUID),
			tlv.Nest(tagBeneficiary,
				tlv.Leaf(tagAcquirerBIN, bin),
				tlv.Leaf(tagAccountNumber, acc.AccountNumber),
			),
			tlv.Leaf(tagService, serviceAccountTransfer),
		),
		tlv.Leaf(tagCurrency, currencyVND),
	}
	if req.Amount > 0 {
		nodes = append(nodes, tlv.Leaf(tagAmount, strconv.FormatInt(req.Amount, 10)))
	}
	nodes = append(nodes, tlv.Leaf(tagCountry, countryVN))
	if purpose != "" {
		nodes = append(nodes, tlv.Nest(tagAdditionalData, tlv.Leaf(tagPurpose, purpose)))
	}

	body, err := tlv.Encode(nodes...)
	if err != nil {
		return nil, err
	}

	// The checksum covers the 6304 header but not its own digits.
	placeholder, err := tlv.Field(tagCRC, strings.Repeat("0", crcLen))
	if err != nil {
		return nil, err
	}
	signed := body + placeholder[:len(placeholder)-crcLen]

	return &Result{
		Payload: signed + Checksum(signed),
		Method:  method,
		Purpose: purpose,
		BIN:     bin,
	}, nil
}
