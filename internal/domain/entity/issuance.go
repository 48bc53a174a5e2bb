package entity

import (
	"time"

	"github.com/google/uuid"
)

type InitiationMethod string

const (
	MethodStatic  InitiationMethod = "static"
	MethodDynamic InitiationMethod = "dynamic"
)

// Issuance records one payload handed out for an account.
type Issuance struct {
	id        uuid.UUID
	accountID uuid.UUID
	amount    int64
	purpose   string
	method    InitiationMethod
	payload   string
	createdAt time.Time
}

func NewIssuance(accountID uuid.UUID, amount int64, purpose string, method InitiationMethod, payload string) *Issuance {
	return &Issuance{
		id:        uuid.New(),
		accountID: accountID,
		amount:    amount,
		purpose:   purpose,
		method:    method,
		payload:   payload,
		createdAt: time.Now(),
	}
}

func ReconstructIssuance(
	id, accountID uuid.UUID,
	amount int64,
	purpose string,
	method InitiationMethod,
	payload string,
	createdAt time.Time,
) *Issuance {
	return &Issuance{
		id:        id,
		accountID: accountID,
		amount:    amount,
		purpose:   purpose,
		method:    method,
		payload:   payload,
		createdAt: createdAt,
	}
}

func (i *Issuance) ID() uuid.UUID {
	return i.id
}

func (i *Issuance) AccountID() uuid.UUID {
	return i.accountID
}

// Amount is zero when the payload carries no amount.
func (i *Issuance) Amount() int64 {
	return i.amount
}

func (i *Issuance) Purpose() string {
	return i.purpose
}

func (i *Issuance) Method() InitiationMethod {
	return i.method
}

func (i *Issuance) Payload() string {
	return i.payload
}

func (i *Issuance) CreatedAt() time.Time {
	return i.createdAt
}
