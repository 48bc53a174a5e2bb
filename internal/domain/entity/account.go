package entity

import (
	"github.com/google/uuid"
)

// BankAccount is a shop's receiving account as stored by the core service.
type BankAccount struct {
	id                uuid.UUID
	accountNumber     string
	accountHolderName string
	bankName          string
	bankCode          string
}

func NewBankAccount(accountNumber, holderName, bankName, bankCode string) *BankAccount {
	return ReconstructBankAccount(uuid.New(), accountNumber, holderName, bankName, bankCode)
}

func ReconstructBankAccount(id uuid.UUID, accountNumber, holderName, bankName, bankCode string) *BankAccount {
	return &BankAccount{
		id:                id,
		accountNumber:     accountNumber,
		accountHolderName: holderName,
		bankName:          bankName,
		bankCode:          bankCode,
	}
}

func (a *BankAccount) ID() uuid.UUID {
	return a.id
}

func (a *BankAccount) AccountNumber() string {
	return a.accountNumber
}

func (a *BankAccount) AccountHolderName() string {
	return a.accountHolderName
}

func (a *BankAccount) BankName() string {
	return a.bankName
}

func (a *BankAccount) BankCode() string {
	return a.bankCode
}
