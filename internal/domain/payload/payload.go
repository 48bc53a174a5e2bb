package payload

import (
	"context"

	"github.com/google/uuid"
)

type Request struct {
	AccountID uuid.UUID
	Amount    int64
	Purpose   string
}

type Response struct {
	IssuanceID       string
	Payload          string
	InitiationMethod string
}

// Client asks the core service for the payload of a stored account.
type Client interface {
	GeneratePayload(ctx context.Context, req Request) (*Response, error)
}
