package grpcclient

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Xausdorf/vietqr-hub/api/qrpb"
	"github.com/Xausdorf/vietqr-hub/internal/domain/payload"
)

// callTimeout bounds a single GeneratePayload call when the caller's context
// has no earlier deadline.
const callTimeout = 10 * time.Second

type Client struct {
	client qrpb.QRServiceClient
	conn   *grpc.ClientConn
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: qrpb.NewQRServiceClient(conn),
		conn:   conn,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) GeneratePayload(ctx context.Context, req payload.Request) (*payload.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.client.GeneratePayload(ctx, &qrpb.GeneratePayloadRequest{
		AccountID: req.AccountID.String(),
		Amount:    req.Amount,
		Purpose:   req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	return &payload.Response{
		IssuanceID:       resp.IssuanceID,
		Payload:          resp.Payload,
		InitiationMethod: resp.InitiationMethod,
	}, nil
}
