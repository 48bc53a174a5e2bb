// Package qrpb is the gRPC contract of the core service. Messages travel as
// google.protobuf.Struct, so any gRPC client can call the service without
// generated stubs:
//
//	service QRService {
//	  rpc GeneratePayload(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
package qrpb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "vietqr.v1.QRService"

	GeneratePayloadFullMethodName = "/" + ServiceName + "/GeneratePayload"
)

const (
	fieldAccountID        = "account_id"
	fieldAmount           = "amount"
	fieldPurpose          = "purpose"
	fieldIssuanceID       = "issuance_id"
	fieldPayload          = "payload"
	fieldInitiationMethod = "initiation_method"
)

// Largest integer a Struct number carries without loss.
const maxExactAmount = 1 << 53

var ErrInvalidMessage = errors.New("invalid message")

type GeneratePayloadRequest struct {
	AccountID string
	Amount    int64
	Purpose   string
}

type GeneratePayloadResponse struct {
	IssuanceID       string
	Payload          string
	InitiationMethod string
}

func (r *GeneratePayloadRequest) ToStruct() (*structpb.Struct, error) {
	if r.Amount > maxExactAmount || r.Amount < -maxExactAmount {
		return nil, fmt.Errorf("%w: amount %d out of range", ErrInvalidMessage, r.Amount)
	}
	return structpb.NewStruct(map[string]any{
		fieldAccountID: r.AccountID,
		fieldAmount:    float64(r.Amount),
		fieldPurpose:   r.Purpose,
	})
}

func RequestFromStruct(s *structpb.Struct) (*GeneratePayloadRequest, error) {
	fields := s.GetFields()

	accountID, err := stringField(fields, fieldAccountID)
	if err != nil {
		return nil, err
	}
	purpose, err := stringField(fields, fieldPurpose)
	if err != nil {
		return nil, err
	}

	var amount int64
	if v, ok := fields[fieldAmount]; ok {
		n, isNum := v.GetKind().(*structpb.Value_NumberValue)
		if !isNum {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidMessage, fieldAmount)
		}
		f := n.NumberValue
		if f != math.Trunc(f) || math.Abs(f) > maxExactAmount {
			return nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidMessage, fieldAmount)
		}
		amount = int64(f)
	}

	return &GeneratePayloadRequest{AccountID: accountID, Amount: amount, Purpose: purpose}, nil
}

func (r *GeneratePayloadResponse) ToStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldIssuanceID:       r.IssuanceID,
		fieldPayload:          r.Payload,
		fieldInitiationMethod: r.InitiationMethod,
	})
}

func ResponseFromStruct(s *structpb.Struct) (*GeneratePayloadResponse, error) {
	fields := s.GetFields()
	resp := &GeneratePayloadResponse{}
	var err error
	if resp.IssuanceID, err = stringField(fields, fieldIssuanceID); err != nil {
		return nil, err
	}
	if resp.Payload, err = stringField(fields, fieldPayload); err != nil {
		return nil, err
	}
	if resp.InitiationMethod, err = stringField(fields, fieldInitiationMethod); err != nil {
		return nil, err
	}
	return resp, nil
}

// stringField returns "" for a missing key.
func stringField(fields map[string]*structpb.Value, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidMessage, name)
	}
	return s.StringValue, nil
}

type QRServiceServer interface {
	GeneratePayload(ctx context.Context, req *GeneratePayloadRequest) (*GeneratePayloadResponse, error)
}

func RegisterQRServiceServer(s grpc.ServiceRegistrar, srv QRServiceServer) {
	s.RegisterService(&QRServiceDesc, srv)
}

var QRServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*QRServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GeneratePayload",
			Handler:    generatePayloadHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vietqr/v1/qr.proto",
}

func generatePayloadHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	invoke := func(ctx context.Context, msg any) (any, error) {
		req, err := RequestFromStruct(msg.(*structpb.Struct))
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		resp, err := srv.(QRServiceServer).GeneratePayload(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.ToStruct()
	}

	if interceptor == nil {
		return invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GeneratePayloadFullMethodName,
	}
	return interceptor(ctx, in, info, invoke)
}

type QRServiceClient interface {
	GeneratePayload(ctx context.Context, req *GeneratePayloadRequest, opts ...grpc.CallOption) (*GeneratePayloadResponse, error)
}

type qrServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewQRServiceClient(cc grpc.ClientConnInterface) QRServiceClient {
	return &qrServiceClient{cc: cc}
}

func (c *qrServiceClient) GeneratePayload(
	ctx context.Context,
	req *GeneratePayloadRequest,
	opts ...grpc.CallOption,
) (*GeneratePayloadResponse, error) {
	in, err := req.ToStruct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GeneratePayloadFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return ResponseFromStruct(out)
}
