package apiv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service exchanges google.protobuf.Struct messages, so it needs no
// generated code: the default proto codec handles them.
const (
	StatusTransformerService = "ticketcsv.v1.StatusTransformer"
	TransformFullMethod      = "/" + StatusTransformerService + "/Transform"
)

type StatusTransformerServer interface {
	Transform(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type StatusTransformerClient interface {
	Transform(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

func RegisterStatusTransformerServer(s grpc.ServiceRegistrar, srv StatusTransformerServer) {
	s.RegisterService(&StatusTransformerServiceDesc, srv)
}

var StatusTransformerServiceDesc = grpc.ServiceDesc{
	ServiceName: StatusTransformerService,
	HandlerType: (*StatusTransformerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Transform", Handler: transformHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ticketcsv/v1/transformer",
}

func transformHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StatusTransformerServer).Transform(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TransformFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StatusTransformerServer).Transform(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type statusTransformerClient struct {
	cc grpc.ClientConnInterface
}

func NewStatusTransformerClient(cc grpc.ClientConnInterface) StatusTransformerClient {
	return &statusTransformerClient{cc: cc}
}

func (c *statusTransformerClient) Transform(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TransformFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
