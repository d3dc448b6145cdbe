package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "lssfoundry.converter.v1alpha1.ConverterService"

// Full method names
const (
	ConverterService_Convert_FullMethodName        = "/" + ServiceName + "/Convert"
	ConverterService_CreateSession_FullMethodName  = "/" + ServiceName + "/CreateSession"
	ConverterService_UpdateSession_FullMethodName  = "/" + ServiceName + "/UpdateSession"
	ConverterService_ConvertSession_FullMethodName = "/" + ServiceName + "/ConvertSession"
	ConverterService_DeleteSession_FullMethodName  = "/" + ServiceName + "/DeleteSession"
)

// ConverterServiceServer is the server API for the converter service.
// Messages are google.protobuf.Struct values; field names are documented
// on each handler method.
type ConverterServiceServer interface {
	Convert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConvertSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedConverterServiceServer can be embedded to have forward compatible implementations
type UnimplementedConverterServiceServer struct{}

func (UnimplementedConverterServiceServer) Convert(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Convert not implemented")
}

func (UnimplementedConverterServiceServer) CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateSession not implemented")
}

func (UnimplementedConverterServiceServer) UpdateSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateSession not implemented")
}

func (UnimplementedConverterServiceServer) ConvertSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ConvertSession not implemented")
}

func (UnimplementedConverterServiceServer) DeleteSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteSession not implemented")
}

// RegisterConverterServiceServer registers the service with a gRPC server
func RegisterConverterServiceServer(s grpc.ServiceRegistrar, srv ConverterServiceServer) {
	s.RegisterService(&ConverterService_ServiceDesc, srv)
}

type unaryCall func(ConverterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ConverterServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ConverterServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ConverterService_ServiceDesc is the grpc.ServiceDesc for the converter service
var ConverterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConverterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Convert",
			Handler:    unaryHandler(ConverterService_Convert_FullMethodName, ConverterServiceServer.Convert),
		},
		{
			MethodName: "CreateSession",
			Handler:    unaryHandler(ConverterService_CreateSession_FullMethodName, ConverterServiceServer.CreateSession),
		},
		{
			MethodName: "UpdateSession",
			Handler:    unaryHandler(ConverterService_UpdateSession_FullMethodName, ConverterServiceServer.UpdateSession),
		},
		{
			MethodName: "ConvertSession",
			Handler:    unaryHandler(ConverterService_ConvertSession_FullMethodName, ConverterServiceServer.ConvertSession),
		},
		{
			MethodName: "DeleteSession",
			Handler:    unaryHandler(ConverterService_DeleteSession_FullMethodName, ConverterServiceServer.DeleteSession),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lssfoundry/converter/v1alpha1/converter.proto",
}

// ConverterServiceClient is the client API for the converter service
type ConverterServiceClient interface {
	Convert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ConvertSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type converterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewConverterServiceClient creates a client over an existing connection
func NewConverterServiceClient(cc grpc.ClientConnInterface) ConverterServiceClient {
	return &converterServiceClient{cc: cc}
}

func (c *converterServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converterServiceClient) Convert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ConverterService_Convert_FullMethodName, in, opts...)
}

func (c *converterServiceClient) CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ConverterService_CreateSession_FullMethodName, in, opts...)
}

func (c *converterServiceClient) UpdateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ConverterService_UpdateSession_FullMethodName, in, opts...)
}

func (c *converterServiceClient) ConvertSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ConverterService_ConvertSession_FullMethodName, in, opts...)
}

func (c *converterServiceClient) DeleteSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ConverterService_DeleteSession_FullMethodName, in, opts...)
}
