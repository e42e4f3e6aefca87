package cart

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "cart.v1.CartService"

// Method names.
const (
	MethodList           = "List"
	MethodAdd            = "Add"
	MethodUpdateQuantity = "UpdateQuantity"
	MethodRemove         = "Remove"
	MethodClearAll       = "ClearAll"
)

// UserIDHeader is the metadata key identifying the caller. A missing or empty value
// means an anonymous session.
const UserIDHeader = "x-user-id"

// CartServiceServer is the server API for the Remote Cart Service.
// Messages are google.protobuf.Struct values; see mappers.go for their shapes.
type CartServiceServer interface {
	List(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Add(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateQuantity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Remove(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CartServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CartServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(method),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CartServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes CartService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodList, CartServiceServer.List),
		unary(MethodAdd, CartServiceServer.Add),
		unary(MethodUpdateQuantity, CartServiceServer.UpdateQuantity),
		unary(MethodRemove, CartServiceServer.Remove),
		unary(MethodClearAll, CartServiceServer.ClearAll),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cart/v1/cart.proto",
}

// RegisterCartServiceServer registers srv with s.
func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
