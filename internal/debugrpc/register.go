package debugrpc

import (
	"context"

	"google.golang.org/grpc"
)

// serviceName is the gRPC service name this package's methods are
// registered under.
const serviceName = "section.debugrpc.Debug"

func statusHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(StatusRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.Status(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Status"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return svc.Status(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func listNodesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListNodesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.ListNodes(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ListNodes"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return svc.ListNodes(ctx, req.(*ListNodesRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func propertiesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(PropertiesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.Properties(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Properties"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return svc.Properties(ctx, req.(*PropertiesRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// serviceDesc is the hand-written equivalent of what protoc-gen-go-grpc
// would emit for a three-method Debug service; there's no .proto here,
// just the plain Go structs in messages.go carried by wireCodec.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Service)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: statusHandler},
		{MethodName: "ListNodes", Handler: listNodesHandler},
		{MethodName: "Properties", Handler: propertiesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/debugrpc/service.go",
}

// Register registers svc's methods on grpcServer. Clients must dial with
// grpc.CallContentSubtype(codecName) (or an equivalent codec override) to
// speak this service's wire format.
func Register(grpcServer *grpc.Server, svc *Service) {
	grpcServer.RegisterService(&serviceDesc, svc)
}
