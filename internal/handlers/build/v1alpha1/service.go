package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "build.v1alpha1.BuildService"

// Method names
const (
	MethodLoadDocument   = "LoadDocument"
	MethodGetDocument    = "GetDocument"
	MethodListDocuments  = "ListDocuments"
	MethodCreateBuild    = "CreateBuild"
	MethodGetBuild       = "GetBuild"
	MethodDeleteBuild    = "DeleteBuild"
	MethodSelectOption   = "SelectOption"
	MethodDeselectOption = "DeselectOption"
	MethodRollOption     = "RollOption"
	MethodExportBuild    = "ExportBuild"
	MethodImportBuild    = "ImportBuild"
)

// BuildServiceServer is the server API for the build service. Every request and
// response is a google.protobuf.Struct.
type BuildServiceServer interface {
	LoadDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListDocuments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateBuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteBuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectOption(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeselectOption(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollOption(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportBuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportBuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(BuildServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BuildServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BuildServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for the build service
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BuildServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodLoadDocument, BuildServiceServer.LoadDocument),
		methodDesc(MethodGetDocument, BuildServiceServer.GetDocument),
		methodDesc(MethodListDocuments, BuildServiceServer.ListDocuments),
		methodDesc(MethodCreateBuild, BuildServiceServer.CreateBuild),
		methodDesc(MethodGetBuild, BuildServiceServer.GetBuild),
		methodDesc(MethodDeleteBuild, BuildServiceServer.DeleteBuild),
		methodDesc(MethodSelectOption, BuildServiceServer.SelectOption),
		methodDesc(MethodDeselectOption, BuildServiceServer.DeselectOption),
		methodDesc(MethodRollOption, BuildServiceServer.RollOption),
		methodDesc(MethodExportBuild, BuildServiceServer.ExportBuild),
		methodDesc(MethodImportBuild, BuildServiceServer.ImportBuild),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// RegisterBuildServiceServer registers srv on s
func RegisterBuildServiceServer(s grpc.ServiceRegistrar, srv BuildServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod returns the full gRPC method path for a method name
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// Client calls the build service over a connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a build service client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes a build service method
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
