package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
	"github.com/KirkDiggler/build-api/internal/orchestrators/build"
	buildmock "github.com/KirkDiggler/build-api/internal/orchestrators/build/mock"
)

// startServer serves the build handler and reflection over an in-memory listener
func startServer(t *testing.T, svc build.Service) *grpc.ClientConn {
	t.Helper()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{BuildService: svc})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterBuildServiceServer(srv, handler)
	reflection.Register(srv)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestServiceDesc_RoundTripOverGRPC(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBuild := buildmock.NewMockService(ctrl)

	client := v1alpha1.NewClient(startServer(t, mockBuild))
	ctx := context.Background()

	mockBuild.EXPECT().
		ExportBuild(gomock.Any(), &build.ExportBuildInput{BuildID: "build_1"}).
		Return(&build.ExportBuildOutput{DocumentID: "doc_1", Selections: map[string]int{"sword": 1}}, nil)

	req, err := structpb.NewStruct(map[string]any{"build_id": "build_1"})
	require.NoError(t, err)

	resp, err := client.Call(ctx, v1alpha1.MethodExportBuild, req)
	require.NoError(t, err)
	assert.Equal(t, "doc_1", resp.Fields["document_id"].GetStringValue())

	mockBuild.EXPECT().
		GetBuild(gomock.Any(), &build.GetBuildInput{BuildID: "gone"}).
		Return(nil, errors.NotFound("build gone not found").WithMeta("build_id", "gone"))

	req, err = structpb.NewStruct(map[string]any{"build_id": "gone"})
	require.NoError(t, err)

	_, err = client.Call(ctx, v1alpha1.MethodGetBuild, req)
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	restored := errors.FromGRPCError(err)
	assert.True(t, errors.IsNotFound(restored))
	assert.Equal(t, "gone", errors.GetMeta(restored)["build_id"])
}

func TestServiceDesc_DescribedByReflection(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := startServer(t, buildmock.NewMockService(ctrl))

	stream, err := grpc_reflection_v1.NewServerReflectionClient(conn).ServerReflectionInfo(context.Background())
	require.NoError(t, err)

	err = stream.Send(&grpc_reflection_v1.ServerReflectionRequest{
		MessageRequest: &grpc_reflection_v1.ServerReflectionRequest_FileContainingSymbol{
			FileContainingSymbol: v1alpha1.ServiceName,
		},
	})
	require.NoError(t, err)

	resp, err := stream.Recv()
	require.NoError(t, err)
	require.Nil(t, resp.GetErrorResponse())

	var service *descriptorpb.ServiceDescriptorProto
	for _, raw := range resp.GetFileDescriptorResponse().GetFileDescriptorProto() {
		file := &descriptorpb.FileDescriptorProto{}
		require.NoError(t, proto.Unmarshal(raw, file))
		if file.GetName() == v1alpha1.ProtoFile {
			require.Len(t, file.GetService(), 1)
			service = file.GetService()[0]
		}
	}
	require.NotNil(t, service, "reflection did not return %s", v1alpha1.ProtoFile)

	assert.Equal(t, "BuildService", service.GetName())
	require.Len(t, service.GetMethod(), len(v1alpha1.ServiceDesc.Methods))
	for _, method := range service.GetMethod() {
		assert.Equal(t, ".google.protobuf.Struct", method.GetInputType(), method.GetName())
		assert.Equal(t, ".google.protobuf.Struct", method.GetOutputType(), method.GetName())
	}
	require.NoError(t, stream.CloseSend())
}
