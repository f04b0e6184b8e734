package v1alpha1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoFile is the descriptor path of the build service. It is registered in
// protoregistry.GlobalFiles so server reflection can describe the service.
const ProtoFile = "build/v1alpha1/build.proto"

const structType = ".google.protobuf.Struct"

func init() {
	file, err := fileDescriptor()
	if err != nil {
		panic(fmt.Sprintf("build service descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(file); err != nil {
		panic(fmt.Sprintf("register build service descriptor: %v", err))
	}
}

// fileDescriptor describes BuildService with Struct requests and responses
func fileDescriptor() (protoreflect.FileDescriptor, error) {
	methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(ServiceDesc.Methods))
	for _, m := range ServiceDesc.Methods {
		methods = append(methods, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.MethodName),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		})
	}

	fd := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String("build.v1alpha1"),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("BuildService"),
			Method: methods,
		}},
	}

	return protodesc.NewFile(fd, protoregistry.GlobalFiles)
}
