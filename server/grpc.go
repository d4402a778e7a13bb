package server

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const converterServiceName = "temporalconv.v1.Converter"

// ConverterServer serves the conversion endpoints over gRPC. Requests and
// responses are google.protobuf.Struct messages with the fields of the
// HTTP JSON bodies.
type ConverterServer interface {
	Parse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Format(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var converterServiceDesc = grpc.ServiceDesc{
	ServiceName: converterServiceName,
	HandlerType: (*ConverterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parse",
			Handler:    converterParseHandler,
		},
		{
			MethodName: "Format",
			Handler:    converterFormatHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "temporalconv/v1/converter.proto",
}

func registerConverterServer(grpcServer *grpc.Server, srv *Server) {
	grpcServer.RegisterService(&converterServiceDesc, &converterServer{server: srv})
}

func converterParseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + converterServiceName + "/Parse",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConverterServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func converterFormatHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServer).Format(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + converterServiceName + "/Format",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConverterServer).Format(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type converterServer struct {
	server *Server
}

func (s *converterServer) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req parseRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, err
	}
	res, err := (&parseHandler{}).Handle(ctx, s.server, &req)
	if err != nil {
		return nil, err
	}
	return encodeStruct(res)
}

func (s *converterServer) Format(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req formatRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, err
	}
	res, err := (&formatHandler{}).Handle(ctx, s.server, &req)
	if err != nil {
		return nil, err
	}
	return encodeStruct(res)
}

// decodeStruct maps in onto a request type through its JSON field names.
func decodeStruct(in *structpb.Struct, v interface{}) *ServerError {
	b, err := json.Marshal(in.AsMap())
	if err != nil {
		return errInvalid(fmt.Sprintf("failed to encode request: %s", err))
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errInvalid(fmt.Sprintf("failed to decode request: %s", err))
	}
	return validateRequest(v)
}

func encodeStruct(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errInternalError(err.Error())
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errInternalError(err.Error())
	}
	return structpb.NewStruct(m)
}
