package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name. Messages are protobuf
// well-known types, so any client with the standard descriptors can call it.
const ServiceName = "tracker.v1.TaskService"

const (
	ReportNameHeader        = "x-report-name"
	ReportContentTypeHeader = "x-report-content-type"
)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type TaskServiceServer interface {
	CreateTask(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	UpdateTask(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteTask(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ListTasks(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	GetDashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportReport(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	WatchDashboard(*structpb.Struct, DashboardStream) error
}

// DashboardStream is the server side of WatchDashboard.
type DashboardStream interface {
	Send(*structpb.Struct) error
	Context() context.Context
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateTask", newEmpty, func(s TaskServiceServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return s.CreateTask(ctx, in)
		}),
		unary("UpdateTask", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.UpdateTask(ctx, in)
		}),
		unary("DeleteTask", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.DeleteTask(ctx, in)
		}),
		unary("ListTasks", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.ListTasks(ctx, in)
		}),
		unary("GetDashboard", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.GetDashboard(ctx, in)
		}),
		unary("ExportReport", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.ExportReport(ctx, in)
		}),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchDashboard",
			Handler:       watchDashboardHandler,
			ServerStreams: true,
		},
	},
}

func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newEmpty() *emptypb.Empty    { return new(emptypb.Empty) }
func newStruct() *structpb.Struct { return new(structpb.Struct) }

func unary[Req proto.Message](
	method string,
	newReq func() Req,
	call func(TaskServiceServer, context.Context, Req) (proto.Message, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TaskServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskServiceServer), ctx, req.(Req))
			})
		},
	}
}

func watchDashboardHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(TaskServiceServer).WatchDashboard(in, &dashboardStream{stream})
}

type dashboardStream struct {
	grpc.ServerStream
}

func (s *dashboardStream) Send(m *structpb.Struct) error {
	return s.ServerStream.SendMsg(m)
}

// Client is a thin typed wrapper over a connection to TaskService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CreateTask(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod("CreateTask"), new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, FullMethod("UpdateTask"), in, new(emptypb.Empty), opts...)
}

func (c *Client) DeleteTask(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, FullMethod("DeleteTask"), in, new(emptypb.Empty), opts...)
}

func (c *Client) ListTasks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod("ListTasks"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod("GetDashboard"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ExportReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, FullMethod("ExportReport"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WatchDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*DashboardWatcher, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], FullMethod("WatchDashboard"), opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &DashboardWatcher{stream: stream}, nil
}

type DashboardWatcher struct {
	stream grpc.ClientStream
}

func (w *DashboardWatcher) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := w.stream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
