package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	ServiceName = "gosynckeeper.v1.SyncService"

	PullMethod      = "/" + ServiceName + "/Pull"
	PushMethod      = "/" + ServiceName + "/Push"
	ForcePushMethod = "/" + ServiceName + "/ForcePush"
	StatusMethod    = "/" + ServiceName + "/Status"
)

// Empty is the request message of Pull and Status.
type Empty struct{}

// SyncServiceServer is the server API for the gosynckeeper.v1.SyncService
// service.
type SyncServiceServer interface {
	Pull(context.Context, *Empty) (*models.PullResponse, error)
	Push(context.Context, *models.PushRequest) (*models.PushResponse, error)
	ForcePush(context.Context, *models.ForcePushRequest) (*models.PushResponse, error)
	Status(context.Context, *Empty) (*models.StatusResponse, error)
}

// RegisterSyncServiceServer registers srv on s.
func RegisterSyncServiceServer(s grpc.ServiceRegistrar, srv SyncServiceServer) {
	s.RegisterService(&SyncServiceDesc, srv)
}

// SyncServiceDesc is the grpc.ServiceDesc for the sync service. Messages are
// encoded with the JSON codec.
var SyncServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SyncServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Pull", Handler: pullHandler},
		{MethodName: "Push", Handler: pushHandler},
		{MethodName: "ForcePush", Handler: forcePushHandler},
		{MethodName: "Status", Handler: statusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gosynckeeper/v1/sync.json",
}

func pullHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServiceServer).Pull(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServiceServer).Pull(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func pushHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.PushRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServiceServer).Push(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PushMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServiceServer).Push(ctx, req.(*models.PushRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func forcePushHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.ForcePushRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServiceServer).ForcePush(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ForcePushMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServiceServer).ForcePush(ctx, req.(*models.ForcePushRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServiceServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StatusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServiceServer).Status(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// SyncServiceClient is the client API for the gosynckeeper.v1.SyncService
// service.
type SyncServiceClient interface {
	Pull(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*models.PullResponse, error)
	Push(ctx context.Context, in *models.PushRequest, opts ...grpc.CallOption) (*models.PushResponse, error)
	ForcePush(ctx context.Context, in *models.ForcePushRequest, opts ...grpc.CallOption) (*models.PushResponse, error)
	Status(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*models.StatusResponse, error)
}

type syncServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSyncServiceClient returns a client that always uses the JSON codec.
func NewSyncServiceClient(cc grpc.ClientConnInterface) SyncServiceClient {
	return &syncServiceClient{cc: cc}
}

func (c *syncServiceClient) Pull(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*models.PullResponse, error) {
	out := new(models.PullResponse)
	if err := c.invoke(ctx, PullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *syncServiceClient) Push(ctx context.Context, in *models.PushRequest, opts ...grpc.CallOption) (*models.PushResponse, error) {
	out := new(models.PushResponse)
	if err := c.invoke(ctx, PushMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *syncServiceClient) ForcePush(ctx context.Context, in *models.ForcePushRequest, opts ...grpc.CallOption) (*models.PushResponse, error) {
	out := new(models.PushResponse)
	if err := c.invoke(ctx, ForcePushMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *syncServiceClient) Status(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*models.StatusResponse, error) {
	out := new(models.StatusResponse)
	if err := c.invoke(ctx, StatusMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *syncServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
