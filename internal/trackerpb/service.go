package trackerpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "tracker.v1.TrackerService"

// FullMethod returns the gRPC path of a method, e.g. "/tracker.v1.TrackerService/Login".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

type TrackerServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	GetProfile(context.Context, *Empty) (*GetProfileResponse, error)

	CreateApplication(context.Context, *CreateApplicationRequest) (*ApplicationResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	GetApplication(context.Context, *IDRequest) (*ApplicationResponse, error)
	UpdateApplication(context.Context, *UpdateApplicationRequest) (*ApplicationResponse, error)
	DeleteApplication(context.Context, *IDRequest) (*Empty, error)
	ApplicationStats(context.Context, *Empty) (*ApplicationStatsResponse, error)
}

// UnimplementedTrackerServiceServer can be embedded to stay forward compatible.
type UnimplementedTrackerServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedTrackerServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedTrackerServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedTrackerServiceServer) Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error) {
	return nil, unimplemented("Refresh")
}
func (UnimplementedTrackerServiceServer) Logout(context.Context, *Empty) (*Empty, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedTrackerServiceServer) GetProfile(context.Context, *Empty) (*GetProfileResponse, error) {
	return nil, unimplemented("GetProfile")
}
func (UnimplementedTrackerServiceServer) CreateApplication(context.Context, *CreateApplicationRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("CreateApplication")
}
func (UnimplementedTrackerServiceServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, unimplemented("ListApplications")
}
func (UnimplementedTrackerServiceServer) GetApplication(context.Context, *IDRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("GetApplication")
}
func (UnimplementedTrackerServiceServer) UpdateApplication(context.Context, *UpdateApplicationRequest) (*ApplicationResponse, error) {
	return nil, unimplemented("UpdateApplication")
}
func (UnimplementedTrackerServiceServer) DeleteApplication(context.Context, *IDRequest) (*Empty, error) {
	return nil, unimplemented("DeleteApplication")
}
func (UnimplementedTrackerServiceServer) ApplicationStats(context.Context, *Empty) (*ApplicationStatsResponse, error) {
	return nil, unimplemented("ApplicationStats")
}

// method adapts a typed server method to grpc.MethodDesc. Req is the request
// struct type; *Req must implement Message.
func method[Req any, Resp Message](name string, call func(TrackerServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, ic grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(TrackerServiceServer)
			if ic == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return ic(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Register", TrackerServiceServer.Register),
		method("Login", TrackerServiceServer.Login),
		method("Refresh", TrackerServiceServer.Refresh),
		method("Logout", TrackerServiceServer.Logout),
		method("GetProfile", TrackerServiceServer.GetProfile),
		method("CreateApplication", TrackerServiceServer.CreateApplication),
		method("ListApplications", TrackerServiceServer.ListApplications),
		method("GetApplication", TrackerServiceServer.GetApplication),
		method("UpdateApplication", TrackerServiceServer.UpdateApplication),
		method("DeleteApplication", TrackerServiceServer.DeleteApplication),
		method("ApplicationStats", TrackerServiceServer.ApplicationStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tracker/v1/tracker.proto",
}

func RegisterTrackerServiceServer(s grpc.ServiceRegistrar, srv TrackerServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
