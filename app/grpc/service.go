package grpc

import (
	"context"

	"github.com/vibast-solutions/ms-go-menu/app/types"

	gogrpc "google.golang.org/grpc"
)

const ServiceName = "menu.auth.v1.AuthService"

const (
	requestCodeMethod     = "/" + ServiceName + "/RequestCode"
	verifyCodeMethod      = "/" + ServiceName + "/VerifyCode"
	validateSessionMethod = "/" + ServiceName + "/ValidateSession"
	getMenuMethod         = "/" + ServiceName + "/GetMenu"
)

type AuthServiceServer interface {
	RequestCode(ctx context.Context, req *types.RequestCodeRequest) (*types.RequestCodeResponse, error)
	VerifyCode(ctx context.Context, req *types.VerifyCodeRequest) (*types.VerifyCodeResponse, error)
	ValidateSession(ctx context.Context, req *types.ValidateSessionRequest) (*types.ValidateSessionResponse, error)
	GetMenu(ctx context.Context, req *types.GetMenuRequest) (*types.MenuResponse, error)
}

func RegisterAuthServiceServer(s gogrpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

var AuthServiceDesc = gogrpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []gogrpc.MethodDesc{
		{
			MethodName: "RequestCode",
			Handler: unaryHandler(requestCodeMethod, func(srv AuthServiceServer, ctx context.Context, req *types.RequestCodeRequest) (any, error) {
				return srv.RequestCode(ctx, req)
			}),
		},
		{
			MethodName: "VerifyCode",
			Handler: unaryHandler(verifyCodeMethod, func(srv AuthServiceServer, ctx context.Context, req *types.VerifyCodeRequest) (any, error) {
				return srv.VerifyCode(ctx, req)
			}),
		},
		{
			MethodName: "ValidateSession",
			Handler: unaryHandler(validateSessionMethod, func(srv AuthServiceServer, ctx context.Context, req *types.ValidateSessionRequest) (any, error) {
				return srv.ValidateSession(ctx, req)
			}),
		},
		{
			MethodName: "GetMenu",
			Handler: unaryHandler(getMenuMethod, func(srv AuthServiceServer, ctx context.Context, req *types.GetMenuRequest) (any, error) {
				return srv.GetMenu(ctx, req)
			}),
		},
	},
	Streams:  []gogrpc.StreamDesc{},
	Metadata: "menu/auth/v1/auth.proto",
}

func unaryHandler[Req any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, gogrpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}

		info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthServiceClient calls the service with the Go request and response types.
type AuthServiceClient struct {
	cc gogrpc.ClientConnInterface
}

func NewAuthServiceClient(cc gogrpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) RequestCode(ctx context.Context, in *types.RequestCodeRequest, opts ...gogrpc.CallOption) (*types.RequestCodeResponse, error) {
	out := new(types.RequestCodeResponse)
	if err := c.invoke(ctx, requestCodeMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) VerifyCode(ctx context.Context, in *types.VerifyCodeRequest, opts ...gogrpc.CallOption) (*types.VerifyCodeResponse, error) {
	out := new(types.VerifyCodeResponse)
	if err := c.invoke(ctx, verifyCodeMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) ValidateSession(ctx context.Context, in *types.ValidateSessionRequest, opts ...gogrpc.CallOption) (*types.ValidateSessionResponse, error) {
	out := new(types.ValidateSessionResponse)
	if err := c.invoke(ctx, validateSessionMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) GetMenu(ctx context.Context, in *types.GetMenuRequest, opts ...gogrpc.CallOption) (*types.MenuResponse, error) {
	out := new(types.MenuResponse)
	if err := c.invoke(ctx, getMenuMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) invoke(ctx context.Context, method string, in, out any, opts []gogrpc.CallOption) error {
	opts = append([]gogrpc.CallOption{gogrpc.ForceCodec(Codec())}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
