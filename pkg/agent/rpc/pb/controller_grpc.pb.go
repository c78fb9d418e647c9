// Code generated by protoc-gen-go-grpc from controller.proto; hand-maintained
// here since this repository's build environment has no protoc.

package pb

import (
	"context"

	"google.golang.org/grpc"
)

const (
	Controller_Register_FullMethodName         = "/ping_agent.Controller/Register"
	Controller_GetPingCommand_FullMethodName    = "/ping_agent.Controller/GetPingCommand"
	Controller_GetTcpPingCommand_FullMethodName = "/ping_agent.Controller/GetTcpPingCommand"
	Controller_GetFpingCommand_FullMethodName   = "/ping_agent.Controller/GetFpingCommand"
)

// ControllerClient is the client API for the Controller service.
type ControllerClient interface {
	Register(ctx context.Context, in *RegisterReq, opts ...grpc.CallOption) (Controller_RegisterClient, error)
	GetPingCommand(ctx context.Context, in *CommandReq, opts ...grpc.CallOption) (*PingCommandsResp, error)
	GetTcpPingCommand(ctx context.Context, in *CommandReq, opts ...grpc.CallOption) (*TcpPingCommandsResp, error)
	GetFpingCommand(ctx context.Context, in *CommandReq, opts ...grpc.CallOption) (*FpingCommandsResp, error)
}

type controllerClient struct {
	cc grpc.ClientConnInterface
}

// NewControllerClient builds a ControllerClient bound to cc.
func NewControllerClient(cc grpc.ClientConnInterface) ControllerClient {
	return &controllerClient{cc}
}

func (c *controllerClient) Register(ctx context.Context, in *RegisterReq, opts ...grpc.CallOption) (Controller_RegisterClient, error) {
	stream, err := c.cc.NewStream(ctx, &grpc.StreamDesc{StreamName: "Register", ServerStreams: true}, Controller_Register_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &controllerRegisterClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// Controller_RegisterClient is the server-streaming handle returned by
// Register: one UpdateCommandResp per controller-pushed notification.
type Controller_RegisterClient interface {
	Recv() (*UpdateCommandResp, error)
	grpc.ClientStream
}

type controllerRegisterClient struct {
	grpc.ClientStream
}

func (x *controllerRegisterClient) Recv() (*UpdateCommandResp, error) {
	m := new(UpdateCommandResp)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *controllerClient) GetPingCommand(ctx context.Context, in *CommandReq, opts ...grpc.CallOption) (*PingCommandsResp, error) {
	out := new(PingCommandsResp)
	if err := c.cc.Invoke(ctx, Controller_GetPingCommand_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) GetTcpPingCommand(ctx context.Context, in *CommandReq, opts ...grpc.CallOption) (*TcpPingCommandsResp, error) {
	out := new(TcpPingCommandsResp)
	if err := c.cc.Invoke(ctx, Controller_GetTcpPingCommand_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) GetFpingCommand(ctx context.Context, in *CommandReq, opts ...grpc.CallOption) (*FpingCommandsResp, error) {
	out := new(FpingCommandsResp)
	if err := c.cc.Invoke(ctx, Controller_GetFpingCommand_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
