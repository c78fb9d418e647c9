// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package grpcclient implements pkg/agent/rpc's client interfaces over real
// gRPC connections, grounded on original_source/src/commander.rs and
// reporter.rs: lazy-dialed channels, HTTP/2 keepalive, and the same
// agent_id/version request shape, adapted to Go's grpc-go stack.
package grpcclient

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc/pb"
)

// keepaliveInterval matches spec.md §5's recommended HTTP/2 keepalive ping.
const keepaliveInterval = 10 * time.Second

// Dial opens a lazy, non-blocking connection to target (spec.md §6's
// controller/collector URLs are already bare host:port gRPC targets by the
// time they reach here; config.Load strips the scheme). The connection is
// not verified until the first RPC, matching connect_lazy in the original
// Rust client.
func Dial(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                keepaliveInterval,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return conn, nil
}

// ControllerClient adapts pb.ControllerClient to rpc.ControllerClient,
// translating wire shapes to the internal model and dropping unparseable
// entries with a warning rather than failing the whole response (spec.md
// §4.1, §7).
type ControllerClient struct {
	Log *zap.Logger
	pb  pb.ControllerClient
}

// NewControllerClient wraps conn for the controller service.
func NewControllerClient(log *zap.Logger, conn grpc.ClientConnInterface) *ControllerClient {
	return &ControllerClient{Log: log, pb: pb.NewControllerClient(conn)}
}

func (c *ControllerClient) Register(ctx context.Context, agentID uint32) (rpc.UpdateStream, error) {
	stream, err := c.pb.Register(ctx, &pb.RegisterReq{AgentId: agentID})
	if err != nil {
		return nil, err
	}
	return &updateStream{stream}, nil
}

type updateStream struct {
	inner pb.Controller_RegisterClient
}

func (s *updateStream) Recv() (rpc.Notification, error) {
	msg, err := s.inner.Recv()
	if err != nil {
		return rpc.Notification{}, err
	}
	return rpc.Notification{CommandType: commandTypeFromPB(msg.CommandType), Version: msg.Version}, nil
}

func commandTypeFromPB(t pb.CommandType) model.CommandType {
	switch t {
	case pb.CommandType_TCP_PING:
		return model.CommandTypeTCPPing
	case pb.CommandType_FPING:
		return model.CommandTypeFPing
	default:
		return model.CommandTypePing
	}
}

func (c *ControllerClient) GetPingCommand(ctx context.Context, agentID uint32, version string) (model.CommandSet[model.PingCommand], error) {
	resp, err := c.pb.GetPingCommand(ctx, &pb.CommandReq{AgentId: agentID, Version: version})
	if err != nil {
		return model.CommandSet[model.PingCommand]{}, err
	}

	commands := make([]model.PingCommand, 0, len(resp.PingCommands))
	for _, item := range resp.PingCommands {
		ip, err := netip.ParseAddr(item.Ip)
		if err != nil {
			c.Log.Warn("drop ping command with unparseable ip", zap.String("ip", item.Ip), zap.Error(err))
			continue
		}
		commands = append(commands, model.PingCommand{
			IP:       ip,
			Interval: time.Duration(item.IntervalSecs) * time.Second,
			Timeout:  time.Duration(item.TimeoutMillis) * time.Millisecond,
		})
	}
	return model.CommandSet[model.PingCommand]{Version: resp.Version, Commands: commands}, nil
}

func (c *ControllerClient) GetTCPPingCommand(ctx context.Context, agentID uint32, version string) (model.CommandSet[model.TCPPingCommand], error) {
	resp, err := c.pb.GetTcpPingCommand(ctx, &pb.CommandReq{AgentId: agentID, Version: version})
	if err != nil {
		return model.CommandSet[model.TCPPingCommand]{}, err
	}

	commands := make([]model.TCPPingCommand, 0, len(resp.TcpPingCommands))
	for _, item := range resp.TcpPingCommands {
		commands = append(commands, model.TCPPingCommand{
			Address:  item.Address,
			Interval: time.Duration(item.IntervalSecs) * time.Second,
			Timeout:  time.Duration(item.TimeoutMillis) * time.Millisecond,
		})
	}
	return model.CommandSet[model.TCPPingCommand]{Version: resp.Version, Commands: commands}, nil
}

func (c *ControllerClient) GetFPingCommand(ctx context.Context, agentID uint32, version string) (model.FPingCommand, error) {
	resp, err := c.pb.GetFpingCommand(ctx, &pb.CommandReq{AgentId: agentID, Version: version})
	if err != nil {
		return model.FPingCommand{}, err
	}

	ips := make([]netip.Addr, 0, len(resp.FpingCommands))
	for _, item := range resp.FpingCommands {
		ip, err := netip.ParseAddr(item.Ip)
		if err != nil {
			c.Log.Warn("drop fping target with unparseable ip", zap.String("ip", item.Ip), zap.Error(err))
			continue
		}
		ips = append(ips, ip)
	}
	return model.FPingCommand{
		Version: resp.Version,
		IPs:     ips,
		Timeout: time.Duration(resp.TimeoutMillis) * time.Millisecond,
	}, nil
}
