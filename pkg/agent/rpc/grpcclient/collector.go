// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package grpcclient

import (
	"context"

	"google.golang.org/grpc"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc/pb"
)

// CollectorClient adapts pb.CollectorClient to rpc.CollectorClient.
type CollectorClient struct {
	pb pb.CollectorClient
}

// NewCollectorClient wraps conn for the collector service.
func NewCollectorClient(conn grpc.ClientConnInterface) *CollectorClient {
	return &CollectorClient{pb: pb.NewCollectorClient(conn)}
}

func (c *CollectorClient) PingReport(ctx context.Context, agentID uint32, results []model.Result) error {
	req := &pb.PingReportReq{AgentId: agentID, Results: toResultItems(results)}
	return quickRetry(ctx, func() error {
		_, err := c.pb.PingReport(ctx, req)
		return err
	})
}

func (c *CollectorClient) TCPPingReport(ctx context.Context, agentID uint32, results []model.Result) error {
	req := &pb.TcpPingReportReq{AgentId: agentID, Results: toResultItems(results)}
	return quickRetry(ctx, func() error {
		_, err := c.pb.TcpPingReport(ctx, req)
		return err
	})
}

func (c *CollectorClient) FPingReport(ctx context.Context, agentID uint32, set model.FPingResultSet) error {
	items := make([]*pb.FpingResultItem, len(set.Results))
	for i, r := range set.Results {
		wire := r.ToWire()
		items[i] = &pb.FpingResultItem{Target: wire.Target, IsTimeout: wire.IsTimeout, RttMicros: wire.RTTMicros}
	}
	req := &pb.FpingReportReq{AgentId: agentID, Version: set.Version, Results: items}
	return quickRetry(ctx, func() error {
		_, err := c.pb.FpingReport(ctx, req)
		return err
	})
}

func toResultItems(results []model.Result) []*pb.ResultItem {
	items := make([]*pb.ResultItem, len(results))
	for i, r := range results {
		wire := r.ToWire()
		items[i] = &pb.ResultItem{
			Target:    wire.Target,
			IsTimeout: wire.IsTimeout,
			RttMicros: wire.RTTMicros,
			SendAt:    wire.SendAtUnix,
		}
	}
	return items
}
