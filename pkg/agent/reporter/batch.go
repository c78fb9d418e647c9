// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package reporter

import (
	"context"

	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc"
)

// NewPingPipeline builds the batching pipeline for ICMP ping results.
func NewPingPipeline(log *zap.Logger, agentID uint32, client rpc.CollectorClient) *Pipeline[model.Result] {
	return NewPipeline[model.Result](log, func(ctx context.Context, batch []model.Result) error {
		return client.PingReport(ctx, agentID, batch)
	})
}

// NewTCPPingPipeline builds the batching pipeline for TCP ping results.
func NewTCPPingPipeline(log *zap.Logger, agentID uint32, client rpc.CollectorClient) *Pipeline[model.Result] {
	return NewPipeline[model.Result](log, func(ctx context.Context, batch []model.Result) error {
		return client.TCPPingReport(ctx, agentID, batch)
	})
}
