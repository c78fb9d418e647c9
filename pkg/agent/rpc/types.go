// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package rpc defines the agent's typed view of the controller and
// collector RPC surfaces (spec.md §6), independent of the concrete gRPC
// transport. pkg/agent/rpc/grpcclient supplies the real implementation;
// pkg/agent/control and pkg/agent/reporter depend only on these interfaces,
// so they can be driven by fakes in tests.
package rpc

import (
	"context"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
)

// Notification is one controller-pushed "update available" event.
type Notification struct {
	CommandType model.CommandType
	Version     string
}

// UpdateStream is the client side of the long-lived Register subscription.
type UpdateStream interface {
	Recv() (Notification, error)
}

// ControllerClient is the agent's view of the controller's RPC surface.
type ControllerClient interface {
	Register(ctx context.Context, agentID uint32) (UpdateStream, error)
	GetPingCommand(ctx context.Context, agentID uint32, version string) (model.CommandSet[model.PingCommand], error)
	GetTCPPingCommand(ctx context.Context, agentID uint32, version string) (model.CommandSet[model.TCPPingCommand], error)
	GetFPingCommand(ctx context.Context, agentID uint32, version string) (model.FPingCommand, error)
}

// CollectorClient is the agent's view of the collector's RPC surface.
type CollectorClient interface {
	PingReport(ctx context.Context, agentID uint32, results []model.Result) error
	TCPPingReport(ctx context.Context, agentID uint32, results []model.Result) error
	FPingReport(ctx context.Context, agentID uint32, set model.FPingResultSet) error
}
