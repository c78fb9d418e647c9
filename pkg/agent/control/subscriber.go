// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package control

import (
	"context"

	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc"
)

// ForwardPingCommands subscribes to PING notifications, fetches the
// corresponding command set, and pushes it onto out. It runs until ctx is
// done, backpressuring on a full out channel by design (spec.md §5: "a full
// channel backpressures the control channel, which is acceptable because
// command sets are superseded anyway").
func ForwardPingCommands(ctx context.Context, c *Channel, out chan<- model.CommandSet[model.PingCommand]) {
	notifications := c.Subscribe(model.CommandTypePing)
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-notifications:
			c.Log.Info("fetching ping commands", zap.String("version", n.Version))
			set, err := c.Client.GetPingCommand(ctx, c.AgentID, n.Version)
			if err != nil {
				c.Log.Warn("get ping command failed", zap.Error(err))
				continue
			}
			select {
			case out <- set:
			case <-ctx.Done():
				return
			}
		}
	}
}

// ForwardTCPPingCommands is ForwardPingCommands's TCP counterpart.
func ForwardTCPPingCommands(ctx context.Context, c *Channel, out chan<- model.CommandSet[model.TCPPingCommand]) {
	notifications := c.Subscribe(model.CommandTypeTCPPing)
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-notifications:
			c.Log.Info("fetching tcp ping commands", zap.String("version", n.Version))
			set, err := c.Client.GetTCPPingCommand(ctx, c.AgentID, n.Version)
			if err != nil {
				c.Log.Warn("get tcp ping command failed", zap.Error(err))
				continue
			}
			select {
			case out <- set:
			case <-ctx.Done():
				return
			}
		}
	}
}

// ForwardFPingCommands is ForwardPingCommands's fast-ping counterpart; the
// fast-ping engine consumes bare model.FPingCommand values rather than a
// CommandSet since each burst is a one-shot (spec.md §4.5).
func ForwardFPingCommands(ctx context.Context, c *Channel, out chan<- model.FPingCommand) {
	notifications := c.Subscribe(model.CommandTypeFPing)
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-notifications:
			c.Log.Info("fetching fping commands", zap.String("version", n.Version))
			command, err := c.Client.GetFPingCommand(ctx, c.AgentID, n.Version)
			if err != nil {
				c.Log.Warn("get fping command failed", zap.Error(err))
				continue
			}
			select {
			case out <- command:
			case <-ctx.Done():
				return
			}
		}
	}
}
