// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package control implements the control channel (spec.md §4.1): a
// long-lived subscription to the controller, fanned out to the three
// probing engines. Grounded on original_source/src/commander.rs, restated
// as a Go broadcast-channel fan-out instead of tokio::sync::broadcast.
package control

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc"
)

// broadcastCapacity is the per-subscriber lag buffer spec.md §4.1 requires
// ("sized to absorb at least 16 pending messages").
const broadcastCapacity = 16

// reconnectMinSeconds/reconnectMaxSeconds bound the uniform-random
// re-registration backoff (spec.md §4.1, §7).
const (
	reconnectMinSeconds = 5
	reconnectMaxSeconds = 15
)

// Channel owns the controller subscription and fans notifications out to
// up to three probe-kind subscribers.
type Channel struct {
	AgentID uint32
	Log     *zap.Logger
	Client  rpc.ControllerClient
	Clock   clock.Clock

	// OnNotificationDropped, if set, is called whenever a lagging
	// subscriber's oldest notification is dropped; cmd/agent wires this
	// to the notifications_dropped_total metric.
	OnNotificationDropped func(model.CommandType)

	subscribers [3]chan rpc.Notification
}

// New builds a Channel with one buffered notification channel per probe
// kind. The channels are created here and kept across re-registrations, so
// Subscribe returns the same channel whether it is called before or after
// Run starts.
func New(agentID uint32, log *zap.Logger, client rpc.ControllerClient) *Channel {
	c := &Channel{AgentID: agentID, Log: log, Client: client, Clock: clock.New()}
	for i := range c.subscribers {
		c.subscribers[i] = make(chan rpc.Notification, broadcastCapacity)
	}
	return c
}

// Subscribe returns the notification stream for one command kind.
func (c *Channel) Subscribe(kind model.CommandType) <-chan rpc.Notification {
	return c.subscribers[kind]
}

// Run registers with the controller and forwards notifications forever,
// re-registering with jittered backoff on any stream error (spec.md §4.1).
// It returns only when ctx is done.
func (c *Channel) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		c.Log.Info("registering with controller", zap.Uint32("agentID", c.AgentID))
		stream, err := c.Client.Register(ctx, c.AgentID)
		if err != nil {
			c.Log.Warn("register failed", zap.Error(err))
			c.waitBeforeReconnect(ctx)
			continue
		}

		c.Log.Info("register succeeded, forwarding update notifications")
		if err := c.forward(ctx, stream); err != nil && ctx.Err() == nil {
			c.Log.Warn("control stream broken, re-registering", zap.Error(err))
			c.waitBeforeReconnect(ctx)
		}
	}
}

// forward drains one subscription's notification stream, routing each one
// to the channel of the subscriber for its command type only, dropping the
// oldest pending entry on a full channel and logging a warning for each
// dropped entry (spec.md §4.1: "slow consumers that lag MUST drop their
// oldest unread notifications").
func (c *Channel) forward(ctx context.Context, stream rpc.UpdateStream) error {
	for {
		notification, err := stream.Recv()
		if err == io.EOF {
			return err
		}
		if err != nil {
			return err
		}

		c.Log.Info("received update notification",
			zap.Stringer("commandType", notification.CommandType), zap.String("version", notification.Version))

		ch := c.subscribers[notification.CommandType]
		c.sendDroppingOldest(ctx, ch, notification)
	}
}

func (c *Channel) sendDroppingOldest(ctx context.Context, ch chan rpc.Notification, notification rpc.Notification) {
	select {
	case ch <- notification:
		return
	default:
	}

	select {
	case <-ch:
		c.Log.Warn("subscriber lagged, dropped oldest notification", zap.Stringer("commandType", notification.CommandType))
		if c.OnNotificationDropped != nil {
			c.OnNotificationDropped(notification.CommandType)
		}
	default:
	}

	select {
	case ch <- notification:
	case <-ctx.Done():
	}
}

func (c *Channel) waitBeforeReconnect(ctx context.Context) {
	wait := reconnectBackoff()
	c.Log.Info("waiting before re-registration", zap.Duration("wait", wait))

	timer := c.Clock.Timer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// reconnectBackoff picks a uniform-random wait in [5s, 15s] (spec.md §4.1,
// §7), wide enough to avoid synchronized reconnects across a fleet.
func reconnectBackoff() time.Duration {
	secs := reconnectMinSeconds + rand.Intn(reconnectMaxSeconds-reconnectMinSeconds+1)
	return time.Duration(secs) * time.Second
}
