// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package control

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc"
)

type fakeStream struct {
	mu            sync.Mutex
	notifications []rpc.Notification
}

func (s *fakeStream) Recv() (rpc.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notifications) == 0 {
		return rpc.Notification{}, io.EOF
	}
	n := s.notifications[0]
	s.notifications = s.notifications[1:]
	return n, nil
}

type fakeControllerClient struct {
	stream *fakeStream
}

func (f *fakeControllerClient) Register(context.Context, uint32) (rpc.UpdateStream, error) {
	return f.stream, nil
}

func (f *fakeControllerClient) GetPingCommand(context.Context, uint32, string) (model.CommandSet[model.PingCommand], error) {
	return model.CommandSet[model.PingCommand]{}, nil
}
func (f *fakeControllerClient) GetTCPPingCommand(context.Context, uint32, string) (model.CommandSet[model.TCPPingCommand], error) {
	return model.CommandSet[model.TCPPingCommand]{}, nil
}
func (f *fakeControllerClient) GetFPingCommand(context.Context, uint32, string) (model.FPingCommand, error) {
	return model.FPingCommand{}, nil
}

func TestChannelForwardsNotificationToMatchingSubscriber(t *testing.T) {
	stream := &fakeStream{notifications: []rpc.Notification{
		{CommandType: model.CommandTypePing, Version: "v1"},
		{CommandType: model.CommandTypeTCPPing, Version: "v2"},
	}}
	c := New(1, zap.NewNop(), &fakeControllerClient{stream: stream})
	c.Clock = clock.NewMock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pingCh := c.Subscribe(model.CommandTypePing)
	tcpCh := c.Subscribe(model.CommandTypeTCPPing)

	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	select {
	case n := <-pingCh:
		assert.Equal(t, "v1", n.Version)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ping notification")
	}

	select {
	case n := <-tcpCh:
		assert.Equal(t, "v2", n.Version)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tcp ping notification")
	}

	cancel()
	<-done
}

func TestSendDroppingOldestDropsWhenFull(t *testing.T) {
	c := New(1, zap.NewNop(), &fakeControllerClient{})
	ch := make(chan rpc.Notification, 1)
	ch <- rpc.Notification{Version: "stale"}

	c.sendDroppingOldest(context.Background(), ch, rpc.Notification{Version: "fresh"})

	require.Len(t, ch, 1)
	assert.Equal(t, "fresh", (<-ch).Version)
}
