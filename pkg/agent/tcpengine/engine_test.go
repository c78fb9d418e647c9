// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package tcpengine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
)

type fakeDialer struct {
	conn net.Conn
	err  error
	// blockUntilCancel makes DialContext wait for ctx to be done and
	// return ctx.Err(), simulating a connect that never completes.
	blockUntilCancel bool
}

func (f *fakeDialer) DialContext(ctx context.Context, _, _ string) (net.Conn, error) {
	if f.blockUntilCancel {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.conn, f.err
}

type nopConn struct{ net.Conn }

func (nopConn) Close() error { return nil }

func TestProbeOnceSuccess(t *testing.T) {
	e := &Engine{Clock: clock.NewMock(), Log: zap.NewNop(), Dialer: &fakeDialer{conn: nopConn{}}}
	cmd := model.TCPPingCommand{Address: "example.invalid:443", Timeout: time.Second}

	result, ok := e.probeOnce(context.Background(), zap.NewNop(), cmd)
	require.True(t, ok)
	assert.False(t, result.IsTimeout)
	assert.NotNil(t, result.RTT)
}

func TestProbeOnceTimeout(t *testing.T) {
	e := &Engine{Clock: clock.New(), Log: zap.NewNop(), Dialer: &fakeDialer{blockUntilCancel: true}}
	cmd := model.TCPPingCommand{Address: "example.invalid:443", Timeout: 10 * time.Millisecond}

	result, ok := e.probeOnce(context.Background(), zap.NewNop(), cmd)
	require.True(t, ok)
	assert.True(t, result.IsTimeout)
	assert.Nil(t, result.RTT)
}

func TestProbeOnceOtherErrorSkipsRound(t *testing.T) {
	e := &Engine{Clock: clock.NewMock(), Log: zap.NewNop(), Dialer: &fakeDialer{err: errors.New("connection refused")}}
	cmd := model.TCPPingCommand{Address: "example.invalid:443", Timeout: time.Second}

	_, ok := e.probeOnce(context.Background(), zap.NewNop(), cmd)
	assert.False(t, ok)
}

func TestRunTaskProbesImmediatelyThenUsesItsOwnInterval(t *testing.T) {
	mock := clock.NewMock()
	results := make(chan model.Result, 3)
	e := &Engine{Clock: mock, Log: zap.NewNop(), Dialer: &fakeDialer{conn: nopConn{}}, results: results}
	cmd := model.TCPPingCommand{Address: "example.invalid:443", Interval: time.Second, Timeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exitSignal := make(chan struct{})
	exited := make(chan struct{}, 1)
	go e.runTask(ctx, cmd, exitSignal, exited)

	// The first probe must not wait on command.Interval's ticker.
	require.Eventually(t, func() bool { return len(results) == 1 }, time.Second, time.Millisecond)

	// No second probe until the task's own interval elapses.
	assert.Never(t, func() bool { return len(results) == 2 }, 20*time.Millisecond, 5*time.Millisecond)

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return len(results) == 2 }, time.Second, time.Millisecond)

	// The exit signal is checked after each probe round, so the task
	// acknowledges it on its next tick.
	close(exitSignal)
	mock.Add(time.Second)
	require.Eventually(t, func() bool {
		select {
		case <-exited:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}
