// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package reporter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
)

func TestFastPingPipelineSendsEachSetImmediately(t *testing.T) {
	var mu sync.Mutex
	var sent []model.FPingResultSet

	p := &FastPingPipeline{
		Clock: clock.NewMock(),
		Log:   zap.NewNop(),
		Send: func(_ context.Context, set model.FPingResultSet) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, set)
			return nil
		},
	}

	in := make(chan model.FPingResultSet, 1)
	in <- model.FPingResultSet{Version: "v1"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, in)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestFastPingPipelineParksOnFailure(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	mock := clock.NewMock()

	p := &FastPingPipeline{
		Clock: mock,
		Log:   zap.NewNop(),
		Send: func(_ context.Context, _ model.FPingResultSet) error {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			if attempts == 1 {
				return errors.New("collector unavailable")
			}
			return nil
		},
	}

	in := make(chan model.FPingResultSet, 1)
	in <- model.FPingResultSet{Version: "v1"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, in)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 1
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}
