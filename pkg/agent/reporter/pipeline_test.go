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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
)

func TestPipelineFlushesOnBatchSize(t *testing.T) {
	var mu sync.Mutex
	var sent [][]model.Result

	p := NewPipeline[model.Result](zap.NewNop(), func(_ context.Context, batch []model.Result) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, batch)
		return nil
	})
	p.Clock = clock.NewMock()

	in := make(chan model.Result, BatchSize+1)
	for i := 0; i < BatchSize; i++ {
		in <- model.NewTimeoutResult("t", time.Unix(0, 0))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, in)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1 && len(sent[0]) == BatchSize
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestPipelineParksFailedBatchAndRetries(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	mock := clock.NewMock()
	p := NewPipeline[model.Result](zap.NewNop(), func(_ context.Context, _ []model.Result) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return errors.New("collector unavailable")
		}
		return nil
	})
	p.Clock = mock

	in := make(chan model.Result, 1)
	in <- model.NewTimeoutResult("t", time.Unix(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, in)
		close(done)
	}()

	// First flush happens on the 1s ticker.
	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 1
	}, time.Second, time.Millisecond)

	// Parked retry fires after the randomized [10s,15s] backoff.
	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, 2, attempts)
}
