// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package reconcile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestApplyWithNoCommandsStaysIdle(t *testing.T) {
	spawn := func(_ context.Context, _ int, _ <-chan struct{}, _ chan<- struct{}) {
		t.Fatal("spawn must not be called for an empty command set")
	}

	r := NewReconciler[int](zap.NewNop(), spawn)
	r.Clock = clock.NewMock()

	r.Apply(context.Background(), nil)

	assert.Equal(t, int64(0), r.TaskCount())
}

func TestStartSingleTaskAfterSmoothTick(t *testing.T) {
	mock := clock.NewMock()
	started := make(chan struct{}, 1)

	spawn := func(_ context.Context, _ int, exitSignal <-chan struct{}, exited chan<- struct{}) {
		started <- struct{}{}
		<-exitSignal
		exited <- struct{}{}
	}

	r := NewReconciler[int](zap.NewNop(), spawn)
	r.Clock = mock

	go r.Apply(context.Background(), []int{1})

	// With N=1 the smooth tick is a full second; the task must not exist
	// before that tick fires.
	require.Never(t, func() bool { return r.TaskCount() == 1 }, 20*time.Millisecond, 5*time.Millisecond)

	mock.Add(time.Second)

	require.Eventually(t, func() bool { return r.TaskCount() == 1 }, time.Second, time.Millisecond)
	select {
	case <-started:
	default:
		t.Fatal("expected task to have started")
	}
}

func TestStartSpreadsLargeNAcrossOneSecond(t *testing.T) {
	const n = 10000
	mock := clock.NewMock()
	start := mock.Now()

	var mu sync.Mutex
	timestamps := make([]time.Duration, 0, n)

	spawn := func(_ context.Context, _ int, exitSignal <-chan struct{}, exited chan<- struct{}) {
		mu.Lock()
		timestamps = append(timestamps, mock.Now().Sub(start))
		mu.Unlock()
		<-exitSignal
		exited <- struct{}{}
	}

	r := NewReconciler[int](zap.NewNop(), spawn)
	r.Clock = mock

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.Apply(ctx, make([]int, n))

	require.Never(t, func() bool { return r.TaskCount() == int64(n) }, 50*time.Millisecond, 5*time.Millisecond)

	mock.Add(time.Second)

	require.Eventually(t, func() bool { return r.TaskCount() == int64(n) }, 2*time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, timestamps, n)
	assert.Equal(t, time.Second/n, timestamps[0])
	assert.InDelta(t, float64(time.Second), float64(timestamps[n-1]), float64(2*time.Millisecond))

	distinct := make(map[time.Duration]struct{}, n)
	for _, ts := range timestamps {
		distinct[ts] = struct{}{}
	}
	assert.Greater(t, len(distinct), 1, "tasks should start at spread-out times, not all at once")
}

func TestDrainWaitsForExactlyNAcksBeforeTransitioning(t *testing.T) {
	mock := clock.NewMock()

	var mu sync.Mutex
	spawnIndex := 0
	releaseLast := make(chan struct{})

	spawn := func(_ context.Context, _ int, exitSignal <-chan struct{}, exited chan<- struct{}) {
		mu.Lock()
		idx := spawnIndex
		spawnIndex++
		mu.Unlock()

		<-exitSignal
		if idx == 2 {
			<-releaseLast
		}
		exited <- struct{}{}
	}

	r := NewReconciler[int](zap.NewNop(), spawn)
	r.Clock = mock

	ctx := context.Background()
	go r.Apply(ctx, []int{1, 2, 3})

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return r.TaskCount() == 3 }, time.Second, time.Millisecond)

	drainDone := make(chan struct{})
	go func() {
		r.Apply(ctx, nil)
		close(drainDone)
	}()

	require.Never(t, func() bool {
		select {
		case <-drainDone:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond, "drain must not complete before all tasks ack")

	close(releaseLast)

	require.Eventually(t, func() bool {
		select {
		case <-drainDone:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	assert.Equal(t, int64(0), r.TaskCount())
}
