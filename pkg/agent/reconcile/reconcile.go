// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package reconcile implements the Idle/Active/Draining task-population
// protocol spec.md §4.2 describes, shared by the ICMP and TCP ping engines
// so the stop-all/start-all state machine and the smooth-start ticker exist
// in exactly one place.
//
// The original Rust implementation (original_source/src/detectors/
// ping_detector.rs and tcp_ping_detector.rs) duplicates this state machine
// once per engine; this package factors it out generically over the task
// type, parameterized by a spawn function the caller supplies.
package reconcile

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// SpawnFunc starts one probing task for a command and returns when the task
// observes the exit signal and has sent its last result. It must return
// promptly once exitSignal is closed (within one probe interval, per
// spec.md §5's shutdown latency bound).
type SpawnFunc[C any] func(ctx context.Context, command C, exitSignal <-chan struct{}, exited chan<- struct{})

// Reconciler drives the Idle -> Active -> Draining -> ... cycle for one
// engine's population of per-target tasks.
//
// Open Question (spec.md §9, decided in DESIGN.md): Reconciler does NOT
// short-circuit when a delivered CommandSet has the same Version as the
// last one applied. spec.md permits (does not require) restarting in that
// case; always restarting keeps this state machine free of an extra
// comparison path and is correct under the engine's at-least-once
// result-delivery guarantee.
type Reconciler[C any] struct {
	Clock clock.Clock
	Log   *zap.Logger
	Spawn SpawnFunc[C]

	// OnTaskStarted, if set, is called once per spawned task; cmd/agent
	// wires this to the probing_tasks_started_total metric.
	OnTaskStarted func()

	exitSignal chan struct{}
	exited     chan struct{}
	taskCount  atomic.Int64
}

// NewReconciler builds a Reconciler. log should already carry a component
// field identifying the owning engine.
func NewReconciler[C any](log *zap.Logger, spawn SpawnFunc[C]) *Reconciler[C] {
	return &Reconciler[C]{
		Clock: clock.New(),
		Log:   log,
		Spawn: spawn,
	}
}

// Apply transitions the task population to match commands, draining any
// currently running tasks first. It blocks until the new population has
// been fully started (smooth-started, per spec.md §4.2) or, if commands is
// empty, until the previous population has fully drained.
func (r *Reconciler[C]) Apply(ctx context.Context, commands []C) {
	r.drain()

	if len(commands) == 0 {
		r.Log.Info("command set empty, engine idle")
		return
	}

	r.start(ctx, commands)
}

// drain broadcasts the one-shot exit signal to every running task and waits
// for exactly N exit acknowledgements, per spec.md §4.2's Draining state.
func (r *Reconciler[C]) drain() {
	n := r.taskCount.Load()
	if n == 0 {
		return
	}

	r.Log.Info("draining probing tasks", zap.Int64("count", n))
	close(r.exitSignal)

	for completed := int64(0); completed < n; completed++ {
		<-r.exited
	}

	r.taskCount.Store(0)
	r.Log.Info("all probing tasks drained", zap.Int64("count", n))
}

// start spawns one task per command, smooth-starting them across one
// interval by ticking a helper clock every 1s/N (spec.md §4.2), so a
// restart of N targets does not fire every probe at the same instant.
func (r *Reconciler[C]) start(ctx context.Context, commands []C) {
	n := int64(len(commands))
	r.exitSignal = make(chan struct{})
	r.exited = make(chan struct{}, n)
	r.taskCount.Store(0)

	r.Log.Info("starting probing tasks", zap.Int64("count", n))

	smoothTick := time.Second / time.Duration(n)
	ticker := r.Clock.Ticker(smoothTick)
	defer ticker.Stop()

	for _, command := range commands {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
		if r.OnTaskStarted != nil {
			r.OnTaskStarted()
		}
		go r.Spawn(ctx, command, r.exitSignal, r.exited)
		r.taskCount.Inc()
	}

	r.Log.Info("all probing tasks started", zap.Int64("count", n))
}

// TaskCount reports the current number of running tasks, for tests and
// metrics.
func (r *Reconciler[C]) TaskCount() int64 {
	return r.taskCount.Load()
}
