// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package icmpengine implements the ICMP Ping Engine (spec.md §4.3): one
// probing task per target, each owning its own rawsocket.Conn, reconciled
// against incoming command sets via pkg/agent/reconcile.
package icmpengine

import (
	"context"
	"net/netip"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/idgen"
	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rawsocket"
	"github.com/DBN-DEV/ping-agent/pkg/agent/reconcile"
)

// Engine runs the ICMP ping engine's reconciliation loop.
type Engine struct {
	Clock clock.Clock
	Log   *zap.Logger

	reconciler *reconcile.Reconciler[model.PingCommand]
	results    chan<- model.Result
}

// New builds an Engine that pushes results onto results (capacity 1024 per
// spec.md §5; the caller owns channel construction so the reporter wiring
// in cmd/agent stays in one place).
func New(log *zap.Logger, results chan<- model.Result) *Engine {
	e := &Engine{Clock: clock.New(), Log: log, results: results}
	e.reconciler = reconcile.NewReconciler[model.PingCommand](log, e.runTask)
	e.reconciler.Clock = e.Clock
	return e
}

// SetTaskStartedHook wires a callback invoked once per spawned probing
// task, for cmd/agent's telemetry wiring.
func (e *Engine) SetTaskStartedHook(fn func()) {
	e.reconciler.OnTaskStarted = fn
}

// Run consumes command sets from commands until ctx is done, reconciling the
// task population for each one (spec.md §4.2).
func (e *Engine) Run(ctx context.Context, commands <-chan model.CommandSet[model.PingCommand]) {
	for {
		select {
		case <-ctx.Done():
			return
		case set, ok := <-commands:
			if !ok {
				e.Log.Panic("icmp command channel closed, this must never happen")
			}
			e.Log.Info("applying ping command set",
				zap.String("version", set.Version), zap.Int("targets", len(set.Commands)))
			e.reconciler.Apply(ctx, set.Commands)
		}
	}
}

// runTask is the per-target probing task loop (spec.md §4.2's common
// per-probe-task loop, specialized for ICMP per spec.md §4.3).
func (e *Engine) runTask(ctx context.Context, command model.PingCommand, exitSignal <-chan struct{}, exited chan<- struct{}) {
	log := e.Log.With(zap.String("target", command.Target()))

	conn, err := rawsocket.Listen(command.IP)
	if err != nil {
		// Per-target fatal: socket construction failed. Log and do not
		// respawn; the engine leaves this target unprobed until the next
		// command set (spec.md §4.2 failure semantics, §7).
		log.Error("open icmp socket failed, task exiting without respawn", zap.Error(err))
		exited <- struct{}{}
		return
	}
	defer conn.Close()

	ticker := e.Clock.Ticker(command.Interval)
	defer ticker.Stop()

	seq := uint16(0)
	// probeAndCheckExit fires one probe and reports whether the task should
	// exit afterward. The task's own interval governs every tick after this
	// one (spec.md §4.2: "each task, once started, uses its own interval
	// thereafter") — the first probe fires immediately on spawn rather than
	// waiting a further command.Interval on top of the smooth-start delay
	// reconcile.Reconciler.start already paid.
	probeAndCheckExit := func() bool {
		seq = nextSeq(seq)
		if result, ok := e.probeOnce(conn, log, command.IP, command.Target(), command.Timeout, seq); ok {
			e.results <- result
		}

		select {
		case <-exitSignal:
			exited <- struct{}{}
			return true
		default:
			return false
		}
	}

	if probeAndCheckExit() {
		return
	}

	for {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}

		if probeAndCheckExit() {
			return
		}
	}
}

// nextSeq advances the 16-bit sequence counter, wrapping at 2^16 and
// skipping zero (spec.md §4.3, §8).
func nextSeq(seq uint16) uint16 {
	seq++
	if seq == 0 {
		seq = 1
	}
	return seq
}

// probeOnce sends one echo request and awaits the matching reply, producing
// exactly one Result (spec.md §4.2 invariant: is_timeout XOR rtt present).
// ok is false for a transient send failure, per spec.md §4.2: "produces no
// result for that round".
func (e *Engine) probeOnce(conn *rawsocket.Conn, log *zap.Logger, ip netip.Addr, target string, timeout time.Duration, seq uint16) (result model.Result, ok bool) {
	log = log.With(zap.String("spanID", idgen.NewSpanID()), zap.Uint16("seq", seq))

	sendAt := e.Clock.Now()
	deadline := sendAt.Add(timeout)

	if err := conn.SendRequest(deadline, seq, ip); err != nil {
		log.Warn("send icmp echo request failed, no result this round", zap.Error(err))
		return model.Result{}, false
	}

	stale, err := conn.RecvReply(deadline, seq)
	for _, s := range stale {
		log.Info("ignoring stale icmp reply", zap.Uint16("staleSeq", s))
	}
	if err != nil {
		return model.NewTimeoutResult(target, sendAt), true
	}

	return model.NewSuccessResult(target, sendAt, e.Clock.Now().Sub(sendAt)), true
}
