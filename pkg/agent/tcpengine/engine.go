// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package tcpengine implements the TCP Ping Engine (spec.md §4.4), sharing
// the Idle/Active/Draining reconciliation protocol with icmpengine via
// pkg/agent/reconcile.
package tcpengine

import (
	"context"
	"net"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/idgen"
	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/reconcile"
)

// Dialer abstracts net.Dialer for unit testing without a real connect.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Engine runs the TCP ping engine's reconciliation loop.
type Engine struct {
	Clock  clock.Clock
	Log    *zap.Logger
	Dialer Dialer

	reconciler *reconcile.Reconciler[model.TCPPingCommand]
	results    chan<- model.Result
}

// New builds an Engine that pushes results onto results.
func New(log *zap.Logger, results chan<- model.Result) *Engine {
	e := &Engine{
		Clock:   clock.New(),
		Log:     log,
		Dialer:  &net.Dialer{},
		results: results,
	}
	e.reconciler = reconcile.NewReconciler[model.TCPPingCommand](log, e.runTask)
	e.reconciler.Clock = e.Clock
	return e
}

// SetTaskStartedHook wires a callback invoked once per spawned probing
// task, for cmd/agent's telemetry wiring.
func (e *Engine) SetTaskStartedHook(fn func()) {
	e.reconciler.OnTaskStarted = fn
}

// Run consumes command sets from commands until ctx is done (spec.md §4.2).
func (e *Engine) Run(ctx context.Context, commands <-chan model.CommandSet[model.TCPPingCommand]) {
	for {
		select {
		case <-ctx.Done():
			return
		case set, ok := <-commands:
			if !ok {
				e.Log.Panic("tcp ping command channel closed, this must never happen")
			}
			e.Log.Info("applying tcp ping command set",
				zap.String("version", set.Version), zap.Int("targets", len(set.Commands)))
			e.reconciler.Apply(ctx, set.Commands)
		}
	}
}

// runTask is the per-target probing task loop (spec.md §4.2, specialized
// for TCP-connect per spec.md §4.4: RTT is wall-clock time around connect,
// success means the connection was established and is then closed).
func (e *Engine) runTask(ctx context.Context, command model.TCPPingCommand, exitSignal <-chan struct{}, exited chan<- struct{}) {
	log := e.Log.With(zap.String("target", command.Target()))

	ticker := e.Clock.Ticker(command.Interval)
	defer ticker.Stop()

	// probeAndCheckExit fires one probe and reports whether the task should
	// exit afterward. The task's own interval governs every tick after this
	// one (spec.md §4.2: "each task, once started, uses its own interval
	// thereafter") — the first probe fires immediately on spawn rather than
	// waiting a further command.Interval on top of the smooth-start delay
	// reconcile.Reconciler.start already paid.
	probeAndCheckExit := func() bool {
		if result, ok := e.probeOnce(ctx, log, command); ok {
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

// probeOnce attempts one TCP connect, producing exactly one Result unless
// the connect error is neither success nor a timeout, in which case it logs
// and skips the round (spec.md §4.4).
func (e *Engine) probeOnce(ctx context.Context, log *zap.Logger, command model.TCPPingCommand) (result model.Result, ok bool) {
	log = log.With(zap.String("spanID", idgen.NewSpanID()))

	dialCtx, cancel := context.WithTimeout(ctx, command.Timeout)
	defer cancel()

	sendAt := e.Clock.Now()
	conn, err := e.Dialer.DialContext(dialCtx, "tcp", command.Address)
	elapsed := e.Clock.Now().Sub(sendAt)

	switch {
	case err == nil:
		_ = conn.Close()
		return model.NewSuccessResult(command.Target(), sendAt, elapsed), true
	case dialCtx.Err() != nil:
		return model.NewTimeoutResult(command.Target(), sendAt), true
	default:
		log.Warn("tcp connect failed, no result this round", zap.Error(err))
		return model.Result{}, false
	}
}
