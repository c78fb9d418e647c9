// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package fpingengine implements the Fast Ping Engine (spec.md §4.5): a
// one-shot concurrent burst of single ICMP probes fired on demand, as
// opposed to icmpengine's long-lived per-target reconciled tasks.
package fpingengine

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/idgen"
	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rawsocket"
)

// Engine runs fast-ping bursts to completion as commands arrive.
type Engine struct {
	Clock clock.Clock
	Log   *zap.Logger

	results chan<- model.FPingResultSet
}

// New builds an Engine that pushes aggregated result sets onto results.
func New(log *zap.Logger, results chan<- model.FPingResultSet) *Engine {
	return &Engine{Clock: clock.New(), Log: log, results: results}
}

// Run consumes fast-ping commands from commands until ctx is done or
// commands is closed. Each command is handled in its own goroutine so a
// slow burst never delays the next one's arrival (spec.md §4.5: bursts are
// fire-and-forget, unlike the reconciled engines).
func (e *Engine) Run(ctx context.Context, commands <-chan model.FPingCommand) {
	for {
		select {
		case <-ctx.Done():
			return
		case command, ok := <-commands:
			if !ok {
				return
			}
			go e.runBurst(command)
		}
	}
}

// runBurst fires one probe per target concurrently, waits for all of them
// to finish (success, timeout, or transient failure alike all count as
// "finished" so the burst cannot hang on one bad target), and emits a
// single aggregated result set. Each result is written at its target's
// index, so the set lists results in the order of command.IPs.
func (e *Engine) runBurst(command model.FPingCommand) {
	log := e.Log.With(zap.String("version", command.Version))
	log.Info("starting fast ping burst", zap.Int("targets", len(command.IPs)))

	results := make([]model.FPingResult, len(command.IPs))
	var wg sync.WaitGroup
	wg.Add(len(command.IPs))

	for i, ip := range command.IPs {
		i, ip := i, ip
		go func() {
			defer wg.Done()
			results[i] = e.probeOne(log, ip, command.Timeout)
		}()
	}

	wg.Wait()

	e.results <- model.FPingResultSet{Version: command.Version, Results: results}
}

// probeOne runs a single send/receive round for one target. Any failure
// short of a reply, including a socket that cannot be opened, is reported
// as a timeout: a fast-ping burst has no retry or respawn path, so a
// degraded result is preferable to silently dropping the target from the
// aggregated set (spec.md §4.5, §7).
func (e *Engine) probeOne(log *zap.Logger, ip netip.Addr, timeout time.Duration) model.FPingResult {
	target := ip.String()
	log = log.With(zap.String("target", target), zap.String("spanID", idgen.NewSpanID()))

	conn, err := rawsocket.Listen(ip)
	if err != nil {
		log.Error("open icmp socket failed for fast ping target", zap.Error(err))
		return model.FPingResult{Target: target, IsTimeout: true}
	}
	defer conn.Close()

	const seq = uint16(1)
	sendAt := e.Clock.Now()
	deadline := sendAt.Add(timeout)

	if err := conn.SendRequest(deadline, seq, ip); err != nil {
		log.Warn("send icmp echo request failed for fast ping target", zap.Error(err))
		return model.FPingResult{Target: target, IsTimeout: true}
	}

	if _, err := conn.RecvReply(deadline, seq); err != nil {
		return model.FPingResult{Target: target, IsTimeout: true}
	}

	rtt := e.Clock.Now().Sub(sendAt)
	return model.FPingResult{Target: target, IsTimeout: false, RTT: &rtt}
}
