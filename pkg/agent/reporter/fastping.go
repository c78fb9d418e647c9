// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package reporter

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc"
)

// FastPingPipeline delivers each aggregated fast-ping record as its own
// request: no batching, but the same park-slot retry semantics as the
// batched pipelines (spec.md §4.7: "Fast-ping has a simpler shape").
type FastPingPipeline struct {
	Clock  clock.Clock
	Log    *zap.Logger
	Send   func(ctx context.Context, set model.FPingResultSet) error
	parked *model.FPingResultSet

	OnReported func(count int)
	OnRetry    func()
}

// NewFastPingPipeline builds a FastPingPipeline reporting through client.
func NewFastPingPipeline(log *zap.Logger, agentID uint32, client rpc.CollectorClient) *FastPingPipeline {
	return &FastPingPipeline{
		Clock: clock.New(),
		Log:   log,
		Send: func(ctx context.Context, set model.FPingResultSet) error {
			return client.FPingReport(ctx, agentID, set)
		},
	}
}

// Run consumes aggregated result sets from in until ctx is done or in is
// closed, biased in the same priority order as Pipeline.Run: retry a
// parked set before ingesting the next one.
func (p *FastPingPipeline) Run(ctx context.Context, in <-chan model.FPingResultSet) {
	for {
		if p.parked != nil {
			if !p.retryParked(ctx) {
				return
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case set, ok := <-in:
			if !ok {
				return
			}
			p.send(ctx, set)
		}
	}
}

func (p *FastPingPipeline) send(ctx context.Context, set model.FPingResultSet) {
	if err := p.Send(ctx, set); err != nil {
		p.Log.Warn("report fping result failed, parking for retry", zap.String("version", set.Version), zap.Error(err))
		p.parked = &set
		return
	}
	if p.OnReported != nil {
		p.OnReported(len(set.Results))
	}
}

func (p *FastPingPipeline) retryParked(ctx context.Context) bool {
	wait := retryBackoff()
	timer := p.Clock.Timer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	if err := p.Send(ctx, *p.parked); err != nil {
		p.Log.Warn("parked fping result retry failed", zap.String("version", p.parked.Version), zap.Error(err))
		if p.OnRetry != nil {
			p.OnRetry()
		}
		return true
	}

	p.Log.Info("parked fping result delivered", zap.String("version", p.parked.Version))
	if p.OnReported != nil {
		p.OnReported(len(p.parked.Results))
	}
	p.parked = nil
	return true
}
