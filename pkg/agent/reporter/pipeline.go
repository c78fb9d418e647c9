// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package reporter delivers probe results to the collector with batching,
// retry, and backpressure (spec.md §4.7). It redesigns
// original_source/src/reporter.rs's unbatched fire-and-forget loop into a
// batched, park-slot-backed pipeline per the specification's explicit
// redesign.
package reporter

import (
	"context"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// BatchSize is the flush threshold (spec.md §4.7).
const BatchSize = 1024

// FlushInterval is the periodic flush tick fired while the buffer is
// non-empty (spec.md §4.7).
const FlushInterval = time.Second

// RetryMinSeconds/RetryMaxSeconds bound the uniform-random post-failure
// backoff (spec.md §4.7, §7).
const (
	RetryMinSeconds = 10
	RetryMaxSeconds = 15
)

// sendFunc delivers one batch to the collector.
type sendFunc[T any] func(ctx context.Context, batch []T) error

// Pipeline runs one per-kind batching/retry/park-slot loop (spec.md §4.7).
// T is model.Result for the ping and tcp-ping kinds.
type Pipeline[T any] struct {
	Clock clock.Clock
	Log   *zap.Logger
	Send  sendFunc[T]

	// OnReported and OnRetry, if set, are called after a successful batch
	// delivery and after a failed retry of the parked batch respectively; cmd/agent
	// wires these to the results_reported_total and batch_retries_total
	// metrics.
	OnReported func(count int)
	OnRetry    func()

	buf    []T
	parked []T
}

// NewPipeline builds a Pipeline that calls send to deliver each batch.
func NewPipeline[T any](log *zap.Logger, send sendFunc[T]) *Pipeline[T] {
	return &Pipeline[T]{Clock: clock.New(), Log: log, Send: send}
}

// Run consumes results from in until ctx is done or in is closed. The
// select is biased in the strict priority order spec.md §4.7 mandates:
// (1) retry a parked failed batch, (2) service the flush tick, (3) ingest a
// new result.
func (p *Pipeline[T]) Run(ctx context.Context, in <-chan T) {
	ticker := p.Clock.Ticker(FlushInterval)
	defer ticker.Stop()

	for {
		if p.parked != nil {
			if !p.retryParked(ctx) {
				return
			}
			continue
		}

		select {
		case <-ticker.C:
			p.flush(ctx)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.flush(ctx)
		case result, ok := <-in:
			if !ok {
				p.flush(ctx)
				return
			}
			p.buf = append(p.buf, result)
			if len(p.buf) >= BatchSize {
				p.flush(ctx)
			}
		}
	}
}

// flush sends the current buffer as one batch, parking it on failure.
func (p *Pipeline[T]) flush(ctx context.Context) {
	if len(p.buf) == 0 {
		return
	}
	batch := p.buf
	p.buf = nil

	if err := p.Send(ctx, batch); err != nil {
		p.Log.Warn("report batch failed, parking for retry", zap.Int("size", len(batch)), zap.Error(err))
		p.parked = batch
		return
	}
	if p.OnReported != nil {
		p.OnReported(len(batch))
	}
}

// retryParked waits out the randomized backoff, then retries the parked
// batch. It returns false if ctx was cancelled during the wait.
func (p *Pipeline[T]) retryParked(ctx context.Context) bool {
	wait := retryBackoff()
	timer := p.Clock.Timer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	if err := p.Send(ctx, p.parked); err != nil {
		p.Log.Warn("parked batch retry failed", zap.Int("size", len(p.parked)), zap.Error(err))
		if p.OnRetry != nil {
			p.OnRetry()
		}
		return true
	}

	p.Log.Info("parked batch delivered", zap.Int("size", len(p.parked)))
	if p.OnReported != nil {
		p.OnReported(len(p.parked))
	}
	p.parked = nil
	return true
}

// retryBackoff picks a uniform-random wait in [10s, 15s] (spec.md §4.7).
func retryBackoff() time.Duration {
	secs := RetryMinSeconds + rand.Intn(RetryMaxSeconds-RetryMinSeconds+1)
	return time.Duration(secs) * time.Second
}
