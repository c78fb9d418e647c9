// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package grpcclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// quickRetry absorbs a brief connection blip (a single dropped frame, a
// load balancer re-resolve) with a handful of sub-second exponential-backoff
// attempts, so the reporter's much coarser [10s,15s] park-slot retry
// (spec.md §4.7) is reserved for outages that actually last.
func quickRetry(ctx context.Context, call func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 2 * time.Second

	return backoff.Retry(call, backoff.WithContext(policy, ctx))
}
