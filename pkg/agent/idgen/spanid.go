// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package idgen generates correlation identifiers for log lines.
package idgen

import "github.com/google/uuid"

// NewSpanID returns a UUIDv7 identifying one probe round, so every log line
// belonging to the same send/receive pair can be grepped out of a shared
// agent log.
//
// The span terminology is borrowed from OTel: a span is a sequence of
// operations that fails in a single, specific way, here one probe send and
// its matching reply or timeout.
//
// Panics if the system random number generator fails, which should only
// happen under extraordinary circumstances.
func NewSpanID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return id.String()
}
