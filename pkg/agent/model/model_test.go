// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultInvariantSuccess(t *testing.T) {
	r := NewSuccessResult("127.0.0.1", time.Now(), 12*time.Millisecond)
	assert.False(t, r.IsTimeout)
	require.NotNil(t, r.RTT)
	assert.Equal(t, 12*time.Millisecond, *r.RTT)
}

func TestResultInvariantTimeout(t *testing.T) {
	r := NewTimeoutResult("127.0.0.1", time.Now())
	assert.True(t, r.IsTimeout)
	assert.Nil(t, r.RTT)
}

func TestToWireRoundTripPrecision(t *testing.T) {
	sendAt := time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC)
	r := NewSuccessResult("10.0.0.1", sendAt, 1500*time.Microsecond)

	wire := r.ToWire()

	assert.Equal(t, "10.0.0.1", wire.Target)
	assert.False(t, wire.IsTimeout)
	assert.EqualValues(t, 1500, wire.RTTMicros)
	assert.Equal(t, sendAt.Unix(), wire.SendAtUnix)
}

func TestToWireTimeoutHasZeroRTT(t *testing.T) {
	wire := NewTimeoutResult("10.0.0.1", time.Now()).ToWire()
	assert.True(t, wire.IsTimeout)
	assert.EqualValues(t, 0, wire.RTTMicros)
}

func TestFPingResultToWireOmitsSendAt(t *testing.T) {
	rtt := 2 * time.Millisecond
	wire := FPingResult{Target: "10.0.0.2", RTT: &rtt}.ToWire()
	assert.EqualValues(t, 0, wire.SendAtUnix)
	assert.EqualValues(t, 2000, wire.RTTMicros)
}

func TestCommandTypeString(t *testing.T) {
	assert.Equal(t, "PING", CommandTypePing.String())
	assert.Equal(t, "TCP_PING", CommandTypeTCPPing.String())
	assert.Equal(t, "FPING", CommandTypeFPing.String())
}
