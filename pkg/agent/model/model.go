// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package model holds the probe agent's internal data model: probe commands,
// probe results, command sets, and their conversion to and from wire shapes.
//
// Conversion lives next to the domain type it converts rather than in the rpc
// package, so the rpc adapter stays a thin boundary instead of a second copy
// of these invariants.
package model

import (
	"fmt"
	"net/netip"
	"time"
)

// CommandType identifies which probing engine a command set targets.
type CommandType int

const (
	// CommandTypePing addresses the ICMP ping engine.
	CommandTypePing CommandType = iota
	// CommandTypeTCPPing addresses the TCP ping engine.
	CommandTypeTCPPing
	// CommandTypeFPing addresses the fast-ping engine.
	CommandTypeFPing
)

// String implements fmt.Stringer for log output.
func (t CommandType) String() string {
	switch t {
	case CommandTypePing:
		return "PING"
	case CommandTypeTCPPing:
		return "TCP_PING"
	case CommandTypeFPing:
		return "FPING"
	default:
		return fmt.Sprintf("CommandType(%d)", int(t))
	}
}

// PingCommand is the desired state for one ICMP target.
type PingCommand struct {
	IP       netip.Addr
	Interval time.Duration
	Timeout  time.Duration
}

// Target returns the command's target as a string, for results and logs.
func (c PingCommand) Target() string {
	return c.IP.String()
}

// TCPPingCommand is the desired state for one TCP-connect target.
type TCPPingCommand struct {
	// Address is a host:port string, dialed directly.
	Address  string
	Interval time.Duration
	Timeout  time.Duration
}

// Target returns the command's target as a string, for results and logs.
func (c TCPPingCommand) Target() string {
	return c.Address
}

// CommandSet is the ordered, versioned desired state for one probe kind.
//
// Two sets with equal Version are defined equal. The engines do not
// short-circuit on an unchanged Version: a redelivered set stops and
// restarts every task like any other set (see reconcile.Reconciler and
// DESIGN.md's Open Questions section).
type CommandSet[C any] struct {
	Version  string
	Commands []C
}

// FPingCommand is the desired state for one fast-ping burst.
type FPingCommand struct {
	Version string
	IPs     []netip.Addr
	Timeout time.Duration
}

// Result is a completed probe round for the ICMP or TCP engines.
//
// Invariant: IsTimeout == (RTT == nil). Enforced by the two constructors
// below rather than left to callers to get right ad hoc.
type Result struct {
	Target    string
	SendAt    time.Time
	IsTimeout bool
	RTT       *time.Duration
}

// NewSuccessResult builds a Result for a completed, non-timed-out probe.
func NewSuccessResult(target string, sendAt time.Time, rtt time.Duration) Result {
	return Result{Target: target, SendAt: sendAt, IsTimeout: false, RTT: &rtt}
}

// NewTimeoutResult builds a Result for a probe that received no reply.
func NewTimeoutResult(target string, sendAt time.Time) Result {
	return Result{Target: target, SendAt: sendAt, IsTimeout: true, RTT: nil}
}

// WireResult is the bit-exact shape delivered to the collector (spec.md §6).
type WireResult struct {
	Target     string
	IsTimeout  bool
	RTTMicros  uint32
	SendAtUnix int64
}

// ToWire converts a Result to its wire shape, rounding RTT to microseconds
// and truncating SendAt to whole seconds, per spec.md §6 and §8.
func (r Result) ToWire() WireResult {
	var rttMicros uint32
	if r.RTT != nil {
		rttMicros = uint32(r.RTT.Microseconds())
	}
	return WireResult{
		Target:     r.Target,
		IsTimeout:  r.IsTimeout,
		RTTMicros:  rttMicros,
		SendAtUnix: r.SendAt.Unix(),
	}
}

// FPingResult is one target's outcome within an aggregated fast-ping burst.
type FPingResult struct {
	Target    string
	IsTimeout bool
	RTT       *time.Duration
}

// ToWire converts an FPingResult to its wire shape. Fast-ping entries omit
// SendAt per spec.md §6 (the envelope carries only Version).
func (r FPingResult) ToWire() WireResult {
	var rttMicros uint32
	if r.RTT != nil {
		rttMicros = uint32(r.RTT.Microseconds())
	}
	return WireResult{Target: r.Target, IsTimeout: r.IsTimeout, RTTMicros: rttMicros}
}

// FPingResultSet is the aggregated record emitted for one fast-ping command.
type FPingResultSet struct {
	Version string
	Results []FPingResult
}
