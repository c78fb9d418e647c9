// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package rawsocket wraps a non-blocking ICMP echo socket with the
// send-request/recv-reply primitives spec.md §4.6 describes.
//
// It is built on golang.org/x/net/icmp's PacketConn, which Go's runtime
// netpoller already drives without blocking an OS thread; this gives the
// same non-blocking behavior the original Tokio AsyncFd-based socket had,
// without hand-rolled epoll readiness loops. Retry-on-stale-reply is
// implemented explicitly, matching spec.md §4.3's reply-matching contract.
package rawsocket

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
	"time"

	"golang.org/x/net/icmp"
)

// packetLen is the total ICMP echo request size, matching spec.md §4.3.
const packetLen = 64

// seqOffset is the byte offset of the 16-bit sequence number in the ICMP
// header, matching spec.md §4.3.
const seqOffset = 6

// padByte fills the echo payload beyond the ICMP header.
const padByte = 0x42

// Conn is a non-blocking ICMP echo socket for one address family.
//
// A Conn is owned exclusively by one probing task; per-target sockets avoid
// any cross-task locking on the read path (spec.md §3, §9).
type Conn struct {
	pc     *icmp.PacketConn
	is4    bool
	echoTy byte
}

// Listen opens a non-blocking ICMP datagram socket for the address family of
// addr. On Linux this requires either CAP_NET_RAW or a ping_group_range
// sysctl permitting the process's group; that is an operator/boot concern,
// not a per-probe one (spec.md §4.2 failure semantics).
func Listen(addr netip.Addr) (*Conn, error) {
	network := "udp4"
	echoTy := byte(ipv4EchoRequest)
	if addr.Is6() && !addr.Is4In6() {
		network = "udp6"
		echoTy = byte(ipv6EchoRequest)
	}

	pc, err := icmp.ListenPacket(network, "")
	if err != nil {
		return nil, fmt.Errorf("rawsocket: listen %s: %w", network, err)
	}

	return &Conn{pc: pc, is4: network == "udp4", echoTy: echoTy}, nil
}

// Close releases the underlying socket.
func (c *Conn) Close() error {
	return c.pc.Close()
}

// buildEchoRequest constructs an ICMP Echo Request with checksum and
// identifier left zero; on a datagram-type ICMP socket the kernel fills both
// in before the packet leaves the host (spec.md §4.3).
func buildEchoRequest(echoTy byte, seq uint16) []byte {
	buf := make([]byte, packetLen)
	buf[0] = echoTy
	buf[1] = 0 // code
	// buf[2:4] checksum, buf[4:6] identifier: left zero, kernel-filled.
	binary.BigEndian.PutUint16(buf[seqOffset:seqOffset+2], seq)
	for i := 8; i < packetLen; i++ {
		buf[i] = padByte
	}
	return buf
}

// SendRequest sends one ICMP echo request with the given sequence number to
// dest. deadline bounds the write; a write that would block retries
// internally until deadline (or succeeds immediately, the common case).
func (c *Conn) SendRequest(deadline time.Time, seq uint16, dest netip.Addr) error {
	if err := c.pc.SetWriteDeadline(deadline); err != nil {
		return err
	}
	buf := buildEchoRequest(c.echoTy, seq)
	_, err := c.pc.WriteTo(buf, &net.UDPAddr{IP: dest.AsSlice()})
	return err
}

// RecvReply blocks until a reply matching expectedSeq arrives or deadline
// elapses. Replies carrying a different sequence number are stale replies
// from a prior round; they are logged by the caller and ignored here,
// keeping the read loop alive until deadline (spec.md §4.3).
func (c *Conn) RecvReply(deadline time.Time, expectedSeq uint16) (stale []uint16, err error) {
	if err := c.pc.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	buf := make([]byte, packetLen)
	for {
		n, _, err := c.pc.ReadFrom(buf)
		if err != nil {
			return stale, err
		}
		if n < seqOffset+2 {
			continue
		}
		seq := binary.BigEndian.Uint16(buf[seqOffset : seqOffset+2])
		if seq == expectedSeq {
			return stale, nil
		}
		stale = append(stale, seq)
	}
}

// These mirror golang.org/x/net/ipv4.ICMPTypeEchoRequest /
// golang.org/x/net/ipv6.ICMPTypeEchoRequest without importing both subpackages
// just for two constants.
const (
	ipv4EchoRequest = 8
	ipv6EchoRequest = 128
)
