// Code generated by protoc-gen-go-grpc from collector.proto; hand-maintained
// here since this repository's build environment has no protoc.

package pb

import (
	"context"

	"google.golang.org/grpc"
)

const (
	Collector_PingReport_FullMethodName    = "/ping_agent.Collector/PingReport"
	Collector_TcpPingReport_FullMethodName = "/ping_agent.Collector/TcpPingReport"
	Collector_FpingReport_FullMethodName   = "/ping_agent.Collector/FpingReport"
)

// CollectorClient is the client API for the Collector service.
type CollectorClient interface {
	PingReport(ctx context.Context, in *PingReportReq, opts ...grpc.CallOption) (*Ack, error)
	TcpPingReport(ctx context.Context, in *TcpPingReportReq, opts ...grpc.CallOption) (*Ack, error)
	FpingReport(ctx context.Context, in *FpingReportReq, opts ...grpc.CallOption) (*Ack, error)
}

type collectorClient struct {
	cc grpc.ClientConnInterface
}

// NewCollectorClient builds a CollectorClient bound to cc.
func NewCollectorClient(cc grpc.ClientConnInterface) CollectorClient {
	return &collectorClient{cc}
}

func (c *collectorClient) PingReport(ctx context.Context, in *PingReportReq, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, Collector_PingReport_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectorClient) TcpPingReport(ctx context.Context, in *TcpPingReportReq, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, Collector_TcpPingReport_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectorClient) FpingReport(ctx context.Context, in *FpingReportReq, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, Collector_FpingReport_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
