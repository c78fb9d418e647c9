// Code generated by protoc-gen-go from collector.proto, in the classic
// (pre-APIv2) struct-tag style; hand-maintained here since this repository's
// build environment has no protoc.
//
// source: collector.proto

package pb

import "github.com/golang/protobuf/proto"

type ResultItem struct {
	Target    string `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	IsTimeout bool   `protobuf:"varint,2,opt,name=is_timeout,json=isTimeout,proto3" json:"is_timeout,omitempty"`
	RttMicros uint32 `protobuf:"varint,3,opt,name=rtt_micros,json=rttMicros,proto3" json:"rtt_micros,omitempty"`
	SendAt    int64  `protobuf:"varint,4,opt,name=send_at,json=sendAt,proto3" json:"send_at,omitempty"`
}

func (m *ResultItem) Reset()         { *m = ResultItem{} }
func (m *ResultItem) String() string { return proto.CompactTextString(m) }
func (*ResultItem) ProtoMessage()    {}

type PingReportReq struct {
	AgentId uint32        `protobuf:"varint,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Results []*ResultItem `protobuf:"bytes,2,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *PingReportReq) Reset()         { *m = PingReportReq{} }
func (m *PingReportReq) String() string { return proto.CompactTextString(m) }
func (*PingReportReq) ProtoMessage()    {}

type TcpPingReportReq struct {
	AgentId uint32        `protobuf:"varint,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Results []*ResultItem `protobuf:"bytes,2,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *TcpPingReportReq) Reset()         { *m = TcpPingReportReq{} }
func (m *TcpPingReportReq) String() string { return proto.CompactTextString(m) }
func (*TcpPingReportReq) ProtoMessage()    {}

type FpingResultItem struct {
	Target    string `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	IsTimeout bool   `protobuf:"varint,2,opt,name=is_timeout,json=isTimeout,proto3" json:"is_timeout,omitempty"`
	RttMicros uint32 `protobuf:"varint,3,opt,name=rtt_micros,json=rttMicros,proto3" json:"rtt_micros,omitempty"`
}

func (m *FpingResultItem) Reset()         { *m = FpingResultItem{} }
func (m *FpingResultItem) String() string { return proto.CompactTextString(m) }
func (*FpingResultItem) ProtoMessage()    {}

type FpingReportReq struct {
	AgentId uint32             `protobuf:"varint,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Version string             `protobuf:"bytes,2,opt,name=version,proto3" json:"version,omitempty"`
	Results []*FpingResultItem `protobuf:"bytes,3,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *FpingReportReq) Reset()         { *m = FpingReportReq{} }
func (m *FpingReportReq) String() string { return proto.CompactTextString(m) }
func (*FpingReportReq) ProtoMessage()    {}

type Ack struct{}

func (m *Ack) Reset()         { *m = Ack{} }
func (m *Ack) String() string { return proto.CompactTextString(m) }
func (*Ack) ProtoMessage()    {}

func init() {
	proto.RegisterType((*ResultItem)(nil), "ping_agent.ResultItem")
	proto.RegisterType((*PingReportReq)(nil), "ping_agent.PingReportReq")
	proto.RegisterType((*TcpPingReportReq)(nil), "ping_agent.TcpPingReportReq")
	proto.RegisterType((*FpingResultItem)(nil), "ping_agent.FpingResultItem")
	proto.RegisterType((*FpingReportReq)(nil), "ping_agent.FpingReportReq")
	proto.RegisterType((*Ack)(nil), "ping_agent.Ack")
}
