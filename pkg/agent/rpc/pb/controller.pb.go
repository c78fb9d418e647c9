// Code generated by protoc-gen-go from controller.proto, in the classic
// (pre-APIv2) struct-tag style; hand-maintained here since this repository's
// build environment has no protoc. DO NOT mix hand edits that change wire
// field numbers without also updating controller.proto.
//
// source: controller.proto

package pb

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

// CommandType mirrors controller.proto's CommandType enum.
type CommandType int32

const (
	CommandType_PING     CommandType = 0
	CommandType_TCP_PING CommandType = 1
	CommandType_FPING    CommandType = 2
)

var CommandType_name = map[int32]string{
	0: "PING",
	1: "TCP_PING",
	2: "FPING",
}

func (c CommandType) String() string {
	if s, ok := CommandType_name[int32(c)]; ok {
		return s
	}
	return fmt.Sprintf("CommandType(%d)", int32(c))
}

type RegisterReq struct {
	AgentId uint32 `protobuf:"varint,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
}

func (m *RegisterReq) Reset()         { *m = RegisterReq{} }
func (m *RegisterReq) String() string { return proto.CompactTextString(m) }
func (*RegisterReq) ProtoMessage()    {}

func (m *RegisterReq) GetAgentId() uint32 {
	if m != nil {
		return m.AgentId
	}
	return 0
}

type UpdateCommandResp struct {
	CommandType CommandType `protobuf:"varint,1,opt,name=command_type,json=commandType,proto3,enum=ping_agent.CommandType" json:"command_type,omitempty"`
	Version     string      `protobuf:"bytes,2,opt,name=version,proto3" json:"version,omitempty"`
}

func (m *UpdateCommandResp) Reset()         { *m = UpdateCommandResp{} }
func (m *UpdateCommandResp) String() string { return proto.CompactTextString(m) }
func (*UpdateCommandResp) ProtoMessage()    {}

func (m *UpdateCommandResp) GetCommandType() CommandType {
	if m != nil {
		return m.CommandType
	}
	return CommandType_PING
}

func (m *UpdateCommandResp) GetVersion() string {
	if m != nil {
		return m.Version
	}
	return ""
}

type CommandReq struct {
	AgentId uint32 `protobuf:"varint,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Version string `protobuf:"bytes,2,opt,name=version,proto3" json:"version,omitempty"`
}

func (m *CommandReq) Reset()         { *m = CommandReq{} }
func (m *CommandReq) String() string { return proto.CompactTextString(m) }
func (*CommandReq) ProtoMessage()    {}

type PingCommandItem struct {
	Ip            string `protobuf:"bytes,1,opt,name=ip,proto3" json:"ip,omitempty"`
	IntervalSecs  uint32 `protobuf:"varint,2,opt,name=interval_secs,json=intervalSecs,proto3" json:"interval_secs,omitempty"`
	TimeoutMillis uint32 `protobuf:"varint,3,opt,name=timeout_millis,json=timeoutMillis,proto3" json:"timeout_millis,omitempty"`
}

func (m *PingCommandItem) Reset()         { *m = PingCommandItem{} }
func (m *PingCommandItem) String() string { return proto.CompactTextString(m) }
func (*PingCommandItem) ProtoMessage()    {}

type PingCommandsResp struct {
	Version      string             `protobuf:"bytes,1,opt,name=version,proto3" json:"version,omitempty"`
	PingCommands []*PingCommandItem `protobuf:"bytes,2,rep,name=ping_commands,json=pingCommands,proto3" json:"ping_commands,omitempty"`
}

func (m *PingCommandsResp) Reset()         { *m = PingCommandsResp{} }
func (m *PingCommandsResp) String() string { return proto.CompactTextString(m) }
func (*PingCommandsResp) ProtoMessage()    {}

type TcpPingCommandItem struct {
	Address       string `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	IntervalSecs  uint32 `protobuf:"varint,2,opt,name=interval_secs,json=intervalSecs,proto3" json:"interval_secs,omitempty"`
	TimeoutMillis uint32 `protobuf:"varint,3,opt,name=timeout_millis,json=timeoutMillis,proto3" json:"timeout_millis,omitempty"`
}

func (m *TcpPingCommandItem) Reset()         { *m = TcpPingCommandItem{} }
func (m *TcpPingCommandItem) String() string { return proto.CompactTextString(m) }
func (*TcpPingCommandItem) ProtoMessage()    {}

type TcpPingCommandsResp struct {
	Version         string                `protobuf:"bytes,1,opt,name=version,proto3" json:"version,omitempty"`
	TcpPingCommands []*TcpPingCommandItem `protobuf:"bytes,2,rep,name=tcp_ping_commands,json=tcpPingCommands,proto3" json:"tcp_ping_commands,omitempty"`
}

func (m *TcpPingCommandsResp) Reset()         { *m = TcpPingCommandsResp{} }
func (m *TcpPingCommandsResp) String() string { return proto.CompactTextString(m) }
func (*TcpPingCommandsResp) ProtoMessage()    {}

type FpingCommandItem struct {
	Ip string `protobuf:"bytes,1,opt,name=ip,proto3" json:"ip,omitempty"`
}

func (m *FpingCommandItem) Reset()         { *m = FpingCommandItem{} }
func (m *FpingCommandItem) String() string { return proto.CompactTextString(m) }
func (*FpingCommandItem) ProtoMessage()    {}

type FpingCommandsResp struct {
	Version       string              `protobuf:"bytes,1,opt,name=version,proto3" json:"version,omitempty"`
	TimeoutMillis uint32              `protobuf:"varint,2,opt,name=timeout_millis,json=timeoutMillis,proto3" json:"timeout_millis,omitempty"`
	FpingCommands []*FpingCommandItem `protobuf:"bytes,3,rep,name=fping_commands,json=fpingCommands,proto3" json:"fping_commands,omitempty"`
}

func (m *FpingCommandsResp) Reset()         { *m = FpingCommandsResp{} }
func (m *FpingCommandsResp) String() string { return proto.CompactTextString(m) }
func (*FpingCommandsResp) ProtoMessage()    {}

func init() {
	proto.RegisterType((*RegisterReq)(nil), "ping_agent.RegisterReq")
	proto.RegisterType((*UpdateCommandResp)(nil), "ping_agent.UpdateCommandResp")
	proto.RegisterType((*CommandReq)(nil), "ping_agent.CommandReq")
	proto.RegisterType((*PingCommandItem)(nil), "ping_agent.PingCommandItem")
	proto.RegisterType((*PingCommandsResp)(nil), "ping_agent.PingCommandsResp")
	proto.RegisterType((*TcpPingCommandItem)(nil), "ping_agent.TcpPingCommandItem")
	proto.RegisterType((*TcpPingCommandsResp)(nil), "ping_agent.TcpPingCommandsResp")
	proto.RegisterType((*FpingCommandItem)(nil), "ping_agent.FpingCommandItem")
	proto.RegisterType((*FpingCommandsResp)(nil), "ping_agent.FpingCommandsResp")
}
