package msgs

import (
	"github.com/golang/protobuf/proto"
)

// RoundStarted is an event sent when players start a round.
type RoundStarted struct {
	// StartedAt is unix time in milliseconds.
	StartedAt int64 `protobuf:"varint,1,opt,name=started_at,proto3" json:"started_at,omitempty"`
}

// NewMessage implements Message.
func (m *RoundStarted) NewMessage() Message { return &RoundStarted{} }

// TypeID implements Message.
func (m *RoundStarted) TypeID() uint32 { return RoundStartedTypeID }

// ProtoMessage implements proto.Message.
func (m *RoundStarted) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RoundStarted) Reset() { *m = RoundStarted{} }

// String implements proto.Message.
func (m *RoundStarted) String() string { return proto.CompactTextString(m) }

// RoundFinished is an event sent with the final scores of a round.
type RoundFinished struct {
	StartedAt    int64  `protobuf:"varint,1,opt,name=started_at,proto3" json:"started_at,omitempty"`
	DurationMs   uint32 `protobuf:"varint,2,opt,name=duration_ms,proto3" json:"duration_ms,omitempty"`
	Player1Score uint32 `protobuf:"varint,3,opt,name=player1_score,proto3" json:"player1_score,omitempty"`
	Player2Score uint32 `protobuf:"varint,4,opt,name=player2_score,proto3" json:"player2_score,omitempty"`
	// Winner is 1 or 2, 0 for a tie.
	Winner int32 `protobuf:"varint,5,opt,name=winner,proto3" json:"winner,omitempty"`
}

// NewMessage implements Message.
func (m *RoundFinished) NewMessage() Message { return &RoundFinished{} }

// TypeID implements Message.
func (m *RoundFinished) TypeID() uint32 { return RoundFinishedTypeID }

// ProtoMessage implements proto.Message.
func (m *RoundFinished) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RoundFinished) Reset() { *m = RoundFinished{} }

// String implements proto.Message.
func (m *RoundFinished) String() string { return proto.CompactTextString(m) }

// GroupGame is the type ID group of game messages.
const GroupGame uint32 = 0x00030000

// TypeIDs
const (
	RoundStartedTypeID  uint32 = GroupGame | TypeIDKindEvent | 0x0000
	RoundFinishedTypeID uint32 = GroupGame | TypeIDKindEvent | 0x0001
)

func init() {
	MessageTypes[RoundStartedTypeID] = (*RoundStarted)(nil)
	MessageTypes[RoundFinishedTypeID] = (*RoundFinished)(nil)
}
