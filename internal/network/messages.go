// Package network implements the JSON message envelope the NetAdapter
// exchanges with clients over WebSocket, per spec §6.
package network

import "encoding/json"

// Message type tags, client -> server.
const (
	TypeJoin        = "join"
	TypeInput       = "input"
	TypeKick        = "kick"
	TypeJoinTeam    = "join-team"
	TypeChat        = "chat"
	TypeStartGame   = "start-game"
	TypeEndGame     = "end-game"
	TypeUpdateState = "update-state"
	TypePing        = "ping"
)

// Message type tags, server -> client (discrete reliable events; the
// schema snapshot patch itself is tagged "patch").
const (
	TypePatch            = "patch"
	TypePlayerJoined     = "player-joined"
	TypePlayerLeft       = "player-left"
	TypeRoomCode         = "room-code"
	TypeBallKicked       = "ball-kicked"
	TypeBallTouched      = "ball-touched"
	TypePowerupCollected = "powerup-collected"
	TypeGoalScored       = "goal-scored"
	TypeGameStarted      = "game-started"
	TypeGameOver         = "game-over"
	TypeGameReset        = "game-reset"
	TypeChatMessage      = "chat-message"
	TypePong             = "pong"
	TypeError            = "error"
)

// Envelope is the wire shape every message shares: a string type tag plus
// an opaque payload decoded according to that tag.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JoinOptions is the payload of a `join` message.
type JoinOptions struct {
	Name      string `json:"name"`
	Team      string `json:"team"`
	Character string `json:"character"`
	Map       string `json:"map"`
	IsPublic  bool   `json:"isPublic"`
	Code      string `json:"code"`
	Mode      string `json:"mode"`
}

// InputRecordWire mirrors match.InputRecord on the wire.
type InputRecordWire struct {
	Tick          uint64  `json:"tick"`
	X             float32 `json:"x"`
	Z             float32 `json:"z"`
	RotY          float32 `json:"rotY"`
	JumpRequestID uint32  `json:"jumpRequestId"`
}

// InputBatch is the payload of an `input` message; clients may send either
// a single record or a batch (array) — DecodeInput handles both shapes.
type InputBatch struct {
	Inputs []InputRecordWire `json:"inputs"`
}

// KickPayload is the payload of a `kick` message.
type KickPayload struct {
	ImpulseX float32 `json:"impulseX"`
	ImpulseY float32 `json:"impulseY"`
	ImpulseZ float32 `json:"impulseZ"`
}

// JoinTeamPayload is the payload of a `join-team` message.
type JoinTeamPayload struct {
	Name      string `json:"name"`
	Team      string `json:"team"`
	Character string `json:"character"`
}

// ChatPayload is the payload of a `chat` message.
type ChatPayload struct {
	Message string `json:"message"`
}

// UpdateStatePayload is the payload of an `update-state` message. Key must
// be one of the server-side whitelist {invisible, giant}.
type UpdateStatePayload struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// UpdateStateWhitelist is the set of keys a client may toggle directly.
var UpdateStateWhitelist = map[string]bool{
	"invisible": true,
	"giant":     true,
}

// ErrorPayload is the payload of a server `error` message.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes for ErrorPayload.Code.
const (
	ErrorCodeRoomFull    = "room_full"
	ErrorCodeInvalid     = "invalid_message"
	ErrorCodeNotHost     = "not_host"
)
