package network

import (
	"encoding/json"
	"errors"
)

var (
	ErrInvalidMessage = errors.New("invalid message")
)

// Protocol handles JSON envelope encoding/decoding of the message set in
// spec §6. Unlike the teacher's fixed binary layout, the wire format here
// is schema-driven JSON, matching "Messages are JSON-like maps with a
// string type tag".
type Protocol struct{}

// NewProtocol creates a new protocol handler.
func NewProtocol() *Protocol {
	return &Protocol{}
}

// DecodeEnvelope extracts the type tag and raw payload from a frame.
func (p *Protocol) DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, ErrInvalidMessage
	}
	if env.Type == "" {
		return Envelope{}, ErrInvalidMessage
	}
	return env, nil
}

// DecodeJoin decodes a `join` payload.
func (p *Protocol) DecodeJoin(data json.RawMessage) (JoinOptions, error) {
	var opts JoinOptions
	if err := json.Unmarshal(data, &opts); err != nil {
		return JoinOptions{}, ErrInvalidMessage
	}
	return opts, nil
}

// DecodeInput decodes an `input` payload, accepting either a single record
// or a batch array, per spec §4.3 ("Messages may carry a single record or
// a batch").
func (p *Protocol) DecodeInput(data json.RawMessage) ([]InputRecordWire, error) {
	var batch InputBatch
	if err := json.Unmarshal(data, &batch); err == nil && batch.Inputs != nil {
		return batch.Inputs, nil
	}

	var single InputRecordWire
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, ErrInvalidMessage
	}
	return []InputRecordWire{single}, nil
}

// DecodeKick decodes a `kick` payload.
func (p *Protocol) DecodeKick(data json.RawMessage) (KickPayload, error) {
	var k KickPayload
	if err := json.Unmarshal(data, &k); err != nil {
		return KickPayload{}, ErrInvalidMessage
	}
	return k, nil
}

// DecodeJoinTeam decodes a `join-team` payload.
func (p *Protocol) DecodeJoinTeam(data json.RawMessage) (JoinTeamPayload, error) {
	var j JoinTeamPayload
	if err := json.Unmarshal(data, &j); err != nil {
		return JoinTeamPayload{}, ErrInvalidMessage
	}
	return j, nil
}

// DecodeChat decodes a `chat` payload.
func (p *Protocol) DecodeChat(data json.RawMessage) (ChatPayload, error) {
	var c ChatPayload
	if err := json.Unmarshal(data, &c); err != nil {
		return ChatPayload{}, ErrInvalidMessage
	}
	return c, nil
}

// DecodeUpdateState decodes an `update-state` payload.
func (p *Protocol) DecodeUpdateState(data json.RawMessage) (UpdateStatePayload, error) {
	var u UpdateStatePayload
	if err := json.Unmarshal(data, &u); err != nil {
		return UpdateStatePayload{}, ErrInvalidMessage
	}
	return u, nil
}

// Encode wraps a payload in an Envelope under the given type tag and
// marshals it for transmission. Returns nil on a marshal failure (never
// expected for our own payload types) rather than panicking the caller.
func (p *Protocol) Encode(msgType string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	out, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		return nil
	}
	return out
}
