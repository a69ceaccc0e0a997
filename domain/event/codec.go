package event

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chat-session/errors"
)

type decodeFunc func(data json.RawMessage) (Inbound, error)

// registry maps every known inbound tag to its payload schema.
var registry = map[Type]decodeFunc{
	TypeNewMessage:  decodeAs[NewMessage],
	TypeRoomUsers:   decodeAs[RoomUsers],
	TypeUserJoined:  decodeAs[UserJoined],
	TypeUserLeft:    decodeAs[UserLeft],
	TypeAuthSuccess: decodeAs[AuthSuccess],
	TypeAuthError:   decodeAs[AuthError],
	TypePong:        decodeAs[Pong],
}

func decodeAs[T Inbound](data json.RawMessage) (Inbound, error) {
	var payload T
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return payload, nil
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return payload, nil
}

// Known reports whether t has a registered payload schema.
func Known(t Type) bool {
	_, ok := registry[t]
	return ok
}

// Decode parses one inbound frame.
// Frames that are not a JSON envelope with a tag fail with ErrMalformedFrame.
// Tags without a registered schema decode to Raw.
func Decode(frame []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", errors.ErrMalformedFrame)
	}
	decode, ok := registry[env.Type]
	if !ok {
		return Raw{Tag: env.Type, Data: env.Data}, nil
	}
	return decode(env.Data)
}

// Encode builds the wire form of an outbound frame.
func Encode(t Type, payload any) ([]byte, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
		}
		data = b
	}
	return json.Marshal(Envelope{Type: t, Data: data})
}
