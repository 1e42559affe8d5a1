// Package network serves the game to a browser over a websocket. The
// browser runs hand tracking and streams fingertip frames in; snapshots
// stream back out for drawing.
package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/handninja/internal/gesture"
	"github.com/tomz197/handninja/internal/physics"
	"github.com/tomz197/handninja/internal/sensor"
)

// Message types.
const (
	MsgHello   = "hello"   // client → server, once
	MsgFrame   = "frame"   // client → server, per camera frame
	MsgCommand = "cmd"     // client → server, player command
	MsgWelcome = "welcome" // server → client, once
	MsgState   = "state"   // server → client, per broadcast
)

// ProtocolVersion is sent in Welcome and checked against Hello.
const ProtocolVersion = 1

// Codec selects the envelope encoding. The client picks it with the frame
// type of its first message: text frames are JSON, binary frames msgpack.
type Codec int

const (
	CodecJSON Codec = iota
	CodecMsgpack
)

func (c Codec) String() string {
	if c == CodecMsgpack {
		return "msgpack"
	}
	return "json"
}

// MessageType returns the websocket frame type carrying c.
func (c Codec) MessageType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// CodecFor returns the codec for a websocket frame type.
func CodecFor(messageType int) (Codec, bool) {
	switch messageType {
	case websocket.TextMessage:
		return CodecJSON, true
	case websocket.BinaryMessage:
		return CodecMsgpack, true
	}
	return 0, false
}

// Envelope is the outer message. P stays encoded until its type is known.
type Envelope struct {
	T string
	P []byte
}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

type msgpackEnvelope struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p,omitempty"`
}

var errEmpty = errors.New("empty message")

// Encode wraps payload in an envelope of type t.
func (c Codec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encode: empty message type")
	}
	pb, err := c.marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	if c == CodecMsgpack {
		return msgpack.Marshal(&msgpackEnvelope{T: t, P: pb})
	}
	return json.Marshal(jsonEnvelope{T: t, P: pb})
}

// DecodeEnvelope reads the envelope of b without decoding its payload.
func (c Codec) DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errEmpty
	}
	if c == CodecMsgpack {
		var e msgpackEnvelope
		if err := msgpack.Unmarshal(b, &e); err != nil {
			return Envelope{}, fmt.Errorf("decode envelope: %w", err)
		}
		return Envelope{T: e.T, P: e.P}, nil
	}
	var e jsonEnvelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (c Codec) marshal(v any) ([]byte, error) {
	if c == CodecMsgpack {
		return msgpack.Marshal(v)
	}
	return json.Marshal(v)
}

// DecodePayload decodes the payload of env into a T.
func DecodePayload[T any](c Codec, env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	var err error
	if c == CodecMsgpack {
		err = msgpack.Unmarshal(env.P, &out)
	} else {
		err = json.Unmarshal(env.P, &out)
	}
	return out, err
}

// Hello opens a session.
type Hello struct {
	V    int    `json:"v" msgpack:"v"`
	Name string `json:"name,omitempty" msgpack:"name,omitempty"`
}

// Welcome answers Hello with the field geometry.
type Welcome struct {
	V      int     `json:"v" msgpack:"v"`
	FieldW float64 `json:"fieldW" msgpack:"fieldW"`
	FieldH float64 `json:"fieldH" msgpack:"fieldH"`
	FPS    int     `json:"fps" msgpack:"fps"`
}

// Frame is one hand-tracking result in the tracker's own pixel space.
// Tip is absent when no hand was detected. Fingers holds 0/1 per finger,
// thumb first.
type Frame struct {
	Tip     *physics.Point `json:"tip,omitempty" msgpack:"tip,omitempty"`
	Fingers []int          `json:"fingers,omitempty" msgpack:"fingers,omitempty"`
	W       float64        `json:"w" msgpack:"w"`
	H       float64        `json:"h" msgpack:"h"`
}

// Sample converts f to a sensor sample. A frame with a non-finite tip or
// size reads as no hand, and a finger vector that is not exactly five long
// is dropped.
func (f Frame) Sample() sensor.Sample {
	if !finite(f.W) || !finite(f.H) {
		return sensor.Sample{}
	}
	s := sensor.Sample{Width: f.W, Height: f.H}
	if f.Tip != nil && finite(f.Tip.X) && finite(f.Tip.Y) {
		p := *f.Tip
		s.Tip = &p
	}
	if len(f.Fingers) == 5 {
		var bits [5]int
		copy(bits[:], f.Fingers)
		fingers := gesture.FromBits(bits)
		s.Fingers = &fingers
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Command carries a player command by name, e.g. "start" or "hard".
type Command struct {
	C string `json:"c" msgpack:"c"`
}
