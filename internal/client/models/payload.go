package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PayloadKind is the tag of a Payload.
type PayloadKind string

const (
	PayloadJSON   PayloadKind = "json"
	PayloadBinary PayloadKind = "binary"
)

var ErrBinaryPayload = errors.New("payload is binary, not JSON")

// Payload is the cached response body: either a JSON document or a binary
// blob (attachments). Construct it with JSONPayload, MarshalJSONPayload or
// BinaryPayload.
type Payload struct {
	kind PayloadKind
	data []byte
}

// JSONPayload wraps raw JSON. The bytes are copied.
func JSONPayload(raw []byte) Payload {
	return Payload{kind: PayloadJSON, data: bytes.Clone(raw)}
}

// MarshalJSONPayload encodes v as a JSON payload.
func MarshalJSONPayload(v any) (Payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Payload{kind: PayloadJSON, data: b}, nil
}

// BinaryPayload wraps a blob. The bytes are copied.
func BinaryPayload(b []byte) Payload {
	return Payload{kind: PayloadBinary, data: bytes.Clone(b)}
}

// RestorePayload rebuilds a payload from its stored kind and bytes.
func RestorePayload(kind PayloadKind, data []byte) (Payload, error) {
	switch kind {
	case PayloadJSON, PayloadBinary:
		return Payload{kind: kind, data: data}, nil
	default:
		return Payload{}, fmt.Errorf("unknown payload kind %q", kind)
	}
}

func (p Payload) Kind() PayloadKind { return p.kind }

func (p Payload) IsBinary() bool { return p.kind == PayloadBinary }

// Bytes returns the raw payload bytes. Callers must not modify them.
func (p Payload) Bytes() []byte { return p.data }

// Valid reports whether a JSON payload holds well-formed JSON. Binary
// payloads are always valid.
func (p Payload) Valid() bool {
	if p.kind == PayloadBinary {
		return true
	}
	return p.kind == PayloadJSON && json.Valid(p.data)
}

// Decode unmarshals a JSON payload into v. Numbers decode as json.Number
// when v is an interface or map, so ids survive round trips unchanged.
func (p Payload) Decode(v any) error {
	if p.kind != PayloadJSON {
		return ErrBinaryPayload
	}
	dec := json.NewDecoder(bytes.NewReader(p.data))
	dec.UseNumber()
	return dec.Decode(v)
}
