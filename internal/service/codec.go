package service

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec encodes messages as plain JSON. It replaces Connect's default
// "json" codec, which only accepts protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	return nil
}

// WithJSONCodec is the codec option both handlers and clients must use.
func WithJSONCodec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
