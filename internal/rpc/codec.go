// Package rpc wires plain Go request/response structs into Connect handlers.
//
// The services here exchange hand-written structs rather than protobuf
// messages, so Connect's default codecs (which require proto.Message) are
// replaced with a JSON codec. Clients and handlers both register it under
// the name "json", making the wire format application/json over the Connect
// protocol.
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}

// Codec returns the option that installs the JSON codec on a Connect client
// or handler.
func Codec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
