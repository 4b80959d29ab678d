package rpc

import (
	"encoding/json"
	"fmt"
)

// jsonCodec lets connect handlers speak plain JSON over application/json
// without generated message types. The name "json" maps to the
// application/json content type on the wire.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty request body")
	}
	return json.Unmarshal(data, message)
}
