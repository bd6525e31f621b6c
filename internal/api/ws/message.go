package ws

import "github.com/bytedance/sonic"

// Message types
const (
	TypeWelcome  = "welcome"
	TypeSnapshot = "snapshot"
	TypeUpdate   = "update"
	TypePing     = "ping"
	TypePong     = "pong"
	TypeError    = "error"
)

// Message is the envelope for everything sent over the socket
type Message struct {
	Type     string      `json:"type"`
	Topic    string      `json:"topic,omitempty"`
	ClientID string      `json:"clientId,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// inbound is what clients send
type inbound struct {
	Type string `json:"type"`
}

func encode(msg Message) ([]byte, error) {
	return sonic.Marshal(msg)
}

func decode(data []byte) (inbound, error) {
	var in inbound
	err := sonic.Unmarshal(data, &in)
	return in, err
}
