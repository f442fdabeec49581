package server

import "encoding/json"

type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// resultType names the reply to a websocket request of type t.
func resultType(t string) string {
	if t == "ping" {
		return "pong"
	}
	return t + "_result"
}
