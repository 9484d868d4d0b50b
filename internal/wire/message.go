// Wire payload exchanged between zone agents
package wire

import (
	"encoding/json"
	"fmt"
)

// Protocol constants. A message is one JSON object written in a single send
// and read in a single buffered read: payloads larger than BufferSize are not
// supported by the protocol, which carries data references, not data.
const (
	BufferSize = 1024
)

// AckToken is the fixed acknowledgement a server returns on successful receipt.
var AckToken = []byte("ACK")

// Message is the single payload carried per TCP connection.
type Message struct {
	SourceZone    string  `json:"source_zone"`
	MessageID     int64   `json:"message_id"`
	SendTimestamp float64 `json:"send_timestamp"`
	DataReference string  `json:"data_reference"`
	DataSizeBytes int64   `json:"data_size_bytes"`
	ContentType   string  `json:"content_type"`
	IsRogue       bool    `json:"is_rogue"`
}

// Encode serializes the message as UTF-8 JSON.
func (m Message) Encode() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	if len(b) > BufferSize {
		return nil, fmt.Errorf("encoded message is %d bytes, exceeds buffer size %d", len(b), BufferSize)
	}
	return b, nil
}

// Decode parses one UTF-8 JSON message from raw bytes.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	return m, nil
}
