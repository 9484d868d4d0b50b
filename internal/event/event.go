// Event records appended to the shared simulation log
package event

import (
	"time"

	"zonegate-sim/internal/wire"
)

// Execution contexts recorded on events.
const (
	ContextServer     = "server"
	ContextServerMain = "server_main"
	ContextClient     = "client"
	ContextAgent      = "agent"
)

// Event kinds. Rogue client attempts carry the "Rogue" prefix via Kind.
const (
	AgentStarting        = "AgentStarting"
	AgentFatalNoSchedule = "AgentFatal_NoSchedule"
	AgentFatalNoZone     = "AgentFatal_NoZoneConfig"
	AgentIdleNoParts     = "AgentIdle_NoParts"
	AgentExited          = "AgentExited"

	ServerPartStarted        = "ServerPartStarted"
	ServerPartNotStarted     = "ServerPartNotStarted_NoRule"
	ServerPartFatalBindError = "ServerPartFatal_BindError"
	ServerPartExited         = "ServerPartExited"
	ServerAcceptError        = "ServerAcceptError"
	ConnectionReceived       = "ConnectionReceived"
	ConnectionEmpty          = "ConnectionEmpty"
	ReceivedData             = "ReceivedData"
	ReceiveFailBadJSON       = "ReceiveFail_BadJson"
	ReceiveFailSocketError   = "ReceiveFail_SocketError"
	DataQueuedForClientPart  = "DataQueuedForOwnClientPart"
	DataQueueFullDropped     = "DataQueueFull_Dropped"

	ClientPartNotStarted = "ClientPartNotStarted_NoRule"
	ClientPartFinished   = "ClientPartFinished"
	AttemptSend          = "AttemptSend"
	SendSuccess          = "SendSuccess"
	SendFailBadAck       = "SendFail_BadAck"
	SendFailTimeout      = "SendFail_Timeout"
	SendFailSocketError  = "SendFail_SocketError"
	SendFailUnknown      = "SendFail_Unknown"
	BlockedTimeWindow    = "Blocked_TimeWindow"
	HeldWindowClosed     = "LegitSend_Held_WindowClosed"
	HeldRequeueDropped   = "LegitSend_Held_RequeueDropped"
)

// RoguePrefix marks event kinds produced by schedule-blind traffic.
const RoguePrefix = "Rogue"

// Kind returns the event kind, prefixed for rogue attempts.
func Kind(base string, rogue bool) string {
	if rogue {
		return RoguePrefix + base
	}
	return base
}

// Event is one immutable record in the append-only simulation log. Only
// Timestamp, Zone, and Name are always present; the rest depend on the kind.
type Event struct {
	Timestamp    float64 `json:"timestamp"`
	TimestampISO string  `json:"timestamp_iso,omitempty"`
	Zone         string  `json:"zone"`
	Context      string  `json:"event_context,omitempty"`
	Name         string  `json:"event"`

	Role        string `json:"role,omitempty"`
	Destination string `json:"destination,omitempty"`
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
	Peer        string `json:"peer,omitempty"`

	MessageID          int64         `json:"message_id,omitempty"`
	CurrentSecond      *int          `json:"current_second,omitempty"`
	Window             string        `json:"allowed_window_config,omitempty"`
	WindowOpen         *bool         `json:"time_allowed_by_schedule,omitempty"`
	PayloadReference   string        `json:"payload_reference,omitempty"`
	PayloadSizeBytes   int64         `json:"payload_size_bytes,omitempty"`
	PayloadContentType string        `json:"payload_content_type,omitempty"`
	IsRogueAttempt     bool          `json:"is_rogue_attempt,omitempty"`
	Payload            *wire.Message `json:"payload,omitempty"`
	IsRoguePayload     *bool         `json:"is_rogue_payload,omitempty"`

	ConnLatencyMS      *float64 `json:"conn_latency_ms,omitempty"`
	RoundTripLatencyMS *float64 `json:"round_trip_latency_ms,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// Time returns the event timestamp as time.Time.
func (e Event) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
