package event

import (
	"context"
	"net"
	"strconv"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeWriter mirrors events into GreptimeDB via the ingester client, for
// setups that want the log queryable alongside the NDJSON file.
type GreptimeWriter struct {
	client *greptime.Client
	table  string
}

// zoneEventsDDL documents the intended server-side schema. The gRPC ingester
// client cannot execute SQL, so the table is auto-created by GreptimeDB from
// the column schema declared on write; apply this DDL manually to get the TTL.
const zoneEventsDDL = `
CREATE TABLE IF NOT EXISTS zone_events (
  zone STRING TAG,
  event_context STRING TAG,
  event STRING,
  destination STRING,
  message_id BIGINT,
  payload_reference STRING,
  is_rogue_attempt BOOLEAN,
  conn_latency_ms DOUBLE,
  round_trip_latency_ms DOUBLE,
  error STRING,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`

// NewGreptimeWriter creates a new GreptimeDB writer; the events table is
// auto-created by GreptimeDB on first write if needed.
func NewGreptimeWriter(endpoint, database string) (*GreptimeWriter, error) {
	host := endpoint
	port := 4001
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeWriter{
		client: client,
		table:  "zone_events",
	}, nil
}

// Write inserts a single event row.
func (w *GreptimeWriter) Write(e Event) error {
	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("zone", types.STRING)
	tbl.AddTagColumn("event_context", types.STRING)
	tbl.AddFieldColumn("event", types.STRING)
	tbl.AddFieldColumn("destination", types.STRING)
	tbl.AddFieldColumn("message_id", types.INT64)
	tbl.AddFieldColumn("payload_reference", types.STRING)
	tbl.AddFieldColumn("is_rogue_attempt", types.BOOLEAN)
	tbl.AddFieldColumn("conn_latency_ms", types.FLOAT64)
	tbl.AddFieldColumn("round_trip_latency_ms", types.FLOAT64)
	tbl.AddFieldColumn("error", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	connMS := 0.0
	if e.ConnLatencyMS != nil {
		connMS = *e.ConnLatencyMS
	}
	rttMS := 0.0
	if e.RoundTripLatencyMS != nil {
		rttMS = *e.RoundTripLatencyMS
	}
	if err := tbl.AddRow(
		e.Zone,
		e.Context,
		e.Name,
		e.Destination,
		e.MessageID,
		e.PayloadReference,
		e.IsRogueAttempt,
		connMS,
		rttMS,
		e.Error,
		e.Time(),
	); err != nil {
		return err
	}

	_, err = w.client.Write(ctx, tbl)
	return err
}
