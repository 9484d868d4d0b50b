package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"zonegate-sim/internal/event"
	"zonegate-sim/internal/handoff"
	"zonegate-sim/internal/schedule"
	"zonegate-sim/internal/wire"
)

// Server is a zone's inbound component. It accepts TCP connections on the
// port of the zone's inbound rule, decodes one message per connection,
// acknowledges it, and for server_client zones forwards a handoff record to
// the client component.
type Server struct {
	zone   string
	rule   schedule.Rule
	relay  *handoff.Queue // nil unless the zone relays onward
	events *event.Log

	ln net.Listener
}

// NewServer creates a server component for the given inbound rule. relay may
// be nil when the zone does not chain received data to its own client side.
func NewServer(zone string, rule schedule.Rule, relay *handoff.Queue, events *event.Log) *Server {
	return &Server{zone: zone, rule: rule, relay: relay, events: events}
}

// Listen binds the listening socket. A bind failure is fatal for this zone's
// server role only; the caller decides what else keeps running.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.rule.Port))
	if err != nil {
		s.events.Emit(event.Event{
			Zone:    s.zone,
			Context: event.ContextServerMain,
			Name:    event.ServerPartFatalBindError,
			Port:    s.rule.Port,
			Error:   err.Error(),
		})
		return fmt.Errorf("bind port %d: %w", s.rule.Port, err)
	}
	s.ln = ln
	s.events.Emit(event.Event{
		Zone:    s.zone,
		Context: event.ContextServerMain,
		Name:    event.ServerPartStarted,
		Host:    "0.0.0.0",
		Port:    s.rule.Port,
	})
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve runs the accept loop until ctx is done. Individual handler failures
// never stop the loop; each connection is handled on its own goroutine so a
// slow handler cannot block the acceptor.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.events.Emit(event.Event{
					Zone:    s.zone,
					Context: event.ContextServerMain,
					Name:    event.ServerPartExited,
				})
				return nil
			}
			s.events.Emit(event.Event{
				Zone:    s.zone,
				Context: event.ContextServerMain,
				Name:    event.ServerAcceptError,
				Error:   err.Error(),
			})
			continue
		}
		go s.handle(conn)
	}
}

// handle performs exactly one read and, on success, one ACK write.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	base := event.Event{
		Zone:    s.zone,
		Context: event.ContextServer,
		Peer:    conn.RemoteAddr().String(),
	}

	ev := base
	ev.Name = event.ConnectionReceived
	s.events.Emit(ev)

	buf := make([]byte, wire.BufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		ev = base
		ev.Name = event.ReceiveFailSocketError
		ev.Error = err.Error()
		s.events.Emit(ev)
		return
	}
	if n == 0 {
		ev = base
		ev.Name = event.ConnectionEmpty
		s.events.Emit(ev)
		return
	}

	msg, err := wire.Decode(buf[:n])
	if err != nil {
		// Close without replying; the sender reads the missing ACK as failure.
		ev = base
		ev.Name = event.ReceiveFailBadJSON
		s.events.Emit(ev)
		return
	}

	rogue := msg.IsRogue
	ev = base
	ev.Name = event.ReceivedData
	ev.Payload = &msg
	ev.IsRoguePayload = &rogue
	s.events.Emit(ev)

	if s.relay != nil {
		rec := handoff.Record{
			OriginalSourceZone:    msg.SourceZone,
			OriginalMessageID:     msg.MessageID,
			OriginalDataReference: msg.DataReference,
			OriginalContentType:   msg.ContentType,
			WasRogue:              msg.IsRogue,
			ProcessedBy:           s.zone,
			ProcessedAt:           time.Now().UTC(),
		}
		ev = base
		ev.PayloadReference = msg.DataReference
		if s.relay.TryPush(rec) {
			ev.Name = event.DataQueuedForClientPart
		} else {
			ev.Name = event.DataQueueFullDropped
		}
		s.events.Emit(ev)
	}

	// ACK even when the handoff overflowed: receipt itself succeeded.
	conn.Write(wire.AckToken)
}
