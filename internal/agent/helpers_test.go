package agent

import (
	"net"
	"sync"
	"testing"
	"time"

	"zonegate-sim/internal/event"
)

// sink captures events for assertions.
type sink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *sink) Write(e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *sink) all() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.events...)
}

func (s *sink) byName(name string) []event.Event {
	var out []event.Event
	for _, e := range s.all() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// waitFor polls until at least one event with the given name arrives.
func (s *sink) waitFor(t *testing.T, name string, timeout time.Duration) event.Event {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if evs := s.byName(name); len(evs) > 0 {
			return evs[0]
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s event; got %v", name, names(s.all()))
	return event.Event{}
}

func names(evs []event.Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Name
	}
	return out
}

func newTestLog() (*event.Log, *sink) {
	s := &sink{}
	return event.NewLog(s), s
}

// ackServer accepts connections, reads one message, and replies with the
// given bytes (nil to never reply). Received payloads go to the channel.
func ackServer(t *testing.T, reply []byte) (addr *net.TCPAddr, received chan []byte, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	received = make(chan []byte, 16)
	done := make(chan struct{})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				buf := make([]byte, 2048)
				n, err := c.Read(buf)
				if err != nil {
					return
				}
				select {
				case received <- append([]byte(nil), buf[:n]...):
				default:
				}
				if reply != nil {
					c.Write(reply)
				} else {
					<-done
				}
			}(conn)
		}
	}()
	return ln.Addr().(*net.TCPAddr), received, func() {
		close(done)
		ln.Close()
	}
}

// closedPort returns a localhost port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

// fixedClock returns a clock stuck at the given second within the minute.
func fixedClock(sec int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, sec, 0, time.UTC)
	}
}
