// Package core runs the server side of the replication protocol: two
// TCP listeners (snapshots out, input in), one goroutine per accepted
// connection, and the handshake that assigns each genuine client a
// player slot. Observers connect to the snapshot port only and are
// indistinguishable from clients there.
package core

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/automoto/rockfall-mp/shared/messages"
	"github.com/automoto/rockfall-mp/shared/netconfig"
	"github.com/automoto/rockfall-mp/shared/protocol"
	"github.com/automoto/rockfall-mp/sim"
)

// Server owns the two listeners and fans out connection goroutines. It
// never simulates; the world is advanced by whichever loop hosts it (the
// windowed game or the dedicated GameLoop).
type Server struct {
	shared *sim.SharedWorld
	setup  netconfig.NetSetup
}

// NewServer wires the server to the shared world.
func NewServer(shared *sim.SharedWorld, setup netconfig.NetSetup) *Server {
	return &Server{shared: shared, setup: setup}
}

// Start binds both listeners and spawns the accept loops. A bind
// failure is returned and is fatal to the process; there is no fallback
// port.
func (s *Server) Start() error {
	snapListener, err := net.Listen("tcp", fmt.Sprintf(":%d", protocol.PortSnapshots))
	if err != nil {
		return fmt.Errorf("bind snapshot port: %w", err)
	}
	inputListener, err := net.Listen("tcp", fmt.Sprintf(":%d", protocol.PortInput))
	if err != nil {
		return fmt.Errorf("bind input port: %w", err)
	}

	log.Printf("[server] listening: snapshots :%d, input :%d, transfer %dms",
		protocol.PortSnapshots, protocol.PortInput, s.setup.TransferMS)

	go s.acceptLoop(snapListener, s.serveSnapshots)
	go s.acceptLoop(inputListener, s.serveInput)
	return nil
}

func (s *Server) acceptLoop(l net.Listener, serve func(id string, conn net.Conn)) {
	for {
		conn, err := l.Accept()
		if err != nil {
			log.Printf("[server] accept on %s failed: %v", l.Addr(), err)
			return
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			s.setup.Apply(tcp)
		}
		id := uuid.NewString()[:8]
		log.Printf("[server] conn %s: %s connected on %s", id, conn.RemoteAddr(), l.Addr())
		go serve(id, conn)
	}
}

// serveSnapshots is the per-connection outbound loop: one full snapshot
// per transfer interval, paced against wall time. Serialization happens
// under the world lock, the socket write after it is released.
func (s *Server) serveSnapshots(id string, conn net.Conn) {
	defer conn.Close()

	w := s.shared.Lock()
	w.Connections++
	s.shared.Unlock()
	defer func() {
		w := s.shared.Lock()
		w.Connections--
		s.shared.Unlock()
	}()

	interval := s.setup.TransferInterval()
	maxPacket := 0

	mark := time.Now()
	for {
		mark = netconfig.Pace(mark, interval)

		w := s.shared.Lock()
		snap := messages.SnapshotFromWorld(w)
		s.shared.Unlock()

		s.pushDeadline(conn)
		n, err := protocol.WriteMessage(conn, protocol.CmdServerSnapshot, snap)
		if err != nil {
			log.Printf("[server] conn %s: send failed, dropping: %v", id, err)
			return
		}
		if n > maxPacket {
			maxPacket = n
			log.Printf("[server] conn %s: new max packet size %d", id, n)
		}
	}
}

// serveInput registers a player slot for the connection, answers with
// the handshake, then applies ClientInput frames until the stream dies.
// The slot is never reclaimed; a vanished client leaves a ship with
// stale input.
func (s *Server) serveInput(id string, conn net.Conn) {
	defer conn.Close()

	w := s.shared.Lock()
	playerIndex := w.AddPlayer()
	w.DifficultyMult *= 2
	s.shared.Unlock()

	log.Printf("[server] conn %s: assigned player %d", id, playerIndex)

	s.pushDeadline(conn)
	assign := messages.JoinAccepted{PlayerIndex: uint32(playerIndex)}
	if _, err := protocol.WriteMessage(conn, protocol.CmdJoinAccepted, assign); err != nil {
		log.Printf("[server] conn %s: handshake failed: %v", id, err)
		return
	}

	interval := s.setup.TransferInterval()
	mark := time.Now()
	for {
		mark = netconfig.Pace(mark, interval)

		s.pushDeadline(conn)
		cmd, payload, err := protocol.ReadMessage(conn)
		if err != nil {
			log.Printf("[server] conn %s: read failed, dropping: %v", id, err)
			return
		}
		if cmd != protocol.CmdClientInput {
			continue
		}

		var input messages.ClientInput
		if err := protocol.Decode(payload, &input); err != nil {
			// Bad payload inside a well-framed message: drop it and
			// keep the connection running.
			continue
		}

		w := s.shared.Lock()
		input.Apply(w, playerIndex)
		s.shared.Unlock()
	}
}

func (s *Server) pushDeadline(conn net.Conn) {
	if d := s.setup.Deadline(); d > 0 {
		conn.SetDeadline(time.Now().Add(d))
	}
}
