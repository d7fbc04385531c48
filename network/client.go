// Package network implements the client side of the replication
// protocol: the snapshot receive loop shared by clients and observers,
// the input send loop, and the merge of authoritative snapshots into the
// locally predicted world.
package network

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/automoto/rockfall-mp/shared/messages"
	"github.com/automoto/rockfall-mp/shared/netconfig"
	"github.com/automoto/rockfall-mp/shared/protocol"
	"github.com/automoto/rockfall-mp/sim"
)

// Client connects a process to a remote server. The zero value is not
// usable; construct with NewClient.
type Client struct {
	shared *sim.SharedWorld
	setup  netconfig.NetSetup
}

// NewClient wires a connector to the shared world.
func NewClient(shared *sim.SharedWorld, setup netconfig.NetSetup) *Client {
	return &Client{shared: shared, setup: setup}
}

// ConnectObserver joins as a spectator: snapshots only, no player slot,
// no input ever sent. The local player index is cleared so the
// simulation never injects input.
func (c *Client) ConnectObserver(addr string) error {
	w := c.shared.Lock()
	w.LocalPlayerIndex = -1
	c.shared.Unlock()

	return c.startReceiver(addr)
}

// Connect joins as a playing client: the snapshot stream plus the input
// stream with its player-slot handshake.
func (c *Client) Connect(addr string) error {
	if err := c.startReceiver(addr); err != nil {
		return err
	}

	conn, err := c.dial(addr, protocol.PortInput)
	if err != nil {
		return err
	}

	log.Printf("[client] connected, transfer rate %dms", c.setup.TransferMS)
	go c.sendLoop(conn)
	return nil
}

func (c *Client) dial(addr string, port int) (net.Conn, error) {
	conn, err := net.Dial("tcp", fmt.Sprintf("%s:%d", addr, port))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", addr, port, err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		c.setup.Apply(tcp)
	}
	return conn, nil
}

// startReceiver dials the snapshot port and spawns the receive loop.
func (c *Client) startReceiver(addr string) error {
	conn, err := c.dial(addr, protocol.PortSnapshots)
	if err != nil {
		return err
	}
	go c.recvLoop(conn)
	return nil
}

// recvLoop applies one snapshot per transfer interval until the stream
// dies. A frame that fails to decode is dropped; the loop keeps going.
func (c *Client) recvLoop(conn net.Conn) {
	defer conn.Close()

	interval := c.setup.TransferInterval()
	mark := time.Now()
	for {
		mark = netconfig.Pace(mark, interval)

		c.pushDeadline(conn)
		cmd, payload, err := protocol.ReadMessage(conn)
		if err != nil {
			log.Printf("[client] snapshot stream lost: %v", err)
			return
		}
		if cmd != protocol.CmdServerSnapshot {
			continue
		}

		var snap messages.ServerSnapshot
		if err := protocol.Decode(payload, &snap); err != nil {
			continue
		}

		w := c.shared.Lock()
		ApplySnapshot(w, &snap)
		c.shared.Unlock()
	}
}

// sendLoop waits for the handshake assigning our player slot, then
// reports input once per transfer interval.
func (c *Client) sendLoop(conn net.Conn) {
	defer conn.Close()

	c.pushDeadline(conn)
	cmd, payload, err := protocol.ReadMessage(conn)
	if err != nil {
		log.Printf("[client] input stream lost before handshake: %v", err)
		return
	}
	if cmd == protocol.CmdJoinAccepted {
		var assign messages.JoinAccepted
		if err := protocol.Decode(payload, &assign); err == nil {
			w := c.shared.Lock()
			w.LocalPlayerIndex = int(assign.PlayerIndex)
			c.shared.Unlock()
			log.Printf("[client] assigned local player %d", assign.PlayerIndex)
		}
	}

	interval := c.setup.TransferInterval()
	mark := time.Now()
	for {
		mark = netconfig.Pace(mark, interval)

		w := c.shared.Lock()
		input := messages.InputFromWorld(w)
		c.shared.Unlock()

		c.pushDeadline(conn)
		if _, err := protocol.WriteMessage(conn, protocol.CmdClientInput, input); err != nil {
			log.Printf("[client] input stream lost: %v", err)
			return
		}
	}
}

func (c *Client) pushDeadline(conn net.Conn) {
	if d := c.setup.Deadline(); d > 0 {
		conn.SetDeadline(time.Now().Add(d))
	}
}
