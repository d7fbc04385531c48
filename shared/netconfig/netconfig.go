// Package netconfig loads and applies the socket tuning shared by every
// connection: transfer pacing, deadlines, TTL and no-delay. The setup is
// read once at startup; when no saved setup exists the defaults are
// persisted so players have a file to edit.
package netconfig

import (
	"encoding/json"
	"log"
	"net"
	"time"

	"github.com/quasilyte/gdata"
)

const (
	appName  = "rockfall"
	itemName = "netsetup"
)

// NetSetup is the persisted network tuning.
type NetSetup struct {
	TransferMS  uint64 `json:"transfer_ms"` // pacing interval for every send/recv loop
	TimeoutMS   uint64 `json:"timeout_ms"`  // read/write deadline; 0 disables
	PacketTTL   uint32 `json:"packet_ttl"`
	NonBlocking bool   `json:"non_blocking"` // kept for file compatibility; Go's netpoller ignores it
	Nodelay     bool   `json:"nodelay"`
}

// Default returns the tuning used when nothing is saved: 33ms transfers,
// 1s deadlines.
func Default() NetSetup {
	return NetSetup{
		TransferMS: 33,
		TimeoutMS:  1000,
		PacketTTL:  60,
		Nodelay:    true,
	}
}

// Load reads the saved setup, or persists and returns the defaults when
// none exists. A broken store or unreadable item is not fatal — the
// defaults are used and the problem is logged.
func Load() NetSetup {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[netconfig] could not open data store: %v", err)
		return Default()
	}

	data, err := m.LoadItem(itemName)
	if err != nil {
		log.Printf("[netconfig] could not load setup: %v", err)
		return Default()
	}
	if len(data) == 0 {
		return writeDefault(m)
	}

	var setup NetSetup
	if err := json.Unmarshal(data, &setup); err != nil {
		log.Printf("[netconfig] could not parse saved setup: %v", err)
		return Default()
	}
	return setup.sanitized()
}

func writeDefault(m *gdata.Manager) NetSetup {
	setup := Default()
	data, err := json.MarshalIndent(setup, "", "  ")
	if err == nil {
		err = m.SaveItem(itemName, data)
	}
	if err != nil {
		log.Printf("[netconfig] could not persist default setup: %v", err)
	}
	return setup
}

// sanitized clamps values a hand-edited file could break. A transfer
// interval of zero would turn every pacing loop into a busy spin.
func (n NetSetup) sanitized() NetSetup {
	if n.TransferMS < 1 {
		n.TransferMS = 1
	}
	return n
}

// TransferInterval returns the pacing period for send/recv loops.
func (n NetSetup) TransferInterval() time.Duration {
	return time.Duration(n.TransferMS) * time.Millisecond
}

// Deadline returns the read/write timeout, or zero when disabled.
func (n NetSetup) Deadline() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

// Pace sleeps out the remainder of the transfer interval measured from
// mark and returns the new mark. Sleeping only the remainder keeps the
// loop at an approximately constant wall-clock cadence no matter how
// long serialization and the socket write took.
func Pace(mark time.Time, interval time.Duration) time.Time {
	if elapsed := time.Since(mark); elapsed < interval {
		time.Sleep(interval - elapsed)
	}
	return time.Now()
}

// Apply configures a freshly accepted or dialed connection.
func (n NetSetup) Apply(conn *net.TCPConn) {
	if err := conn.SetNoDelay(n.Nodelay); err != nil {
		log.Printf("[netconfig] set nodelay: %v", err)
	}
	if n.PacketTTL > 0 {
		if err := setTTL(conn, int(n.PacketTTL)); err != nil {
			log.Printf("[netconfig] set ttl: %v", err)
		}
	}
}
