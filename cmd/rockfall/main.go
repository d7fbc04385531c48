// Rockfall is the playable binary. The process role is picked from the
// argument shape:
//
//	rockfall [difficulty]     host a server (local player 0)
//	rockfall c <address>      join a server as a client
//	rockfall s <address>      watch a server as an observer
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/automoto/rockfall-mp/client"
	"github.com/automoto/rockfall-mp/network"
	"github.com/automoto/rockfall-mp/server/core"
	"github.com/automoto/rockfall-mp/shared/netconfig"
	"github.com/automoto/rockfall-mp/sim"
)

func main() {
	fmt.Println("Welcome to Rockfall")

	args := os.Args[1:]
	setup := netconfig.Load()

	difficulty := float32(1.0)
	if len(args) == 1 {
		if d, err := strconv.ParseFloat(args[0], 32); err == nil {
			difficulty = float32(d)
		}
	}

	world := sim.NewWorld(difficulty)
	shared := sim.NewSharedWorld(world)

	switch {
	case len(args) >= 2 && strings.HasPrefix(args[0], "s"):
		c := network.NewClient(shared, setup)
		if err := c.ConnectObserver(args[1]); err != nil {
			log.Fatalf("observer connect failed: %v", err)
		}
		log.Printf("observing %s", args[1])

	case len(args) >= 2:
		c := network.NewClient(shared, setup)
		if err := c.Connect(args[1]); err != nil {
			log.Fatalf("connect failed: %v", err)
		}

	default:
		log.Printf("hosting, difficulty multiplier %.1f", difficulty)
		srv := core.NewServer(shared, setup)
		if err := srv.Start(); err != nil {
			log.Fatalf("server start failed: %v", err)
		}
	}

	if err := client.Run(shared); err != nil {
		log.Fatalf("game error: %v", err)
	}
}
