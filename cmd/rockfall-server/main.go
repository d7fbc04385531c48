// rockfall-server runs a headless dedicated server: the same listeners
// and simulation as a hosting player, minus the window. Slot 0 still
// exists but never moves — players are never removed, so the inert host
// ship is part of the contract.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/rockfall-mp/server/core"
	"github.com/automoto/rockfall-mp/shared/netconfig"
	"github.com/automoto/rockfall-mp/sim"
)

func main() {
	tickRate := flag.Int("tickrate", sim.TickRate, "Simulation tick rate (updates per second)")
	difficulty := flag.Float64("difficulty", 1.0, "Base difficulty multiplier")
	flag.Parse()

	setup := netconfig.Load()

	world := sim.NewWorld(float32(*difficulty))
	shared := sim.NewSharedWorld(world)

	loop := core.NewGameLoop(shared, *tickRate)
	go loop.Run()

	srv := core.NewServer(shared, setup)
	if err := srv.Start(); err != nil {
		log.Fatalf("server start failed: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down server...")
	loop.Stop()
	os.Exit(0)
}
