/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tessera/engine"
	"github.com/spaghettifunk/tessera/testbed"
)

func main() {
	configPath := flag.String("config", "tessera.toml", "path to the application config")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		panic(err)
	}

	tb, err := testbed.NewTestGame(config, *configPath)
	if err != nil {
		panic(err)
	}

	engine, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// cancel the frame loop on system calls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// run engine
	runErr := engine.Run(ctx)
	if err := engine.Shutdown(); err != nil {
		panic(err)
	}
	if runErr != nil {
		panic(runErr)
	}
}
