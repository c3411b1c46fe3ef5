// Command streampair pairs this client with game streaming hosts using the
// host's one-time PIN.
//
// Usage:
//
//	streampair [global flags] <command> [flags]
//
// Commands:
//
//	pair         Pair with a host using its one-time PIN
//	discover     Browse the local network for streaming hosts
//	hosts        Manage known hosts
//	log          Inspect protocol log files
//	interactive  Start an interactive pairing shell
//
// Examples:
//
//	# Find hosts on the local network
//	streampair discover
//
//	# Pair with a discovered host
//	streampair pair htpc --pin 4321 --passphrase hunter2
//
//	# Capture the exchange and inspect it afterwards
//	streampair --protocol-log pair.cbor pair htpc --pin 4321
//	streampair log view --category message pair.cbor
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/streampair/streampair-go/cmd/streampair/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
