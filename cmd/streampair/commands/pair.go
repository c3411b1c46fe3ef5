package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streampair/streampair-go/cmd/streampair/display"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/pairing"
)

type pairOptions struct {
	pin        string
	passphrase string
	address    string
	name       string
}

func newPairCommand(a *app) *cobra.Command {
	var opts pairOptions

	cmd := &cobra.Command{
		Use:   "pair <host-id>",
		Short: "Pair with a host using its one-time PIN",
		Long: `Pair with a host using the 4-digit PIN and passphrase shown on the host.

The host must be known, either from discovery, the configuration file or
--address, which records it first.`,
		Example: `  streampair pair htpc --pin 4321 --passphrase hunter2
  streampair pair den --address 192.168.1.20 --pin 4321`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&opts.pin, "pin", "", "4-digit PIN shown on the host (required)")
	cmd.Flags().StringVar(&opts.passphrase, "passphrase", "", "Passphrase shown on the host")
	cmd.Flags().StringVar(&opts.address, "address", "", "Record the host at this address before pairing")
	cmd.Flags().StringVar(&opts.name, "name", "", "Display name when recording with --address")
	_ = cmd.MarkFlagRequired("pin")

	cmd.RunE = withState(a, func(cmd *cobra.Command, args []string) error {
		return runPair(cmd.Context(), a, strings.ToLower(args[0]), opts)
	})
	return cmd
}

func runPair(ctx context.Context, a *app, hostID string, opts pairOptions) error {
	if opts.address != "" {
		if err := recordHost(a.store, hostID, opts.address, opts.name); err != nil {
			return err
		}
	}

	session := a.newSession()
	defer session.Close()

	done := make(chan pairing.Event, 1)
	session.OnEvent(func(ev pairing.Event) {
		display.PairingEvent(a.stdout, ev)
		if ev.Type.IsTerminal() {
			done <- ev
		}
	})

	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := session.StartPairing(ctx, hostID, opts.pin, opts.passphrase); err != nil {
		return err
	}

	var final pairing.Event
	select {
	case final = <-done:
	case <-ctx.Done():
		if err := session.Cancel(); err != nil && !errors.Is(err, pairing.ErrNotInProgress) {
			return err
		}
		final = <-done
	}

	switch final.Type {
	case pairing.EventCompleted:
		fmt.Fprintf(a.stdout, "Paired with %s.\n", hostID)
		return nil
	case pairing.EventCancelled:
		return errors.New("pairing cancelled")
	default:
		return final.Err
	}
}

// recordHost inserts or updates a host record with an explicit address.
func recordHost(store host.Store, id, address, name string) error {
	h, err := store.Get(id)
	switch {
	case err == nil:
	case errors.Is(err, host.ErrHostNotFound):
		h = &host.Host{ID: id, PairState: host.PairStateNotPaired}
	default:
		return err
	}
	h.Address = address
	if name != "" {
		h.Name = name
	}
	return store.Put(h)
}
