package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streampair/streampair-go/cmd/streampair/display"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/transport"
)

func newHostsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "Manage known hosts",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List known hosts",
		Args:    cobra.NoArgs,
		RunE: withState(a, func(*cobra.Command, []string) error {
			display.HostTable(a.stdout, a.store.List())
			return nil
		}),
	}

	show := &cobra.Command{
		Use:   "show <host-id>",
		Short: "Show a host's details",
		Args:  cobra.ExactArgs(1),
		RunE: withState(a, func(_ *cobra.Command, args []string) error {
			h, err := a.store.Get(strings.ToLower(args[0]))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			display.HostDetails(a.stdout, h)
			return nil
		}),
	}

	var name, serverType string
	add := &cobra.Command{
		Use:   "add <host-id> <address>",
		Short: "Record a host by address",
		Args:  cobra.ExactArgs(2),
		RunE: withState(a, func(_ *cobra.Command, args []string) error {
			id := strings.ToLower(args[0])
			if err := recordHost(a.store, id, args[1], name); err != nil {
				return err
			}
			if serverType != "" {
				h, err := a.store.Get(id)
				if err != nil {
					return err
				}
				h.ServerType = host.ParseServerType(serverType)
				if err := a.store.Put(h); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.stdout, "Recorded %s at %s.\n", id, args[1])
			return nil
		}),
	}
	add.Flags().StringVar(&name, "name", "", "Display name")
	add.Flags().StringVar(&serverType, "server-type", "", "Server software: vendor or compatible")

	unpair := &cobra.Command{
		Use:   "unpair <host-id>",
		Short: "Forget a host's pairing",
		Args:  cobra.ExactArgs(1),
		RunE: withState(a, func(_ *cobra.Command, args []string) error {
			id := strings.ToLower(args[0])
			if err := a.store.Unpair(id); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			fmt.Fprintf(a.stdout, "Unpaired %s.\n", id)
			return nil
		}),
	}

	remove := &cobra.Command{
		Use:     "remove <host-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a host record",
		Args:    cobra.ExactArgs(1),
		RunE: withState(a, func(_ *cobra.Command, args []string) error {
			id := strings.ToLower(args[0])
			if err := a.store.Remove(id); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			fmt.Fprintf(a.stdout, "Removed %s.\n", id)
			return nil
		}),
	}

	var verifyAddr string
	verify := &cobra.Command{
		Use:   "verify <host-id>",
		Short: "Check that a paired host still presents its pinned certificate",
		Args:  cobra.ExactArgs(1),
		RunE: withState(a, func(c *cobra.Command, args []string) error {
			id := strings.ToLower(args[0])
			h, err := a.store.Get(id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			if !h.IsPaired() {
				return fmt.Errorf("%s: not paired", id)
			}
			pinned, err := h.Certificate()
			if err != nil {
				return fmt.Errorf("%s: stored certificate: %w", id, err)
			}
			client := a.identity.Identity()
			if client == nil {
				return fmt.Errorf("no client identity")
			}

			addr := verifyAddr
			if addr == "" {
				addr = transport.TLSAddress(h.Address)
			}
			a.logger.Debug("verifying host certificate", "host", id, "address", addr)
			if err := transport.VerifyPinnedHost(c.Context(), addr, client.TLSCertificate(), pinned, a.cfg.RequestTimeout); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			fmt.Fprintf(a.stdout, "Host %s presented its pinned certificate (%s).\n", id, display.Fingerprint(pinned.Raw))
			return nil
		}),
	}
	verify.Flags().StringVar(&verifyAddr, "addr", "", "TLS endpoint host:port (default: host address on port 47984)")

	cmd.AddCommand(list, show, add, unpair, remove, verify)
	return cmd
}
