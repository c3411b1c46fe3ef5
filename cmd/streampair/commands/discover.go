package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/streampair/streampair-go/cmd/streampair/display"
)

func newDiscoverCommand(a *app) *cobra.Command {
	var (
		timeout time.Duration
		iface   string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Browse the local network for streaming hosts",
		Long: `Browse for hosts advertising _nvstream._tcp over mDNS and record them in
the host store. Known hosts keep their pairing state.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().DurationVar(&timeout, "browse-timeout", 0, "How long to browse (default from config)")
	cmd.Flags().StringVar(&iface, "interface", "", "Network interface to browse on")

	cmd.RunE = withState(a, func(cmd *cobra.Command, _ []string) error {
		scanner, err := a.newScanner(timeout, iface)
		if err != nil {
			return err
		}

		found, err := scanner.Scan(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		fmt.Fprintf(a.stdout, "Found %d host(s).\n", len(found))
		display.HostTable(a.stdout, found)
		return nil
	})
	return cmd
}
