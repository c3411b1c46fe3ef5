// Package commands implements the streampair CLI commands.
package commands

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the streampair command tree writing to stdout and
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newRootCommand(newApp(stdout, stderr))
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "streampair",
		Short: "Pair with game streaming hosts using a one-time PIN",
		Long: `streampair pairs this client with a game streaming host using the host's
one-time PIN and optional passphrase, discovers hosts on the local network
and keeps a record of paired hosts in its state directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.ConfigPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&a.opts.StateDir, "state-dir", "", "Directory for identity and hosts (overrides config)")
	flags.StringVar(&a.opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.opts.ProtocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")
	flags.StringVar(&a.opts.UniqueID, "unique-id", "", "Client unique ID sent to hosts (16 hex characters)")
	flags.StringVar(&a.opts.DeviceName, "device-name", "", "Device name sent to hosts")
	flags.DurationVar(&a.opts.Timeout, "timeout", 0, "Pairing request timeout")

	root.AddCommand(
		newPairCommand(a),
		newDiscoverCommand(a),
		newHostsCommand(a),
		newLogCommand(a),
		newInteractiveCommand(a),
	)
	return root
}

// withState runs fn between app.open and app.close.
func withState(a *app, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.open(); err != nil {
			return err
		}
		defer func() {
			if cerr := a.close(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}
