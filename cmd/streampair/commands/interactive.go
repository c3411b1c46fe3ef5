package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/streampair/streampair-go/cmd/streampair/interactive"
	"github.com/streampair/streampair-go/pkg/host"
)

func newInteractiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"shell"},
		Short:   "Start an interactive pairing shell",
		Args:    cobra.NoArgs,
		RunE: withState(a, func(cmd *cobra.Command, _ []string) error {
			session := a.newSession()
			defer session.Close()

			shell, err := interactive.New(interactive.Config{
				Session: session,
				Hosts:   a.store,
				Scan: func(ctx context.Context) ([]*host.Host, error) {
					scanner, err := a.newScanner(0, "")
					if err != nil {
						return nil, err
					}
					return scanner.Scan(ctx)
				},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			shell.Run(ctx)
			return nil
		}),
	}
}
