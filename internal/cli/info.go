package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/shamirbackup/go-slip39"
	"github.com/shamirbackup/go-slip39/internal/metrics"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info MNEMONIC",
		Short: "Validate a mnemonic and show its share parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			started := time.Now()
			defer func() { a.metrics.RecordOperation(metrics.OpInfo, started, err) }()

			share, err := slip39.ParseShare(args[0])
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).PrintShare(share)
		},
	}
}
