// Command momoctl parses MoMo SMS exports and runs syncs from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"momopress/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "momoctl",
		Short:         "Inspect and import MTN MoMo SMS",
		Long:          `momoctl classifies MTN Mobile Money SMS from an SMS backup or an Android message database and imports them into the MoMo Press store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newParseCmd(), newBalanceCmd(), newSyncCmd(), newAlertsCmd())
	return root
}
