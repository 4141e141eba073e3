package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
	"github.com/x32kit/x32kit/x32"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream parameter changes from the console",
	Long: `Subscribe to the console's parameter broadcasts and print every change
until interrupted. The console only pushes updates for ten seconds at a
time, so the subscription is renewed on an interval.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// remoteRenewal keeps the /xremote subscription alive; the console honors it
// for ten seconds.
const remoteRenewal = 8 * time.Second

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	updates := make(chan *osc.Message, 64)
	conn, cleanup, err := dial(cmd, x32.WithNotify(updates))
	if err != nil {
		return err
	}
	defer cleanup()

	if err := conn.Remote(ctx); err != nil {
		return printer.Error("monitor: %v", err)
	}
	printer.Info("monitoring console, ctrl-c to stop\n")

	renew := time.NewTicker(remoteRenewal)
	defer renew.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-renew.C:
			if err := conn.Remote(ctx); err != nil {
				return printer.Error("monitor: renew subscription: %v", err)
			}

		case m := <-updates:
			printer.Info("%s\n", m)
		}
	}
}
