package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print console model, firmware and server version",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print console state and network address",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statusCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := conn.Info(cmd.Context())
	if err != nil {
		return printer.Error("info: %v", err)
	}

	printer.Field("model", "%s", info.Model)
	printer.Field("firmware", "%s", info.Firmware)
	printer.Field("server", "%s %s", info.ServerName, info.ServerVersion)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := conn.Status(cmd.Context())
	if err != nil {
		return printer.Error("status: %v", err)
	}

	printer.Field("state", "%s", st.State)
	printer.Field("address", "%s", st.IP)
	printer.Field("server", "%s", st.ServerName)
	return nil
}
