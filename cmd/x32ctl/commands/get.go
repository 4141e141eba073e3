package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
)

var getCmd = &cobra.Command{
	Use:   "get <address>",
	Short: "Read one console parameter by OSC address",
	Long: `Read one console parameter by its absolute OSC address and print the
reply value, e.g.:

  x32ctl get /ch/01/mix/fader
  x32ctl get /ch/01/config/name`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	v, err := conn.Get(cmd.Context(), args[0])
	if err != nil {
		return printer.Error("get %s: %v", args[0], err)
	}

	printer.Info("%s\t%s (%s)\n", args[0], v, v.Kind())
	return nil
}
