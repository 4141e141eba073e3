package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
)

var nameCmd = &cobra.Command{
	Use:   "name <strip> [name]",
	Short: "Read or set a strip scribble name",
	Long: `Read or set the scribble-strip name of a strip (ch/N, bus/N, dca/N,
main/st, main/m).

  x32ctl name ch/5
  x32ctl name ch/5 "Lead Vox"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runName,
}

func init() {
	rootCmd.AddCommand(nameCmd)
}

func runName(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := target.Address("config/name")
	if err != nil {
		return err
	}

	if len(args) == 1 {
		name, err := conn.GetString(cmd.Context(), addr)
		if err != nil {
			return printer.Error("name %s: %v", args[0], err)
		}
		printer.Field(args[0], "%q", name)
		return nil
	}

	if err := conn.SetTarget(cmd.Context(), target, "config/name", osc.String(args[1])); err != nil {
		return printer.Error("name %s: %v", args[0], err)
	}
	printer.Success("%s named %q\n", args[0], args[1])
	return nil
}
