package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
	"github.com/x32kit/x32kit/x32"
)

var colorCmd = &cobra.Command{
	Use:   "color <strip> [name]",
	Short: "Read or set a strip's scribble-strip color",
	Long: `Read or set the scribble-strip color of a strip. Colors are off, red,
green, yellow, blue, magenta, cyan and white, each also available
inverted with the -inv suffix:

  x32ctl color ch/5
  x32ctl color ch/5 red
  x32ctl color ch/5 red-inv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runColor,
}

func init() {
	rootCmd.AddCommand(colorCmd)
}

func runColor(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 1 {
		addr, err := target.Address("config/color")
		if err != nil {
			return printer.Error("color %s: %v", args[0], err)
		}
		n, err := conn.GetInt(cmd.Context(), addr)
		if err != nil {
			return printer.Error("color %s: %v", args[0], err)
		}
		name, err := x32.ColorName(int(n))
		if err != nil {
			return printer.Error("color %s: console returned %d: %v", args[0], n, err)
		}
		printer.Field(args[0], "%s (%d)", name, n)
		return nil
	}

	c, err := x32.ColorFromName(args[1])
	if err != nil {
		return printer.Error("color %s: %v", args[0], err)
	}
	if err := conn.SetTarget(cmd.Context(), target, "config/color", osc.Int(int32(c))); err != nil {
		return printer.Error("color %s: %v", args[0], err)
	}
	printer.Success("%s color = %s\n", args[0], c)
	return nil
}
