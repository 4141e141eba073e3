package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
	"github.com/x32kit/x32kit/x32"
)

var panCmd = &cobra.Command{
	Use:   "pan <strip> [position]",
	Short: "Read or set a strip's stereo pan",
	Long: `Read or set the stereo pan of a strip. The position accepts L/C/R
notation, a percentage, or the raw linear value:

  x32ctl pan ch/5
  x32ctl pan ch/5 L50
  x32ctl pan ch/5 -- -50%
  x32ctl pan ch/5 0.25`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPan,
}

func init() {
	rootCmd.AddCommand(panCmd)
}

func runPan(cmd *cobra.Command, args []string) error {
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
		v, err := conn.GetTarget(cmd.Context(), target, "mix/pan")
		if err != nil {
			return printer.Error("pan %s: %v", args[0], err)
		}
		lin, ok := v.Float32()
		if !ok {
			return printer.Error("pan %s: unexpected %s reply", args[0], v.Kind())
		}
		printer.Field(args[0], "%s (%+.0f%%, linear %.4f)", x32.PanToNotation(lin), x32.PanToPercent(lin), lin)
		return nil
	}

	lin, err := x32.ParsePan(args[1])
	if err != nil {
		return printer.Error("pan %s: %v", args[0], err)
	}
	if err := conn.SetTarget(cmd.Context(), target, "mix/pan", osc.Float(lin)); err != nil {
		return printer.Error("pan %s: %v", args[0], err)
	}
	printer.Success("%s pan = %s\n", args[0], x32.PanToNotation(lin))
	return nil
}
