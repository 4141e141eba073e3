package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
	"github.com/x32kit/x32kit/x32"
)

var (
	faderDB     float64
	faderLinear float64
)

var faderCmd = &cobra.Command{
	Use:   "fader <strip>",
	Short: "Read or move a strip fader",
	Long: `Read or move the mix fader of a strip (ch/N, bus/N, dca/N, main/st,
main/m). Without a level flag the current position is printed in both
linear and dB form.

  x32ctl fader ch/5
  x32ctl fader ch/5 --db -10.5
  x32ctl fader main/st --linear 0.75`,
	Args: cobra.ExactArgs(1),
	RunE: runFader,
}

func init() {
	faderCmd.Flags().Float64Var(&faderDB, "db", faderUnset, "target level in dB [-90, +10]")
	faderCmd.Flags().Float64Var(&faderLinear, "linear", faderUnset, "target level linear [0.0, 1.0]")
	rootCmd.AddCommand(faderCmd)
}

// faderUnset marks a level flag the user did not pass.
const faderUnset = -1000

func runFader(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	path := target.FaderPath()

	if faderDB == faderUnset && faderLinear == faderUnset {
		v, err := conn.GetTarget(cmd.Context(), target, path)
		if err != nil {
			return printer.Error("fader %s: %v", args[0], err)
		}
		f, ok := v.Float32()
		if !ok {
			return printer.Error("fader %s: unexpected %s reply", args[0], v.Kind())
		}
		printer.Field(args[0], "%.4f (%.1f dB)", f, x32.FaderToDB(f))
		return nil
	}

	var level float32
	switch {
	case faderDB != faderUnset && faderLinear != faderUnset:
		return printer.Error("pass either --db or --linear, not both")
	case faderDB != faderUnset:
		level = x32.DBToFader(faderDB)
	default:
		if faderLinear < 0 || faderLinear > 1 {
			return printer.Error("--linear %g out of range [0.0, 1.0]", faderLinear)
		}
		level = float32(faderLinear)
	}

	if err := conn.SetTarget(cmd.Context(), target, path, osc.Float(level)); err != nil {
		return printer.Error("fader %s: %v", args[0], err)
	}
	printer.Success("%s fader = %.4f (%.1f dB)\n", args[0], level, x32.FaderToDB(level))
	return nil
}
