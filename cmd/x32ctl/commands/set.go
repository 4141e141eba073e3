package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
)

var setType string

var setCmd = &cobra.Command{
	Use:   "set <address> <value>",
	Short: "Write one console parameter by OSC address",
	Long: `Write one console parameter by its absolute OSC address, e.g.:

  x32ctl set /ch/01/mix/fader 0.75
  x32ctl set /ch/01/config/name "Kick"
  x32ctl set /ch/01/mix/on 1 --type int

Without --type the value is sent as int if it parses as an integer,
as float if it parses as a number, and as string otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVar(&setType, "type", "", "wire type: int, float or string")
	rootCmd.AddCommand(setCmd)
}

// parseValue converts the CLI argument to the requested (or guessed) wire type.
func parseValue(raw, typ string) (osc.Value, error) {
	switch typ {
	case "int":
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return osc.Value{}, printer.Error("%q is not an int32", raw)
		}
		return osc.Int(int32(n)), nil

	case "float":
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return osc.Value{}, printer.Error("%q is not a float32", raw)
		}
		return osc.Float(float32(f)), nil

	case "string":
		return osc.String(raw), nil

	case "":
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
			return osc.Int(int32(n)), nil
		}
		if f, err := strconv.ParseFloat(raw, 32); err == nil {
			return osc.Float(float32(f)), nil
		}
		return osc.String(raw), nil
	}
	return osc.Value{}, printer.Error("unknown --type %q: want int, float or string", typ)
}

func runSet(cmd *cobra.Command, args []string) error {
	v, err := parseValue(args[1], setType)
	if err != nil {
		return err
	}

	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := conn.Set(cmd.Context(), args[0], v); err != nil {
		return printer.Error("set %s: %v", args[0], err)
	}
	printer.Success("%s = %s\n", args[0], v)
	return nil
}
