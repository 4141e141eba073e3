package commands

import (
	"github.com/spf13/cobra"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/osc"
	"github.com/x32kit/x32kit/x32"
)

var muteCmd = &cobra.Command{
	Use:   "mute <strip> [on|off]",
	Short: "Read or toggle a strip mute",
	Long: `Read or set the mute state of a strip (ch/N, bus/N, dca/N, main/st,
main/m). The console stores the on-switch, so "mute on" turns the
switch off and vice versa.

  x32ctl mute ch/5
  x32ctl mute ch/5 on
  x32ctl mute dca/2 off`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMute,
}

func init() {
	rootCmd.AddCommand(muteCmd)
}

func runMute(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	conn, cleanup, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	path := target.MutePath()

	if len(args) == 1 {
		v, err := conn.GetTarget(cmd.Context(), target, path)
		if err != nil {
			return printer.Error("mute %s: %v", args[0], err)
		}
		on, ok := v.Int32()
		if !ok {
			return printer.Error("mute %s: unexpected %s reply", args[0], v.Kind())
		}
		state := "muted"
		if on != 0 {
			state = "unmuted"
		}
		printer.Field(args[0], "%s", state)
		return nil
	}

	on, err := parseMute(args[1])
	if err != nil {
		return printer.Error("%v", err)
	}

	if err := conn.SetTarget(cmd.Context(), target, path, osc.Int(on)); err != nil {
		return printer.Error("mute %s: %v", args[0], err)
	}
	state := "muted"
	if on != 0 {
		state = "unmuted"
	}
	printer.Success("%s %s\n", args[0], state)
	return nil
}

// parseMute maps a mute request onto the wire value of the on-switch,
// which is 0 while the strip is muted.
func parseMute(raw string) (int32, error) {
	switch raw {
	case "on", "true", "1":
		return 0, nil
	case "off", "false", "0":
		return 1, nil
	}
	return 0, &x32.ValidationError{What: "mute state", Input: raw}
}
