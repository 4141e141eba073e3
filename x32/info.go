package x32

import (
	"fmt"

	"github.com/x32kit/x32kit/osc"
)

// Info is the console's reply to the /info probe.
type Info struct {
	ServerVersion string
	ServerName    string
	Model         string
	Firmware      string
}

// String implements the fmt.Stringer interface.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (server %s %s)", i.Model, i.Firmware, i.ServerName, i.ServerVersion)
}

// Status is the console's reply to the /status query.
type Status struct {
	State      string
	IP         string
	ServerName string
}

// parseInfo narrows the /info reply: exactly four strings.
func parseInfo(args []osc.Value) (Info, error) {
	fields, err := stringFields("/info", args, 4)
	if err != nil {
		return Info{}, err
	}
	return Info{
		ServerVersion: fields[0],
		ServerName:    fields[1],
		Model:         fields[2],
		Firmware:      fields[3],
	}, nil
}

// parseStatus narrows the /status reply: three or more strings.
func parseStatus(args []osc.Value) (Status, error) {
	if len(args) < 3 {
		return Status{}, &ResponseError{
			Address: "/status",
			Want:    "at least 3 strings",
			Got:     fmt.Sprintf("%d arguments", len(args)),
		}
	}
	fields, err := stringFields("/status", args[:3], 3)
	if err != nil {
		return Status{}, err
	}
	return Status{
		State:      fields[0],
		IP:         fields[1],
		ServerName: fields[2],
	}, nil
}

// stringFields narrows a fixed-shape reply to n string arguments.
func stringFields(address string, args []osc.Value, n int) ([]string, error) {
	if len(args) != n {
		return nil, &ResponseError{
			Address: address,
			Want:    fmt.Sprintf("%d strings", n),
			Got:     fmt.Sprintf("%d arguments", len(args)),
		}
	}
	fields := make([]string, n)
	for i, a := range args {
		s, ok := a.AsString()
		if !ok {
			return nil, &ResponseError{
				Address: address,
				Want:    fmt.Sprintf("%d strings", n),
				Got:     fmt.Sprintf("%s at position %d", a.Kind(), i),
			}
		}
		fields[i] = s
	}
	return fields, nil
}
