package commands

import (
	"strconv"
	"strings"

	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/x32"
)

// parseTarget turns a CLI strip spec into an engine target:
//
//	ch/5  bus/12  fx/3  dca/1  main/st  main/m
func parseTarget(spec string) (x32.Target, error) {
	kind, rest, found := strings.Cut(spec, "/")
	if !found {
		return x32.Target{}, printer.Error("invalid strip %q: want ch/N, bus/N, fx/N, dca/N, main/st or main/m", spec)
	}

	if kind == "main" {
		switch rest {
		case "st":
			return x32.MainStereo(), nil
		case "m":
			return x32.MainMono(), nil
		}
		return x32.Target{}, printer.Error("invalid main strip %q: want main/st or main/m", spec)
	}

	n, err := strconv.Atoi(rest)
	if err != nil {
		return x32.Target{}, printer.Error("invalid strip index in %q", spec)
	}

	switch kind {
	case "ch":
		return x32.Channel(n), nil
	case "bus":
		return x32.Bus(n), nil
	case "fx":
		return x32.FX(n), nil
	case "dca":
		return x32.DCA(n), nil
	}
	return x32.Target{}, printer.Error("unknown strip kind %q", kind)
}
