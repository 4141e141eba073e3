package x32

import (
	"fmt"
	"strings"
)

// Target identifies one addressable strip on the console: an input channel,
// a mix bus, an FX rack, a DCA group, or one of the two mains. A Target plus
// a relative parameter path (e.g. "mix/fader", "config/name") formats to the
// console's absolute OSC address. Index validation happens here, before any
// datagram is built.
type Target struct {
	kind  targetKind
	index int
}

type targetKind uint8

const (
	targetChannel targetKind = iota
	targetBus
	targetFX
	targetDCA
	targetMainStereo
	targetMainMono
)

// Index bounds per target kind; indexes are 1-based.
const (
	NumChannels = 32
	NumBuses    = 16
	NumFX       = 8
	NumDCAs     = 8
)

// Channel addresses input channel n (1-32) as /ch/{nn}.
func Channel(n int) Target { return Target{kind: targetChannel, index: n} }

// Bus addresses mix bus n (1-16) as /bus/{nn}.
func Bus(n int) Target { return Target{kind: targetBus, index: n} }

// FX addresses effects rack n (1-8) as /fx/{n}.
func FX(n int) Target { return Target{kind: targetFX, index: n} }

// DCA addresses DCA group n (1-8) as /dca/{n}.
func DCA(n int) Target { return Target{kind: targetDCA, index: n} }

// MainStereo addresses the stereo main bus as /main/st.
func MainStereo() Target { return Target{kind: targetMainStereo} }

// MainMono addresses the mono/center main bus as /main/m.
func MainMono() Target { return Target{kind: targetMainMono} }

// Address validates the target's index and formats the absolute OSC address
// for the given relative parameter path.
func (t Target) Address(path string) (string, error) {
	if path == "" || strings.HasPrefix(path, "/") {
		return "", &ValidationError{What: "parameter path", Input: path}
	}

	switch t.kind {
	case targetChannel:
		if t.index < 1 || t.index > NumChannels {
			return "", &RangeError{What: "channel", Value: t.index, Min: 1, Max: NumChannels}
		}
		return fmt.Sprintf("/ch/%02d/%s", t.index, path), nil

	case targetBus:
		if t.index < 1 || t.index > NumBuses {
			return "", &RangeError{What: "bus", Value: t.index, Min: 1, Max: NumBuses}
		}
		return fmt.Sprintf("/bus/%02d/%s", t.index, path), nil

	case targetFX:
		if t.index < 1 || t.index > NumFX {
			return "", &RangeError{What: "fx rack", Value: t.index, Min: 1, Max: NumFX}
		}
		return fmt.Sprintf("/fx/%d/%s", t.index, path), nil

	case targetDCA:
		if t.index < 1 || t.index > NumDCAs {
			return "", &RangeError{What: "dca", Value: t.index, Min: 1, Max: NumDCAs}
		}
		return fmt.Sprintf("/dca/%d/%s", t.index, path), nil

	case targetMainStereo:
		return "/main/st/" + path, nil

	case targetMainMono:
		return "/main/m/" + path, nil
	}
	return "", &ValidationError{What: "target", Input: fmt.Sprintf("kind(%d)", t.kind)}
}

// FaderPath returns the relative path of the strip's level fader. DCA groups
// expose it directly under the strip; everything else nests it under mix/.
func (t Target) FaderPath() string {
	if t.kind == targetDCA {
		return "fader"
	}
	return "mix/fader"
}

// MutePath returns the relative path of the strip's on-switch, which carries
// mute state inverted: the switch reads 1 while the strip is unmuted. DCA
// groups expose it directly under the strip; everything else nests it under
// mix/.
func (t Target) MutePath() string {
	if t.kind == targetDCA {
		return "on"
	}
	return "mix/on"
}

// String implements the fmt.Stringer interface.
func (t Target) String() string {
	switch t.kind {
	case targetChannel:
		return fmt.Sprintf("ch/%02d", t.index)
	case targetBus:
		return fmt.Sprintf("bus/%02d", t.index)
	case targetFX:
		return fmt.Sprintf("fx/%d", t.index)
	case targetDCA:
		return fmt.Sprintf("dca/%d", t.index)
	case targetMainStereo:
		return "main/st"
	case targetMainMono:
		return "main/m"
	}
	return "invalid"
}
