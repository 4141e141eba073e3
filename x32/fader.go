package x32

// The console maps its dB scale onto the linear 0.0-1.0 fader value with a
// four-segment piecewise-linear taper. Resolution is finest near unity gain:
// 0 dB sits at 0.75 linear, and the bottom 30 linear steps cover -90..-60 dB.
//
//	-90 .. -60 dB  ->  0.0    .. 0.0625
//	-60 .. -30 dB  ->  0.0625 .. 0.25
//	-30 .. -10 dB  ->  0.25   .. 0.5
//	-10 .. +10 dB  ->  0.5    .. 1.0

// DBToFader converts a decibel level in [-90, +10] to the console's linear
// fader value in [0.0, 1.0]. Inputs outside the interval are clamped.
func DBToFader(db float64) float32 {
	switch {
	case db <= -90:
		return 0
	case db >= 10:
		return 1
	case db < -60:
		return float32((db + 90) / 480)
	case db < -30:
		return float32((db + 70) / 160)
	case db < -10:
		return float32((db + 50) / 80)
	default:
		return float32((db + 30) / 40)
	}
}

// FaderToDB converts a linear fader value in [0.0, 1.0] to decibels in
// [-90, +10]. Inputs outside the interval are clamped.
func FaderToDB(f float32) float64 {
	v := float64(f)
	switch {
	case v <= 0:
		return -90
	case v >= 1:
		return 10
	case v >= 0.5:
		return v*40 - 30
	case v >= 0.25:
		return v*80 - 50
	case v >= 0.0625:
		return v*160 - 70
	default:
		return v*480 - 90
	}
}
