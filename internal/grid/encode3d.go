package grid

import (
	"math"
	"strconv"
	"strings"
)

func extractBits(n uint32, lo, hi int) uint32 {
	width := uint(hi - lo + 1)
	mask := uint32(1)<<width - 1
	return (n >> uint(lo-1)) & mask
}

func formatHeightFragment(value uint32, radix, width int) string {
	s := strings.ToUpper(strconv.FormatUint(uint64(value), radix))
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// Encode3D converts a point with ellipsoidal height to an interleaved
// BeiDou 3D grid code per GB/T 39409-2020 §4.5. The 2D fragments are
// derived in arc-seconds rather than exact decimal degrees: every
// level's arc-second delta is an integer or a negative power of two, so
// the float64 accumulation carries no drift, and re-deriving the
// decimal bases Encode2D already computed would be redundant work.
func Encode3D(lonDeg, latDeg, heightM float64, level int, model HeightModel) (string, error) {
	if level < 1 || level > MaxLevel {
		return "", &InvalidArgumentError{Field: "level", Value: level, Reason: "must be in [1,10]"}
	}
	if math.Abs(latDeg) >= 88 {
		return "", &UnsupportedPolarError{Reason: "|latitude| >= 88 degrees"}
	}

	h := FromPoint(lonDeg, latDeg)

	n := HeightToN(heightM, model)
	signByte := byte('0')
	mag := n
	if n < 0 {
		signByte = '1'
		mag = -n
	}
	magU := uint32(mag)

	var sb strings.Builder
	sb.WriteByte(h.LatChar())
	sb.WriteByte(signByte)

	// Degrees are converted to arc-seconds on a grid of 1/(2048e6) of an
	// arc-second, so a corner Decode3D returned (a multiple of the finest
	// cell, divided by 3600) converts back to exactly that multiple.
	toArcsec := func(deg float64) float64 { return math.Round(deg*3600*2048e6) / 2048e6 }
	baseLonArcsec := 0.0
	baseLatArcsec := 0.0
	signedLonArcsec := toArcsec(lonDeg)
	absLonArcsec := toArcsec(math.Abs(lonDeg))
	absLatArcsec := toArcsec(math.Abs(latDeg))

	for i := 1; i <= level; i++ {
		spec := Levels[i]
		curLon := absLonArcsec
		if i == 1 {
			curLon = signedLonArcsec
		}

		lp := int(math.Floor((curLon - baseLonArcsec) / spec.DeltaLonArcsec))
		tp := int(math.Floor((absLatArcsec - baseLatArcsec) / spec.DeltaLatArcsec))

		var frag2D string
		var err error
		if i == 1 {
			lonMag := lp
			if !h.IsEast() {
				lonMag = int(math.Floor(absLonArcsec / spec.DeltaLonArcsec))
				lp = -lonMag - 1
			}
			baseLonArcsec += float64(lonMag) * spec.DeltaLonArcsec
			baseLatArcsec += float64(tp) * spec.DeltaLatArcsec
			frag2D = encodeLevel1Fragment(lp, tp)
		} else {
			baseLonArcsec += float64(lp) * spec.DeltaLonArcsec
			baseLatArcsec += float64(tp) * spec.DeltaLatArcsec
			frag2D, err = encodeLevelFragment(i, lp, tp, h)
			if err != nil {
				return "", err
			}
		}

		heightVal := extractBits(magU, spec.Bits.Lo, spec.Bits.Hi)
		fragH := formatHeightFragment(heightVal, spec.HeightRadix, spec.HeightFragLen)

		sb.WriteString(frag2D)
		sb.WriteString(fragH)
	}

	return sb.String(), nil
}

