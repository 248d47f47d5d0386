package grid

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// divPrecision is the working precision used before flooring a decimal
// quotient. It is well past the 10 fractional digits the Design Notes
// require of the stored per-level deltas, so the floor below never
// truncates a value the deltas themselves couldn't represent exactly.
const divPrecision = 30

func floorInt(d decimal.Decimal) int {
	return int(d.Floor().IntPart())
}

// Encode2D converts a point to a BeiDou 2D grid code at the given level,
// using exact decimal arithmetic for the base-corner accumulation per
// spec (binary floats drift after repeated division by non-terminating
// fractions like 10/60 once the level reaches single arc-second cells).
func Encode2D(lonDeg, latDeg float64, level int) (string, error) {
	if level < 1 || level > MaxLevel {
		return "", &InvalidArgumentError{Field: "level", Value: level, Reason: "must be in [1,10]"}
	}
	if math.Abs(latDeg) >= 88 {
		return "", &UnsupportedPolarError{Reason: "|latitude| >= 88 degrees"}
	}

	h := FromPoint(lonDeg, latDeg)

	var sb strings.Builder
	sb.WriteByte(h.LatChar())

	baseLon := decimal.Zero
	baseLat := decimal.Zero
	signedLon := decimal.NewFromFloat(lonDeg)
	absLon := decimal.NewFromFloat(math.Abs(lonDeg))
	absLat := decimal.NewFromFloat(math.Abs(latDeg))

	for i := 1; i <= level; i++ {
		spec := Levels[i]
		curLon := absLon
		if i == 1 {
			curLon = signedLon
		}

		lp := floorInt(curLon.Sub(baseLon).DivRound(spec.DeltaLonDecimal, divPrecision))
		tp := floorInt(absLat.Sub(baseLat).DivRound(spec.DeltaLatDecimal, divPrecision))

		if i == 1 {
			mag := lp
			if !h.IsEast() {
				// West columns count outward from the meridian, so the
				// column edge nearest the meridian belongs to the column.
				mag = floorInt(absLon.DivRound(spec.DeltaLonDecimal, divPrecision))
				lp = -mag - 1
			}
			baseLon = baseLon.Add(decimal.NewFromInt(int64(mag)).Mul(spec.DeltaLonDecimal))
			baseLat = baseLat.Add(decimal.NewFromInt(int64(tp)).Mul(spec.DeltaLatDecimal))
			sb.WriteString(encodeLevel1Fragment(lp, tp))
			continue
		}

		baseLon = baseLon.Add(decimal.NewFromInt(int64(lp)).Mul(spec.DeltaLonDecimal))
		baseLat = baseLat.Add(decimal.NewFromInt(int64(tp)).Mul(spec.DeltaLatDecimal))

		frag, err := encodeLevelFragment(i, lp, tp, h)
		if err != nil {
			return "", err
		}
		sb.WriteString(frag)
	}

	return sb.String(), nil
}
