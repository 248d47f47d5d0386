package grid

import "github.com/shopspring/decimal"

// MaxLevel is the finest refinement depth GB/T 39409-2020 defines.
const MaxLevel = 10

// HeightBitRange names the inclusive [Lo,Hi] bit positions a level owns
// within the 32-bit height integer, 1-indexed from the least significant
// bit (bit 32 itself, the sign, is never part of any level's range).
type HeightBitRange struct {
	Lo, Hi int
}

// Width reports the number of bits in the range.
func (r HeightBitRange) Width() int { return r.Hi - r.Lo + 1 }

// levelSpec holds every per-level constant GB/T 39409-2020 defines for
// one of the ten refinement levels.
type levelSpec struct {
	DeltaLonArcsec  float64
	DeltaLatArcsec  float64
	DeltaLonDecimal decimal.Decimal
	DeltaLatDecimal decimal.Decimal
	FanOutLon       int
	FanOutLat       int
	FragmentLen     int // 2D fragment character count
	HeightBits      int
	HeightRadix     int
	HeightFragLen   int // height fragment character count
	Bits            HeightBitRange
}

// Levels is indexed 1..10; index 0 is unused (the zero value would not
// describe a real level and is never read).
var Levels [MaxLevel + 1]levelSpec

// Cumulative2DLen[L] is the full 2D code length (including the leading
// hemisphere letter) for a code truncated at level L.
var Cumulative2DLen [MaxLevel + 1]int

// Cumulative3DLen[L] is the full 3D code length (including the
// hemisphere letter and the height sign digit) for a code truncated at
// level L.
var Cumulative3DLen [MaxLevel + 1]int

func degreesFromArcsec(arcsec float64) decimal.Decimal {
	return decimal.NewFromFloat(arcsec).Div(decimal.NewFromInt(3600)).Truncate(10)
}

func init() {
	raw := []struct {
		lonArcsec, latArcsec    float64
		fanLon, fanLat          int
		fragLen                 int
		heightBits, heightRadix int
		heightFragLen           int
		bitLo, bitHi            int
	}{
		// L1
		{21600, 14400, 60, 22, 3, 6, 10, 2, 26, 31},
		// L2
		{1800, 1800, 12, 8, 2, 3, 8, 1, 23, 25},
		// L3
		{900, 600, 2, 3, 1, 1, 2, 1, 22, 22},
		// L4
		{60, 60, 15, 10, 2, 4, 16, 1, 18, 21},
		// L5
		{4, 4, 15, 15, 2, 4, 16, 1, 14, 17},
		// L6
		{2, 2, 2, 2, 1, 1, 2, 1, 13, 13},
		// L7
		{0.25, 0.25, 8, 8, 2, 3, 8, 1, 10, 12},
		// L8
		{0.03125, 0.03125, 8, 8, 2, 3, 8, 1, 7, 9},
		// L9
		{1.0 / 256, 1.0 / 256, 8, 8, 2, 3, 8, 1, 4, 6},
		// L10
		{1.0 / 2048, 1.0 / 2048, 8, 8, 2, 3, 8, 1, 1, 3},
	}

	cum2D, cum3D := 1, 2 // hemisphere letter; + height sign digit for 3D
	Cumulative2DLen[0] = cum2D
	Cumulative3DLen[0] = cum3D
	for i, r := range raw {
		level := i + 1
		Levels[level] = levelSpec{
			DeltaLonArcsec:  r.lonArcsec,
			DeltaLatArcsec:  r.latArcsec,
			DeltaLonDecimal: degreesFromArcsec(r.lonArcsec),
			DeltaLatDecimal: degreesFromArcsec(r.latArcsec),
			FanOutLon:       r.fanLon,
			FanOutLat:       r.fanLat,
			FragmentLen:     r.fragLen,
			HeightBits:      r.heightBits,
			HeightRadix:     r.heightRadix,
			HeightFragLen:   r.heightFragLen,
			Bits:            HeightBitRange{Lo: r.bitLo, Hi: r.bitHi},
		}
		cum2D += r.fragLen
		cum3D += r.fragLen + r.heightFragLen
		Cumulative2DLen[level] = cum2D
		Cumulative3DLen[level] = cum3D
	}
}

// LevelForLength2D returns the level whose 2D code length equals n, or 0
// if no level matches.
func LevelForLength2D(n int) int {
	for l := 1; l <= MaxLevel; l++ {
		if Cumulative2DLen[l] == n {
			return l
		}
	}
	return 0
}

// LevelForLength3D returns the level whose 3D code length equals n, or 0
// if no level matches.
func LevelForLength3D(n int) int {
	for l := 1; l <= MaxLevel; l++ {
		if Cumulative3DLen[l] == n {
			return l
		}
	}
	return 0
}
