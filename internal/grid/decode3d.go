package grid

import "strconv"

// Decode3D converts an interleaved BeiDou 3D grid code back to the
// corner of the cell it names that is nearest the origin (as Decode2D
// does), along with the base of its height slab.
func Decode3D(code string, model HeightModel) (lonDeg, latDeg, heightM float64, level int, err error) {
	level = LevelForLength3D(len(code))
	if level == 0 {
		return 0, 0, 0, 0, &InvalidCodeError{Code: code, Reason: "length does not match any level's 3D code length"}
	}
	if len(code) < 4 {
		return 0, 0, 0, 0, &InvalidCodeError{Code: code, Reason: "too short to contain a hemisphere, sign digit and level-1 fragment"}
	}

	north := code[0] == 'N'
	switch code[1] {
	case '0', '1':
	default:
		return 0, 0, 0, 0, &InvalidCodeError{Code: code, Reason: "height sign digit must be '0' or '1'"}
	}
	negativeHeight := code[1] == '1'

	lng1, perr := strconv.Atoi(code[2:4])
	if perr != nil {
		return 0, 0, 0, 0, &InvalidCodeError{Code: code, Reason: "level-1 longitude digits do not parse as decimal"}
	}
	east := lng1 >= 31
	var h Hemisphere
	switch {
	case north && east:
		h = NE
	case north && !east:
		h = NW
	case !north && !east:
		h = SW
	default:
		h = SE
	}

	signLon, signLat := 1.0, 1.0
	if !east {
		signLon = -1.0
	}
	if !north {
		signLat = -1.0
	}

	var lonArcsec, latArcsec float64
	var magU uint32
	pos := Cumulative3DLen[0]
	for i := 1; i <= level; i++ {
		spec := Levels[i]
		frag2D := code[pos : pos+spec.FragmentLen]
		pos += spec.FragmentLen
		fragH := code[pos : pos+spec.HeightFragLen]
		pos += spec.HeightFragLen

		var lngMag, latMag int
		if i == 1 {
			lngMag, latMag, err = decodeLevel1Fragment(frag2D)
		} else {
			lngMag, latMag, err = decodeLevelFragment(i, frag2D, h)
		}
		if err != nil {
			return 0, 0, 0, 0, err
		}
		lonArcsec += float64(lngMag) * spec.DeltaLonArcsec
		latArcsec += float64(latMag) * spec.DeltaLatArcsec

		hv, herr := strconv.ParseUint(fragH, spec.HeightRadix, 32)
		if herr != nil {
			return 0, 0, 0, 0, &InvalidCodeError{Code: fragH, Reason: "height fragment does not parse in its level radix"}
		}
		magU |= uint32(hv) << uint(spec.Bits.Lo-1)
	}

	lonDeg = signLon * lonArcsec / 3600
	latDeg = signLat * latArcsec / 3600

	n := int64(magU)
	if negativeHeight {
		// Below zero the slab's bottom has the largest magnitude: every
		// bit finer than this level's range is set.
		n = -(n | (int64(1)<<uint(Levels[level].Bits.Lo-1) - 1))
	}
	heightM = NToHeight(n, model)

	return lonDeg, latDeg, heightM, level, nil
}
