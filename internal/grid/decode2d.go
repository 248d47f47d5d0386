package grid

// Decode2D converts a BeiDou 2D grid code back to the corner of the cell
// it names that is nearest the origin (0,0): the south-west corner in
// the NE hemisphere, the north-east corner in the SW hemisphere. Height
// is always 0; callers that need height use Decode3D.
func Decode2D(code string) (lonDeg, latDeg float64, level int, err error) {
	level = LevelForLength2D(len(code))
	if level == 0 {
		return 0, 0, 0, &InvalidCodeError{Code: code, Reason: "length does not match any level's 2D code length"}
	}

	h, err := FromCode(code)
	if err != nil {
		return 0, 0, 0, err
	}
	signLon := 1.0
	if !h.IsEast() {
		signLon = -1.0
	}
	signLat := 1.0
	if h.LatChar() != 'N' {
		signLat = -1.0
	}

	var lonArcsec, latArcsec float64
	pos := Cumulative2DLen[0]
	for i := 1; i <= level; i++ {
		spec := Levels[i]
		frag := code[pos : pos+spec.FragmentLen]
		pos += spec.FragmentLen

		var lngMag, latMag int
		if i == 1 {
			lngMag, latMag, err = decodeLevel1Fragment(frag)
			if err != nil {
				return 0, 0, 0, err
			}
		} else {
			lngMag, latMag, err = decodeLevelFragment(i, frag, h)
			if err != nil {
				return 0, 0, 0, err
			}
		}
		lonArcsec += float64(lngMag) * spec.DeltaLonArcsec
		latArcsec += float64(latMag) * spec.DeltaLatArcsec
	}

	lonDeg = signLon * lonArcsec / 3600
	latDeg = signLat * latArcsec / 3600
	return lonDeg, latDeg, level, nil
}
