package grid

import "strconv"

// hemisphereOf3DCode reads the hemisphere out of a 3D code, where the
// level-1 longitude digits sit one position later than in a 2D code
// (the height sign digit occupies position 2).
func hemisphereOf3DCode(code string) (Hemisphere, error) {
	if len(code) < 4 {
		return 0, &InvalidCodeError{Code: code, Reason: "too short to determine hemisphere"}
	}
	north := code[0] == 'N'
	lng1, err := strconv.Atoi(code[2:4])
	if err != nil {
		return 0, &InvalidCodeError{Code: code, Reason: "level-1 longitude digits do not parse as decimal"}
	}
	east := lng1 >= 31
	switch {
	case north && east:
		return NE, nil
	case north && !east:
		return NW, nil
	case !north && !east:
		return SW, nil
	default:
		return SE, nil
	}
}

// ChildrenOf2D enumerates the 2D child codes of a parent code: every
// (row, col) cell of the child level's fan-out, appended directly as a
// new fragment onto the parent string. The child codes are exact by
// construction; no point is decoded or re-encoded.
func ChildrenOf2D(parentCode string) ([]string, error) {
	level := LevelForLength2D(len(parentCode))
	if level == 0 {
		return nil, &InvalidCodeError{Code: parentCode, Reason: "length does not match any level's 2D code length"}
	}
	if level >= MaxLevel {
		return nil, &InvalidArgumentError{Field: "level", Value: level, Reason: "level 10 has no children"}
	}
	h, err := FromCode(parentCode)
	if err != nil {
		return nil, err
	}

	childLevel := level + 1
	spec := Levels[childLevel]
	out := make([]string, 0, spec.FanOutLon*spec.FanOutLat)
	for row := 0; row < spec.FanOutLat; row++ {
		for col := 0; col < spec.FanOutLon; col++ {
			frag, ferr := encodeLevelFragment(childLevel, col, row, h)
			if ferr != nil {
				return nil, ferr
			}
			out = append(out, parentCode+frag)
		}
	}
	return out, nil
}

// ChildrenOf3D enumerates the 3D child codes of a parent code: every 2D
// child cell crossed with every height slab the child level's own bits
// can represent.
func ChildrenOf3D(parentCode string) ([]string, error) {
	level := LevelForLength3D(len(parentCode))
	if level == 0 {
		return nil, &InvalidCodeError{Code: parentCode, Reason: "length does not match any level's 3D code length"}
	}
	if level >= MaxLevel {
		return nil, &InvalidArgumentError{Field: "level", Value: level, Reason: "level 10 has no children"}
	}
	h, err := hemisphereOf3DCode(parentCode)
	if err != nil {
		return nil, err
	}

	childLevel := level + 1
	spec := Levels[childLevel]
	slabCount := 1 << uint(spec.HeightBits)
	out := make([]string, 0, spec.FanOutLon*spec.FanOutLat*slabCount)
	for row := 0; row < spec.FanOutLat; row++ {
		for col := 0; col < spec.FanOutLon; col++ {
			frag, ferr := encodeLevelFragment(childLevel, col, row, h)
			if ferr != nil {
				return nil, ferr
			}
			for s := 0; s < slabCount; s++ {
				fragH := formatHeightFragment(uint32(s), spec.HeightRadix, spec.HeightFragLen)
				out = append(out, parentCode+frag+fragH)
			}
		}
	}
	return out, nil
}
