package grid

import (
	"fmt"
	"strconv"
)

// encodeLevel1Fragment renders the special level-1 fragment: a two-digit
// decimal longitude column (offset by 31 so west columns land in 1..30
// and east columns in 31..60, a bijective relabelling of the 60 columns)
// followed by the latitude row letter 'A'+tp.
func encodeLevel1Fragment(lpSigned, tp int) string {
	return fmt.Sprintf("%02d%c", lpSigned+31, 'A'+tp)
}

// decodeLevel1Fragment inverts encodeLevel1Fragment, returning the
// unsigned magnitude (cells from the meridian / equator); the caller
// applies the overall sign from the hemisphere once, at the end.
func decodeLevel1Fragment(frag string) (lngMag, latMag int, err error) {
	if len(frag) != 3 {
		return 0, 0, &InvalidCodeError{Code: frag, Reason: "level-1 fragment must be 3 characters"}
	}
	digit, derr := strconv.Atoi(frag[:2])
	if derr != nil {
		return 0, 0, &InvalidCodeError{Code: frag, Reason: "level-1 longitude digits do not parse as decimal"}
	}
	if digit == 0 {
		return 0, 0, &UnsupportedPolarError{Reason: "level-1 longitude index 0 is reserved for polar regions"}
	}
	letter := frag[2]
	if letter < 'A' || letter > 'V' {
		return 0, 0, &InvalidCodeError{Code: frag, Reason: "level-1 latitude letter out of A..V range"}
	}
	if digit >= 31 {
		lngMag = digit - 31
	} else {
		lngMag = 30 - digit
	}
	latMag = int(letter - 'A')
	return lngMag, latMag, nil
}

// encodeLevelFragment renders the fragment for levels 2..10 from raw
// (lng, lat) cell indices: a direct per-hemisphere Z-order lookup at
// levels 3 and 6, or an H-adjusted hex pair everywhere else.
func encodeLevelFragment(level int, lng, lat int, h Hemisphere) (string, error) {
	switch level {
	case 3:
		v, err := zorderEncode(level3Tables, h, lng, lat)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(v), nil
	case 6:
		v, err := zorderEncode(level6Tables, h, lng, lat)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(v), nil
	default:
		spec := Levels[level]
		maxLng, maxLat := spec.FanOutLon-1, spec.FanOutLat-1
		adjLng, adjLat := hAdjust(lng, lat, maxLng, maxLat, h)
		if adjLng < 0 || adjLng > maxLng || adjLat < 0 || adjLat > maxLat {
			return "", &InvalidCodeError{Reason: fmt.Sprintf("level %d index out of range after hemisphere adjustment", level)}
		}
		return fmt.Sprintf("%X%X", adjLng, adjLat), nil
	}
}

// decodeLevelFragment inverts encodeLevelFragment, returning the raw
// (lng, lat) cell indices.
func decodeLevelFragment(level int, frag string, h Hemisphere) (lng, lat int, err error) {
	spec := Levels[level]
	if len(frag) != spec.FragmentLen {
		return 0, 0, &InvalidCodeError{Code: frag, Reason: fmt.Sprintf("level %d fragment must be %d characters", level, spec.FragmentLen)}
	}
	switch level {
	case 3, 6:
		v, verr := strconv.Atoi(frag)
		if verr != nil {
			return 0, 0, &InvalidCodeError{Code: frag, Reason: fmt.Sprintf("level %d Z-order digit does not parse", level)}
		}
		tables := level3Tables
		if level == 6 {
			tables = level6Tables
		}
		return zorderDecode(tables, h, v)
	default:
		maxLng, maxLat := spec.FanOutLon-1, spec.FanOutLat-1
		adjLng64, e1 := strconv.ParseInt(frag[0:1], 16, 64)
		adjLat64, e2 := strconv.ParseInt(frag[1:2], 16, 64)
		if e1 != nil || e2 != nil {
			return 0, 0, &InvalidCodeError{Code: frag, Reason: fmt.Sprintf("level %d fragment is not a valid hex pair", level)}
		}
		adjLng, adjLat := int(adjLng64), int(adjLat64)
		if adjLng > maxLng || adjLat > maxLat {
			return 0, 0, &InvalidCodeError{Code: frag, Reason: fmt.Sprintf("level %d fragment out of range", level)}
		}
		// hAdjust is its own inverse.
		lng, lat = hAdjust(adjLng, adjLat, maxLng, maxLat, h)
		return lng, lat, nil
	}
}
