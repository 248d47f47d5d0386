package grid

import "testing"

func TestDecode2DScenario3(t *testing.T) {
	lon, lat, level, err := Decode2D("N31A")
	if err != nil {
		t.Fatalf("Decode2D(%q) error: %v", "N31A", err)
	}
	if level != 1 {
		t.Errorf("level = %d, want 1", level)
	}
	if lon != 0 || lat != 0 {
		t.Errorf("Decode2D(N31A) = (%v,%v), want (0,0)", lon, lat)
	}
}

func TestDecode2DRejectsWrongLength(t *testing.T) {
	if _, _, _, err := Decode2D("N3"); err == nil {
		t.Error("expected InvalidCodeError for unmatched length")
	}
}

func TestDecode2DRejectsReservedLongitudeIndexZero(t *testing.T) {
	if _, _, _, err := Decode2D("N00A"); err == nil {
		t.Error("expected UnsupportedPolarError for level-1 longitude digit 00")
	}
}

func TestEncode2DIsLeftInverseOfDecode2D(t *testing.T) {
	codes := []string{"N31A", "N01A", "S01A", "S31A", "N60V", "S60V"}
	for _, c := range codes {
		lon, lat, level, err := Decode2D(c)
		if err != nil {
			t.Fatalf("Decode2D(%q) error: %v", c, err)
		}
		got, err := Encode2D(lon, lat, level)
		if err != nil {
			t.Fatalf("Encode2D(%v,%v,%d) error: %v", lon, lat, level, err)
		}
		if got != c {
			t.Errorf("encode(decode(%q)) = %q, want %q", c, got, c)
		}
	}
}

func TestEncode2DDecode2DRoundTripAcrossLevels(t *testing.T) {
	points := []struct{ lon, lat float64 }{
		{120.5830508, 31.1415575},
		{120.637779, 31.2720680},
		{-73.5, 45.25},
		{-0.001, -0.001},
		{179.999, 87.5},
		{-179.999, -87.5},
	}
	for _, p := range points {
		for level := 1; level <= MaxLevel; level++ {
			code, err := Encode2D(p.lon, p.lat, level)
			if err != nil {
				t.Fatalf("Encode2D(%v,%v,%d) error: %v", p.lon, p.lat, level, err)
			}
			if len(code) != Cumulative2DLen[level] {
				t.Errorf("len(encode2D(%v,%v,%d)) = %d, want %d", p.lon, p.lat, level, len(code), Cumulative2DLen[level])
			}
			if code[0] != 'N' && code[0] != 'S' {
				t.Errorf("first char of %q not in {N,S}", code)
			}
			decLon, decLat, decLevel, err := Decode2D(code)
			if err != nil {
				t.Fatalf("Decode2D(%q) error: %v", code, err)
			}
			if decLevel != level {
				t.Errorf("Decode2D(%q) level = %d, want %d", code, decLevel, level)
			}
			reEncoded, err := Encode2D(decLon, decLat, level)
			if err != nil {
				t.Fatalf("re-encode error: %v", err)
			}
			if reEncoded != code {
				t.Errorf("encode(decode(encode(p))) = %q, want %q", reEncoded, code)
			}
			dLon := Levels[level].DeltaLonArcsec / 3600
			dLat := Levels[level].DeltaLatArcsec / 3600
			if diff := p.lon - decLon; diff < -dLon-1e-9 || diff > dLon+1e-9 {
				t.Errorf("level %d: decoded lon %v too far from input %v (delta %v)", level, decLon, p.lon, dLon)
			}
			if diff := p.lat - decLat; diff < -dLat-1e-9 || diff > dLat+1e-9 {
				t.Errorf("level %d: decoded lat %v too far from input %v (delta %v)", level, decLat, p.lat, dLat)
			}
		}
	}
}

func TestEncode2DRejectsPolarLatitude(t *testing.T) {
	if _, err := Encode2D(0, 88, 1); err == nil {
		t.Error("expected UnsupportedPolarError at |lat| == 88")
	}
	if _, err := Encode2D(0, -89, 1); err == nil {
		t.Error("expected UnsupportedPolarError at |lat| > 88")
	}
}

func TestEncode2DRejectsLevelOutOfRange(t *testing.T) {
	if _, err := Encode2D(0, 0, 0); err == nil {
		t.Error("expected InvalidArgumentError for level 0")
	}
	if _, err := Encode2D(0, 0, 11); err == nil {
		t.Error("expected InvalidArgumentError for level 11")
	}
}
