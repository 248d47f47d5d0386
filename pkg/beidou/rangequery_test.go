package beidou

import (
	"testing"

	"github.com/beidougrid/codec/internal/grid"
)

func TestFind2DRejectsInvalidLevel(t *testing.T) {
	c := DefaultCodec()
	geom := Point{Lon: 120.5, Lat: 31.1}
	if _, err := c.Find2D(geom, 0); err == nil {
		t.Error("expected an error for level 0")
	}
	if _, err := c.Find2D(geom, 11); err == nil {
		t.Error("expected an error for level 11")
	}
	if _, err := c.Find2D(nil, 5); err == nil {
		t.Error("expected an error for a nil geometry")
	}
}

func TestFind2DPointMatchesItsOwnCode(t *testing.T) {
	c := DefaultCodec()
	p, err := NewGeoPoint(120.5830508, 31.1415575, 0)
	if err != nil {
		t.Fatalf("NewGeoPoint: %v", err)
	}
	want, err := c.Encode2D(p, 3)
	if err != nil {
		t.Fatalf("Encode2D: %v", err)
	}

	codes, err := c.Find2D(Point{Lon: p.Lon, Lat: p.Lat}, 3)
	if err != nil {
		t.Fatalf("Find2D: %v", err)
	}
	if _, ok := codes[want]; !ok {
		t.Errorf("Find2D result %v does not contain the point's own code %q", codes, want)
	}
}

func TestFind2DSmallPolygonReturnsNonempty(t *testing.T) {
	c := DefaultCodec()
	box := Polygon{Vertices: []Point{
		{Lon: 120, Lat: 31}, {Lon: 121, Lat: 31}, {Lon: 121, Lat: 32}, {Lon: 120, Lat: 32},
	}}

	codes, err := c.Find2D(box, 2)
	if err != nil {
		t.Fatalf("Find2D: %v", err)
	}
	if len(codes) == 0 {
		t.Error("expected at least one level-2 cell to intersect the polygon")
	}
	for code := range codes {
		if got := len([]rune(code)); got == 0 {
			t.Errorf("unexpected empty code in result")
		}
	}
}

func TestFind2DUsesConfiguredCache(t *testing.T) {
	cache := NewCache()
	c := NewCodec(EncodeOptions{Cache: cache})
	box := Polygon{Vertices: []Point{
		{Lon: 120, Lat: 31}, {Lon: 121, Lat: 31}, {Lon: 121, Lat: 32}, {Lon: 120, Lat: 32},
	}}

	if _, err := c.Find2D(box, 3); err != nil {
		t.Fatalf("Find2D: %v", err)
	}
	stats := cache.Stats()
	if stats.Misses == 0 {
		t.Error("expected Find2D's candidate sweep to populate the configured cache")
	}
}

func TestFind3DUsesConfiguredCache(t *testing.T) {
	cache := NewCache()
	c := NewCodec(EncodeOptions{Cache: cache})
	box := Polygon{Vertices: []Point{
		{Lon: 120, Lat: 31}, {Lon: 121, Lat: 31}, {Lon: 121, Lat: 32}, {Lon: 120, Lat: 32},
	}}

	if _, err := c.Find3D(box, 2, 0, 1000); err != nil {
		t.Fatalf("Find3D: %v", err)
	}
	stats := cache.Stats()
	if stats.Misses == 0 {
		t.Error("expected Find3D's candidate sweep to populate the configured cache")
	}
}

func TestFind3DRejectsBadHeightRange(t *testing.T) {
	c := DefaultCodec()
	geom := Point{Lon: 120.5, Lat: 31.1}
	if _, err := c.Find3D(geom, 3, 100, 0); err == nil {
		t.Error("expected an error when hMin > hMax")
	}
}

func TestFind3DPointMatchesItsOwnCode(t *testing.T) {
	c := DefaultCodec()
	p, err := NewGeoPoint(120.5830508, 31.1415575, 47.3)
	if err != nil {
		t.Fatalf("NewGeoPoint: %v", err)
	}
	want, err := c.Encode3D(p, 2)
	if err != nil {
		t.Fatalf("Encode3D: %v", err)
	}

	codes, err := c.Find3D(Point{Lon: p.Lon, Lat: p.Lat}, 2, 0, 200)
	if err != nil {
		t.Fatalf("Find3D: %v", err)
	}
	if _, ok := codes[want]; !ok {
		t.Errorf("Find3D result %v does not contain the point's own code %q", codes, want)
	}
}

func TestCellEnvelope2DOrientationByHemisphere(t *testing.T) {
	ne := cellEnvelope2D(10, 20, 2, grid.NE)
	if ne.MinLon != 10 || ne.MaxLon <= 10 {
		t.Errorf("NE envelope should extend east of the decoded corner: %+v", ne)
	}
	if ne.MinLat != 20 || ne.MaxLat <= 20 {
		t.Errorf("NE envelope should extend north of the decoded corner: %+v", ne)
	}
}
