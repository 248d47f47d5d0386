package beidou

import "testing"

func TestPointIntersectsRect(t *testing.T) {
	r := Envelope{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{Lon: 5, Lat: 5}, true},
		{"on edge", Point{Lon: 0, Lat: 5}, true},
		{"on corner", Point{Lon: 10, Lat: 10}, true},
		{"outside", Point{Lon: 11, Lat: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IntersectsRect(r); got != tt.want {
				t.Errorf("Point(%v).IntersectsRect(%v) = %v, want %v", tt.p, r, got, tt.want)
			}
		})
	}
}

func TestSegmentIntersectsRect(t *testing.T) {
	r := Envelope{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}
	tests := []struct {
		name string
		s    Segment
		want bool
	}{
		{"crosses", Segment{A: Point{Lon: -5, Lat: 5}, B: Point{Lon: 15, Lat: 5}}, true},
		{"fully inside", Segment{A: Point{Lon: 2, Lat: 2}, B: Point{Lon: 8, Lat: 8}}, true},
		{"both left", Segment{A: Point{Lon: -5, Lat: 5}, B: Point{Lon: -1, Lat: 5}}, false},
		{"both above", Segment{A: Point{Lon: 5, Lat: 11}, B: Point{Lon: 6, Lat: 20}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IntersectsRect(r); got != tt.want {
				t.Errorf("Segment(%v).IntersectsRect(%v) = %v, want %v", tt.s, r, got, tt.want)
			}
		})
	}
}

func TestPolygonIntersectsRect(t *testing.T) {
	square := Polygon{Vertices: []Point{
		{Lon: 0, Lat: 0}, {Lon: 4, Lat: 0}, {Lon: 4, Lat: 4}, {Lon: 0, Lat: 4},
	}}

	tests := []struct {
		name string
		r    Envelope
		want bool
	}{
		{"rect inside polygon", Envelope{MinLon: 1, MinLat: 1, MaxLon: 2, MaxLat: 2}, true},
		{"polygon vertex inside rect", Envelope{MinLon: -1, MinLat: -1, MaxLon: 1, MaxLat: 1}, true},
		{"disjoint", Envelope{MinLon: 10, MinLat: 10, MaxLon: 12, MaxLat: 12}, false},
		{"edge crossing", Envelope{MinLon: -2, MinLat: 1, MaxLon: 1, MaxLat: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square.IntersectsRect(tt.r); got != tt.want {
				t.Errorf("square.IntersectsRect(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestPolygonContainsPoint(t *testing.T) {
	triangle := Polygon{Vertices: []Point{
		{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 5, Lat: 10},
	}}

	if !triangle.containsPoint(Point{Lon: 5, Lat: 3}) {
		t.Error("expected (5,3) inside triangle")
	}
	if triangle.containsPoint(Point{Lon: 9, Lat: 9}) {
		t.Error("expected (9,9) outside triangle")
	}
}

func TestEnvelopeIntersects(t *testing.T) {
	a := Envelope{MinLon: 0, MinLat: 0, MaxLon: 5, MaxLat: 5}
	b := Envelope{MinLon: 5, MinLat: 5, MaxLon: 10, MaxLat: 10}
	c := Envelope{MinLon: 6, MinLat: 6, MaxLon: 10, MaxLat: 10}

	if !a.Intersects(b) {
		t.Error("expected touching envelopes to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected disjoint envelopes to not intersect")
	}
}
