package grid

import "testing"

func TestChildrenOf2DCountMatchesFanOut(t *testing.T) {
	for level := 1; level < MaxLevel; level++ {
		code, err := Encode2D(120.5830508, 31.1415575, level)
		if err != nil {
			t.Fatalf("Encode2D level %d error: %v", level, err)
		}
		children, err := ChildrenOf2D(code)
		if err != nil {
			t.Fatalf("ChildrenOf2D(%q) error: %v", code, err)
		}
		want := Levels[level+1].FanOutLon * Levels[level+1].FanOutLat
		if len(children) != want {
			t.Errorf("level %d: len(children) = %d, want %d", level, len(children), want)
		}
		seen := make(map[string]bool, len(children))
		for _, c := range children {
			if len(c) != Cumulative2DLen[level+1] {
				t.Errorf("child %q has wrong length for level %d", c, level+1)
			}
			if seen[c] {
				t.Errorf("duplicate child code %q", c)
			}
			seen[c] = true
		}
	}
}

func TestChildrenOf2DRejectsLevel10(t *testing.T) {
	code, err := Encode2D(120.58, 31.14, MaxLevel)
	if err != nil {
		t.Fatalf("Encode2D error: %v", err)
	}
	if _, err := ChildrenOf2D(code); err == nil {
		t.Error("expected InvalidArgumentError for level 10 parent")
	}
}

func TestChildrenOf3DCountMatchesFanOutTimesSlabs(t *testing.T) {
	code, err := Encode3D(120.5830508, 31.1415575, 50, 2, HeightModelRadians)
	if err != nil {
		t.Fatalf("Encode3D error: %v", err)
	}
	children, err := ChildrenOf3D(code)
	if err != nil {
		t.Fatalf("ChildrenOf3D(%q) error: %v", code, err)
	}
	childSpec := Levels[3]
	want := childSpec.FanOutLon * childSpec.FanOutLat * (1 << uint(childSpec.HeightBits))
	if len(children) != want {
		t.Errorf("len(children) = %d, want %d", len(children), want)
	}
	for _, c := range children {
		if len(c) != Cumulative3DLen[3] {
			t.Errorf("child %q has wrong length", c)
		}
	}
}
