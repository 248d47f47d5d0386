// Command beidougrid encodes and decodes BeiDou Grid Location Codes from
// the command line.
//
// Usage:
//
//	beidougrid encode2d [flags] <lon> <lat>
//	beidougrid decode2d [flags] <code>
//	beidougrid encode3d [flags] <lon> <lat> <height>
//	beidougrid decode3d [flags] <code>
//	beidougrid children [flags] <code>
//	beidougrid intersect [flags] <geojson-file>
//
// Examples:
//
//	beidougrid encode2d -level 5 120.58305 31.14156
//	beidougrid decode2d N31A
//	beidougrid encode3d -level 3 120.58305 31.14156 47.0
//	beidougrid children N31A
//	beidougrid intersect -level 4 aoi.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/beidougrid/codec/pkg/beidou"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "encode2d":
		runEncode2D(args)
	case "decode2d":
		runDecode2D(args)
	case "encode3d":
		runEncode3D(args)
	case "decode3d":
		runDecode3D(args)
	case "children":
		runChildren(args)
	case "intersect":
		runIntersect(args)
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `beidougrid — encode and decode BeiDou Grid Location Codes

Usage:
  beidougrid encode2d [flags] <lon> <lat>
  beidougrid decode2d [flags] <code>
  beidougrid encode3d [flags] <lon> <lat> <height>
  beidougrid decode3d [flags] <code>
  beidougrid children [flags] <code>
  beidougrid intersect [flags] <geojson-file>

Examples:
  beidougrid encode2d -level 5 120.58305 31.14156
  beidougrid decode2d N31A
  beidougrid encode3d -level 3 120.58305 31.14156 47.0
  beidougrid children N31A
  beidougrid intersect -level 4 aoi.geojson`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func legacyFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("legacy-height", false, "use the legacy height-mapping constants instead of the radian-based default")
}

func codecFor(legacy bool) *beidou.Codec {
	opts := beidou.DefaultEncodeOptions()
	if legacy {
		opts.HeightModel = beidou.HeightModelLegacy
	}
	return beidou.NewCodec(opts)
}

func runEncode2D(args []string) {
	fs := flag.NewFlagSet("encode2d", flag.ExitOnError)
	level := fs.Int("level", 10, "refinement level, 1-10")
	legacy := legacyFlag(fs)
	fs.Parse(args)

	if fs.NArg() != 2 {
		fatalf("encode2d requires <lon> <lat>")
	}
	lon := parseFloat(fs.Arg(0), "lon")
	lat := parseFloat(fs.Arg(1), "lat")

	c := codecFor(*legacy)
	p, err := beidou.NewGeoPoint(lon, lat, 0)
	if err != nil {
		fatalf("%v", err)
	}
	code, err := c.Encode2D(p, *level)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(code)
}

func runDecode2D(args []string) {
	fs := flag.NewFlagSet("decode2d", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "output as JSON")
	legacy := legacyFlag(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("decode2d requires <code>")
	}
	c := codecFor(*legacy)
	p, level, err := c.Decode2D(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	if *asJSON {
		emitJSON(map[string]any{"lon": p.Lon, "lat": p.Lat, "level": level})
		return
	}
	fmt.Printf("lon=%.10f lat=%.10f level=%d\n", p.Lon, p.Lat, level)
}

func runEncode3D(args []string) {
	fs := flag.NewFlagSet("encode3d", flag.ExitOnError)
	level := fs.Int("level", 10, "refinement level, 1-10")
	legacy := legacyFlag(fs)
	fs.Parse(args)

	if fs.NArg() != 3 {
		fatalf("encode3d requires <lon> <lat> <height>")
	}
	lon := parseFloat(fs.Arg(0), "lon")
	lat := parseFloat(fs.Arg(1), "lat")
	height := parseFloat(fs.Arg(2), "height")

	c := codecFor(*legacy)
	p, err := beidou.NewGeoPoint(lon, lat, height)
	if err != nil {
		fatalf("%v", err)
	}
	code, err := c.Encode3D(p, *level)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(code)
}

func runDecode3D(args []string) {
	fs := flag.NewFlagSet("decode3d", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "output as JSON")
	legacy := legacyFlag(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("decode3d requires <code>")
	}
	c := codecFor(*legacy)
	p, level, err := c.Decode3D(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	if *asJSON {
		emitJSON(map[string]any{"lon": p.Lon, "lat": p.Lat, "height": p.Height, "level": level})
		return
	}
	fmt.Printf("lon=%.10f lat=%.10f height=%.4f level=%d\n", p.Lon, p.Lat, p.Height, level)
}

func runChildren(args []string) {
	fs := flag.NewFlagSet("children", flag.ExitOnError)
	is3D := fs.Bool("3d", false, "treat <code> as a 3D code")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("children requires <code>")
	}
	c := codecFor(false)
	var (
		kids []string
		err  error
	)
	if *is3D {
		kids, err = c.ChildrenOf3D(fs.Arg(0))
	} else {
		kids, err = c.ChildrenOf2D(fs.Arg(0))
	}
	if err != nil {
		fatalf("%v", err)
	}
	for _, k := range kids {
		fmt.Println(k)
	}
}

func runIntersect(args []string) {
	fs := flag.NewFlagSet("intersect", flag.ExitOnError)
	level := fs.Int("level", 5, "refinement level, 1-10")
	legacy := legacyFlag(fs)
	minHeight := fs.Float64("min-height", 0, "lower height bound in metres, for 3D queries")
	maxHeight := fs.Float64("max-height", 0, "upper height bound in metres, for 3D queries")
	threeD := fs.Bool("3d", false, "run a 3D (height-bounded) query")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("intersect requires <geojson-file>")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatalf("reading %s: %v", fs.Arg(0), err)
	}
	geom, err := parseGeoJSON(data)
	if err != nil {
		fatalf("parsing %s: %v", fs.Arg(0), err)
	}

	c := codecFor(*legacy)
	var codes map[string]struct{}
	if *threeD {
		codes, err = c.Find3D(geom, *level, *minHeight, *maxHeight)
	} else {
		codes, err = c.Find2D(geom, *level)
	}
	if err != nil {
		fatalf("%v", err)
	}
	for code := range codes {
		fmt.Println(code)
	}
}

// parseGeoJSON understands a single Point, LineString or Polygon
// geometry, optionally wrapped in a Feature.
func parseGeoJSON(data []byte) (beidou.Geometry, error) {
	var raw struct {
		Type        string          `json:"type"`
		Geometry    json.RawMessage `json:"geometry"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Type == "Feature" {
		return parseGeoJSON(raw.Geometry)
	}

	switch raw.Type {
	case "Point":
		var xy [2]float64
		if err := json.Unmarshal(raw.Coordinates, &xy); err != nil {
			return nil, err
		}
		return beidou.Point{Lon: xy[0], Lat: xy[1]}, nil
	case "LineString":
		var xy [][2]float64
		if err := json.Unmarshal(raw.Coordinates, &xy); err != nil {
			return nil, err
		}
		if len(xy) != 2 {
			return nil, fmt.Errorf("intersect only supports two-point LineString geometries, got %d points", len(xy))
		}
		return beidou.Segment{
			A: beidou.Point{Lon: xy[0][0], Lat: xy[0][1]},
			B: beidou.Point{Lon: xy[1][0], Lat: xy[1][1]},
		}, nil
	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(raw.Coordinates, &rings); err != nil {
			return nil, err
		}
		if len(rings) == 0 {
			return nil, fmt.Errorf("polygon has no rings")
		}
		verts := make([]beidou.Point, len(rings[0]))
		for i, c := range rings[0] {
			verts[i] = beidou.Point{Lon: c[0], Lat: c[1]}
		}
		return beidou.Polygon{Vertices: verts}, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", raw.Type)
	}
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("json encode: %v", err)
	}
}

func parseFloat(s, field string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fatalf("invalid %s %q: %v", field, s, err)
	}
	return v
}
