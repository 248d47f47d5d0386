// Package beidou is the public API for encoding and decoding GB/T
// 39409-2020 BeiDou Grid Location Codes. It wraps the unexported engine
// in internal/grid, converting between the engine's plain float64
// coordinates and this package's validated GeoPoint.
package beidou

import (
	"math"
	"runtime"
	"sync"

	"github.com/beidougrid/codec/internal/grid"
)

// GeoPoint is a validated geographic point: longitude and latitude in
// decimal degrees, height in metres (ellipsoidal). Construct one with
// NewGeoPoint; the zero value is the origin and is itself valid.
type GeoPoint struct {
	Lon    float64
	Lat    float64
	Height float64
}

// NewGeoPoint validates lon, lat and height and returns a GeoPoint. It
// rejects NaN/Inf in any field and out-of-range longitude/latitude. No
// encoder re-validates a GeoPoint built this way.
func NewGeoPoint(lon, lat, height float64) (GeoPoint, error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return GeoPoint{}, &InvalidArgumentError{Field: "lon", Value: lon, Reason: "must be finite"}
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return GeoPoint{}, &InvalidArgumentError{Field: "lat", Value: lat, Reason: "must be finite"}
	}
	if math.IsNaN(height) || math.IsInf(height, 0) {
		return GeoPoint{}, &InvalidArgumentError{Field: "height", Value: height, Reason: "must be finite"}
	}
	if lon < -180 || lon > 180 {
		return GeoPoint{}, &InvalidArgumentError{Field: "lon", Value: lon, Reason: "must be in [-180,180]"}
	}
	if lat < -90 || lat > 90 {
		return GeoPoint{}, &InvalidArgumentError{Field: "lat", Value: lat, Reason: "must be in [-90,90]"}
	}
	return GeoPoint{Lon: lon, Lat: lat, Height: height}, nil
}

// Codec encodes and decodes BeiDou grid codes under a fixed set of
// options (height model, worker count, optional decode cache).
type Codec struct {
	opts EncodeOptions
}

// NewCodec returns a Codec configured by opts.
func NewCodec(opts EncodeOptions) *Codec {
	return &Codec{opts: opts}
}

// DefaultCodec returns a Codec using DefaultEncodeOptions().
func DefaultCodec() *Codec {
	return NewCodec(DefaultEncodeOptions())
}

func (c *Codec) workers() int {
	if c.opts.Workers > 0 {
		return c.opts.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Encode2D converts p to a 2D grid code at level.
func (c *Codec) Encode2D(p GeoPoint, level int) (string, error) {
	return grid.Encode2D(p.Lon, p.Lat, level)
}

// Decode2D converts a 2D grid code to the corner of the cell it names
// that is nearest the origin (the south-west corner in the NE
// hemisphere), along with the level the code's length implies.
func (c *Codec) Decode2D(code string) (GeoPoint, int, error) {
	decode := func(code string) (GeoPoint, error) {
		lon, lat, _, err := grid.Decode2D(code)
		if err != nil {
			return GeoPoint{}, err
		}
		return GeoPoint{Lon: lon, Lat: lat}, nil
	}
	var (
		p   GeoPoint
		err error
	)
	if c.opts.Cache != nil {
		p, err = c.opts.Cache.GetOrDecode(code, decode)
	} else {
		p, err = decode(code)
	}
	if err != nil {
		return GeoPoint{}, 0, err
	}
	return p, grid.LevelForLength2D(len(code)), nil
}

// Encode3D converts p (including height) to an interleaved 3D grid code
// at level, using the Codec's configured height model.
func (c *Codec) Encode3D(p GeoPoint, level int) (string, error) {
	return grid.Encode3D(p.Lon, p.Lat, p.Height, level, c.opts.HeightModel)
}

// Decode3D converts a 3D grid code to the corner of the cell it names
// that is nearest the origin, as Decode2D does (height is the base of
// the height slab).
func (c *Codec) Decode3D(code string) (GeoPoint, int, error) {
	decode := func(code string) (GeoPoint, error) {
		lon, lat, h, _, err := grid.Decode3D(code, c.opts.HeightModel)
		if err != nil {
			return GeoPoint{}, err
		}
		return GeoPoint{Lon: lon, Lat: lat, Height: h}, nil
	}
	var (
		p   GeoPoint
		err error
	)
	if c.opts.Cache != nil {
		p, err = c.opts.Cache.GetOrDecode(code, decode)
	} else {
		p, err = decode(code)
	}
	if err != nil {
		return GeoPoint{}, 0, err
	}
	return p, grid.LevelForLength3D(len(code)), nil
}

// ChildrenOf2D enumerates the 2D child codes of a parent code.
func (c *Codec) ChildrenOf2D(code string) ([]string, error) {
	return grid.ChildrenOf2D(code)
}

// ChildrenOf3D enumerates the 3D child codes of a parent code.
func (c *Codec) ChildrenOf3D(code string) ([]string, error) {
	return grid.ChildrenOf3D(code)
}

type encodeJob struct {
	index int
	point GeoPoint
}

type encodeResult struct {
	index int
	code  string
	err   error
}

// EncodeMany encodes many points at the same level across a bounded
// worker pool. Encoding is stateless and embarrassingly parallel, so
// this fans out with the usual jobs-channel/results-channel/WaitGroup
// shape: a jobs channel, a results channel, a WaitGroup, and one
// goroutine draining results into a slice indexed by input order.
func (c *Codec) EncodeMany(points []GeoPoint, level int) ([]string, error) {
	if len(points) == 0 {
		return nil, nil
	}

	jobs := make(chan encodeJob)
	results := make(chan encodeResult)

	workers := c.workers()
	if workers > len(points) {
		workers = len(points)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				code, err := c.Encode2D(job.point, level)
				results <- encodeResult{index: job.index, code: code, err: err}
			}
		}()
	}

	go func() {
		for i, p := range points {
			jobs <- encodeJob{index: i, point: p}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]string, len(points))
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			continue
		}
		out[res.index] = res.code
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
