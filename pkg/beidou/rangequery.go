package beidou

import (
	"fmt"
	"log"
	"sync"

	"github.com/beidougrid/codec/internal/grid"
	"github.com/dhconnelly/rtreego"
)

// cellEnvelope2D computes the real-coordinate bounding box of a 2D cell
// given the south-west-ish corner Decode2D returns: the decoded point is
// always the edge closest to the origin (0,0), so the cell extends away
// from the origin by one level-width in each hemisphere-dependent
// direction.
func cellEnvelope2D(lon, lat float64, level int, h grid.Hemisphere) Envelope {
	dLon := grid.Levels[level].DeltaLonArcsec / 3600
	dLat := grid.Levels[level].DeltaLatArcsec / 3600
	e := Envelope{}
	if h.IsEast() {
		e.MinLon, e.MaxLon = lon, lon+dLon
	} else {
		e.MinLon, e.MaxLon = lon-dLon, lon
	}
	if h.LatChar() == 'N' {
		e.MinLat, e.MaxLat = lat, lat+dLat
	} else {
		e.MinLat, e.MaxLat = lat-dLat, lat
	}
	return e
}

// level1Entry is an rtreego.Spatial wrapper around a level-1 2D code and
// its real-coordinate envelope, the same indexed-feature shape used to
// put bounding boxes into an R-tree for coarse spatial rejection.
type level1Entry struct {
	code string
	env  Envelope
}

func (e level1Entry) Bounds() rtreego.Rect {
	lonLen := e.env.MaxLon - e.env.MinLon
	latLen := e.env.MaxLat - e.env.MinLat
	if lonLen <= 0 {
		lonLen = 1e-9
	}
	if latLen <= 0 {
		latLen = 1e-9
	}
	rect, _ := rtreego.NewRect(rtreego.Point{e.env.MinLon, e.env.MinLat}, []float64{lonLen, latLen})
	return rect
}

var level1Index *rtreego.Rtree

// All 2,640 level-1 cells (2 hemispheres for latitude x 60 longitude
// digits x 22 latitude letters) partition the whole non-polar globe and
// never change, so the R-tree over them is built exactly once at
// package init, the same eager-construct-at-module-init treatment given
// to the per-hemisphere Z-order tables, extended to this coarse spatial
// index since it is just as immutable and query-independent. This
// mirrors the R-tree-over-bounding-boxes pattern used for chart feature
// indexing: build the index once, query it many times.
func init() {
	tree := rtreego.NewTree(2, 25, 50)
	for _, ns := range [2]byte{'N', 'S'} {
		for digit := 1; digit <= 60; digit++ {
			for letter := byte(0); letter < 22; letter++ {
				code := fmt.Sprintf("%c%02d%c", ns, digit, 'A'+letter)
				lon, lat, _, err := grid.Decode2D(code)
				if err != nil {
					continue
				}
				h, err := grid.FromCode(code)
				if err != nil {
					continue
				}
				env := cellEnvelope2D(lon, lat, 1, h)
				tree.Insert(level1Entry{code: code, env: env})
			}
		}
	}
	level1Index = tree
}

func bboxToRect(b Envelope) rtreego.Rect {
	lonLen := b.MaxLon - b.MinLon
	latLen := b.MaxLat - b.MinLat
	if lonLen <= 0 {
		lonLen = 1e-9
	}
	if latLen <= 0 {
		latLen = 1e-9
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{lonLen, latLen})
	return rect
}

func level1CandidatesForBBox(bbox Envelope) []string {
	spatials := level1Index.SearchIntersect(bboxToRect(bbox))
	out := make([]string, 0, len(spatials))
	for _, s := range spatials {
		out = append(out, s.(level1Entry).code)
	}
	return out
}

// parallelFilter runs test concurrently across a bounded worker pool
// (jobs channel, results channel, WaitGroup, one draining goroutine). A
// per-candidate error is logged and treated as a reject, never
// propagated -- only a top-level argument error aborts a range query.
func parallelFilter(items []string, workers int, test func(string) (bool, error)) []string {
	if len(items) == 0 {
		return nil
	}
	if workers > len(items) {
		workers = len(items)
	}
	if workers < 1 {
		workers = 1
	}

	type job struct {
		item string
	}
	type result struct {
		item string
		ok   bool
	}

	jobs := make(chan job)
	results := make(chan result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				ok, err := test(j.item)
				if err != nil {
					log.Printf("beidou: rangequery: rejecting candidate %q: %v", j.item, err)
					continue
				}
				results <- result{item: j.item, ok: ok}
			}
		}()
	}

	go func() {
		for _, it := range items {
			jobs <- job{item: it}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]string, 0, len(items))
	for r := range results {
		if r.ok {
			out = append(out, r.item)
		}
	}
	return out
}

func expandChildren(codes []string, workers int, children func(string) ([]string, error)) []string {
	if len(codes) == 0 {
		return nil
	}
	if workers > len(codes) {
		workers = len(codes)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan []string)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for code := range jobs {
				kids, err := children(code)
				if err != nil {
					log.Printf("beidou: rangequery: rejecting candidate %q: %v", code, err)
					continue
				}
				results <- kids
			}
		}()
	}

	go func() {
		for _, c := range codes {
			jobs <- c
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []string
	for kids := range results {
		out = append(out, kids...)
	}
	return out
}

// Find2D returns the set of codes at level whose cells intersect geom.
func (c *Codec) Find2D(geom Geometry, level int) (map[string]struct{}, error) {
	if geom == nil {
		return nil, &InvalidArgumentError{Field: "geom", Reason: "must not be nil"}
	}
	if level < 1 || level > grid.MaxLevel {
		return nil, &InvalidArgumentError{Field: "level", Value: level, Reason: "must be in [1,10]"}
	}

	bbox := geom.Envelope()
	workers := c.workers()

	decode := func(code string) (GeoPoint, error) {
		lon, lat, _, err := grid.Decode2D(code)
		if err != nil {
			return GeoPoint{}, err
		}
		return GeoPoint{Lon: lon, Lat: lat}, nil
	}
	exact := func(atLevel int) func(string) (bool, error) {
		return func(code string) (bool, error) {
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
				return false, err
			}
			h, err := grid.FromCode(code)
			if err != nil {
				return false, err
			}
			env := cellEnvelope2D(p.Lon, p.Lat, atLevel, h)
			if !env.Intersects(bbox) {
				return false, nil
			}
			return geom.IntersectsRect(env), nil
		}
	}

	codes := parallelFilter(level1CandidatesForBBox(bbox), workers, exact(1))
	for curLevel := 1; curLevel < level; curLevel++ {
		children := expandChildren(codes, workers, grid.ChildrenOf2D)
		codes = parallelFilter(children, workers, exact(curLevel+1))
	}

	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set, nil
}

// Find3D returns the set of 3D codes at level whose cells intersect geom
// and whose height slab overlaps [hMin, hMax].
func (c *Codec) Find3D(geom Geometry, level int, hMin, hMax float64) (map[string]struct{}, error) {
	if geom == nil {
		return nil, &InvalidArgumentError{Field: "geom", Reason: "must not be nil"}
	}
	if level < 1 || level > grid.MaxLevel {
		return nil, &InvalidArgumentError{Field: "level", Value: level, Reason: "must be in [1,10]"}
	}
	if hMin > hMax {
		return nil, &InvalidArgumentError{Field: "hMin,hMax", Value: fmt.Sprintf("%v,%v", hMin, hMax), Reason: "hMin must not exceed hMax"}
	}

	bbox := geom.Envelope()
	workers := c.workers()
	model := c.opts.HeightModel

	decode3D := func(code string) (GeoPoint, error) {
		lon, lat, h, _, err := grid.Decode3D(code, model)
		if err != nil {
			return GeoPoint{}, err
		}
		return GeoPoint{Lon: lon, Lat: lat, Height: h}, nil
	}
	exact3D := func(atLevel int) func(string) (bool, error) {
		return func(code string) (bool, error) {
			var (
				p   GeoPoint
				err error
			)
			if c.opts.Cache != nil {
				p, err = c.opts.Cache.GetOrDecode(code, decode3D)
			} else {
				p, err = decode3D(code)
			}
			if err != nil {
				return false, err
			}
			hem, err := hemisphereOf3D(code)
			if err != nil {
				return false, err
			}
			env := cellEnvelope2D(p.Lon, p.Lat, atLevel, hem)
			if !env.Intersects(bbox) {
				return false, nil
			}
			if !geom.IntersectsRect(env) {
				return false, nil
			}
			gridMinAlt, gridMaxAlt := p.Height, p.Height+grid.DeltaH(atLevel, model)
			return gridMaxAlt > hMin && gridMinAlt < hMax, nil
		}
	}

	seeds := level1Seeds3D(level1CandidatesForBBox(bbox))
	codes := parallelFilter(seeds, workers, exact3D(1))
	for curLevel := 1; curLevel < level; curLevel++ {
		children := expandChildren(codes, workers, grid.ChildrenOf3D)
		codes = parallelFilter(children, workers, exact3D(curLevel+1))
	}

	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set, nil
}

// hemisphereOf3D returns the hemisphere of a 3D code. It lives here
// rather than internal/grid because its only caller outside of
// internal/grid itself is this file; internal/grid's own decode and
// children logic already knows its hemisphere internally.
func hemisphereOf3D(code string) (grid.Hemisphere, error) {
	if len(code) < 4 {
		return 0, &InvalidCodeError{Code: code, Reason: "too short to determine hemisphere"}
	}
	twoD := string(code[0]) + code[2:]
	return grid.FromCode(twoD)
}

// level1Seeds3D builds the starting 3D codes for Find3D's sweep: every
// combination of a bbox-surviving level-1 2D code with a height sign and
// one of the level's own height-bit slabs. Deeper levels are reached by
// grid.ChildrenOf3D, which already knows how to extend an existing 3D
// code; level 1 has no parent 3D code to extend, so its codes are built
// directly here.
func level1Seeds3D(level1Codes2D []string) []string {
	bits := grid.Levels[1].HeightBits
	slabCount := 1 << uint(bits)
	out := make([]string, 0, len(level1Codes2D)*2*slabCount)
	for _, code2D := range level1Codes2D {
		for _, sign := range [2]byte{'0', '1'} {
			for v := 0; v < slabCount; v++ {
				out = append(out, string(code2D[0])+string(sign)+code2D[1:]+fmt.Sprintf("%02d", v))
			}
		}
	}
	return out
}
