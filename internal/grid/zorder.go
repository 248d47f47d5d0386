package grid

// hAdjust applies the hemisphere-aware index reversal GB/T 39409-2020
// uses for the hex-pair fragments past level 1 (levels 3 and 6 use the
// Z-order tables below instead): NE leaves indices untouched,
// the other three hemispheres mirror one or both axes against the
// level's fan-out bounds. The function is its own inverse, so decoders
// call it with the same (maxLng, maxLat) to recover the raw indices.
func hAdjust(lng, lat, maxLng, maxLat int, h Hemisphere) (int, int) {
	switch h {
	case NE:
		return lng, lat
	case NW:
		return lng, maxLat - lat
	case SW:
		return maxLng - lng, maxLat - lat
	default: // SE
		return maxLng - lng, lat
	}
}

// zorderTable holds a forward lookup (row, col) -> value and its
// inverse, built once at package init for each hemisphere.
type zorderTable struct {
	forward [][]int  // [row][col] = value
	inverse [][2]int // [value] = {row, col}
}

var level3Tables [4]zorderTable
var level6Tables [4]zorderTable

func buildZorderTable(rows [][]int) zorderTable {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	inv := make([][2]int, n)
	for r, row := range rows {
		for c, v := range row {
			inv[v] = [2]int{r, c}
		}
	}
	return zorderTable{forward: rows, inverse: inv}
}

func init() {
	level3Tables[NE] = buildZorderTable([][]int{{0, 1}, {2, 3}, {4, 5}})
	level3Tables[NW] = buildZorderTable([][]int{{1, 0}, {3, 2}, {5, 4}})
	level3Tables[SW] = buildZorderTable([][]int{{5, 4}, {3, 2}, {1, 0}})
	level3Tables[SE] = buildZorderTable([][]int{{4, 5}, {2, 3}, {0, 1}})

	level6Tables[NE] = buildZorderTable([][]int{{0, 1}, {2, 3}})
	level6Tables[NW] = buildZorderTable([][]int{{1, 0}, {3, 2}})
	level6Tables[SW] = buildZorderTable([][]int{{3, 2}, {1, 0}})
	level6Tables[SE] = buildZorderTable([][]int{{2, 3}, {0, 1}})
}

// zorderEncode looks up the Z-order value for raw (lng, tp) indices
// (row=lat index, col=lng index) under the given hemisphere's table.
func zorderEncode(tables [4]zorderTable, h Hemisphere, lng, lat int) (int, error) {
	t := tables[h]
	if lat < 0 || lat >= len(t.forward) || lng < 0 || lng >= len(t.forward[lat]) {
		return 0, &InvalidCodeError{Reason: "Z-order index out of range"}
	}
	return t.forward[lat][lng], nil
}

// zorderDecode inverts a Z-order value back to raw (lng, lat) indices.
func zorderDecode(tables [4]zorderTable, h Hemisphere, value int) (lng, lat int, err error) {
	t := tables[h]
	if value < 0 || value >= len(t.inverse) {
		return 0, 0, &InvalidCodeError{Reason: "Z-order value outside tabled set"}
	}
	pair := t.inverse[value]
	return pair[1], pair[0], nil
}
