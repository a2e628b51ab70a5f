package format

// row pairs a neutral format with its equivalent in one native space.
type row[N comparable] struct {
	px     PixelFormat
	native N
}

// buildMaps derives forward and reverse lookup maps from a row list.
// The first row wins when a key repeats, so row order encodes which
// direction of a many-to-one mapping is canonical.
func buildMaps[N comparable](rows []row[N]) (map[PixelFormat]N, map[N]PixelFormat) {
	fwd := make(map[PixelFormat]N, len(rows))
	rev := make(map[N]PixelFormat, len(rows))
	for _, r := range rows {
		if _, ok := fwd[r.px]; !ok {
			fwd[r.px] = r.native
		}
		if _, ok := rev[r.native]; !ok {
			rev[r.native] = r.px
		}
	}
	return fwd, rev
}
