package series

// ComputeRange returns the union of the x extents of the given buffers.
//
// Buffers on continuous axes are sorted by x, so each buffer contributes
// [first.X, last.X]. The second return value is false when every buffer is
// empty.
func ComputeRange(buffers ...[]Point) (Domain, bool) {
	var (
		out   Domain
		found bool
	)
	for _, buf := range buffers {
		if len(buf) == 0 {
			continue
		}

		local := Domain{Min: buf[0].XFloat(), Max: buf[len(buf)-1].XFloat()}
		if !found {
			out = local
			found = true

			continue
		}
		out = out.Union(local)
	}

	return out, found
}
