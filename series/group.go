package series

// Partition is the slice of one batch belonging to a single series.
type Partition struct {
	Key      string
	Category any
	Points   []Point
}

// Group partitions the ingested rows of one chart into series.
//
// Colored charts get one partition per stringified color value, in
// first-seen order, with points in arrival order. Uncolored charts get a
// single partition keyed by the y field name.
func Group(in Ingested, chart int, spec ChartSpec) []Partition {
	if in.Len() == 0 {
		return nil
	}

	yPos := in.Positions.Y[chart]
	colorPos := in.Positions.Color[chart]

	if colorPos < 0 {
		points := make([]Point, in.Len())
		for i, row := range in.Rows {
			points[i] = Point{X: in.X[i], Y: scalar(row[yPos]), Series: spec.Y, YField: spec.Y}
		}

		return []Partition{{Key: spec.Y, Points: points}}
	}

	var parts []Partition
	index := make(map[string]int)
	for i, row := range in.Rows {
		category := scalar(row[colorPos])
		key := CategoryKey(category)

		idx, ok := index[key]
		if !ok {
			idx = len(parts)
			index[key] = idx
			parts = append(parts, Partition{Key: key, Category: category})
		}
		parts[idx].Points = append(parts[idx].Points, Point{
			X:        in.X[i],
			Y:        scalar(row[yPos]),
			Category: category,
			Series:   key,
			YField:   spec.Y,
		})
	}

	return parts
}

// Keys returns the partition keys in order.
func Keys(parts []Partition) []string {
	keys := make([]string, len(parts))
	for i, p := range parts {
		keys[i] = p.Key
	}

	return keys
}
