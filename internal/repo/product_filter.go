package repo

type ProductFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *int
	MaxQty   *int
	Offset   *int
	Limit    *int
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// page applies offset and limit to an already filtered slice.
func page[T any](items []T, pf ProductFilter) []T {
	if pf.Offset != nil && *pf.Offset > len(items) {
		return []T{}
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(items))
	}

	end := len(items)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(items))
	}
	return items[start:end]
}
