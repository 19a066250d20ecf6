package grid

// SolveWidths is C13: partitions columns into fixed / flex / auto and
// computes one integer width in terminal columns per original column, in
// input order, over a container width.
//
//   - Fixed columns (Width > 0, Flex == 0) are honored, clamped to
//     max(width, minWidth).
//   - Flex columns (Flex > 0) split the remaining space in proportion to
//     Flex, each clamped to minWidth.
//   - Auto columns (Width == 0 and Flex == 0) split whatever is left
//     evenly, each clamped to minWidth.
func SolveWidths(columns []Column, containerWidth int) []int {
	widths := make([]int, len(columns))

	fixedTotal := 0
	flexTotal := 0.0
	var flexIdx, autoIdx []int
	for i, c := range columns {
		switch {
		case c.Flex > 0:
			flexTotal += c.Flex
			flexIdx = append(flexIdx, i)
		case c.Width > 0:
			w := c.Width
			if w < c.MinWidth {
				w = c.MinWidth
			}
			widths[i] = w
			fixedTotal += w
		default:
			autoIdx = append(autoIdx, i)
		}
	}

	remaining := containerWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	if len(flexIdx) > 0 {
		flexSpace := remaining
		for _, i := range flexIdx {
			c := columns[i]
			var w int
			if flexTotal > 0 {
				w = int(float64(flexSpace) * c.Flex / flexTotal)
			}
			if w < c.MinWidth {
				w = c.MinWidth
			}
			widths[i] = w
			remaining -= w
		}
	}

	if len(autoIdx) > 0 {
		if remaining < 0 {
			remaining = 0
		}
		share := remaining / len(autoIdx)
		for n, i := range autoIdx {
			c := columns[i]
			w := share
			if n == len(autoIdx)-1 {
				w = remaining - share*(len(autoIdx)-1)
			}
			if w < c.MinWidth {
				w = c.MinWidth
			}
			widths[i] = w
		}
	}

	return widths
}
