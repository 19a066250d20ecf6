package grid

// Scroller is C1: a pure function of (rowHeight, totalRows, viewportHeight,
// bufferRows) to a row window and scroll height. It holds no mutable
// state and every method is safe to call from any goroutine.
type Scroller struct {
	RowHeight      int
	TotalRows      int
	ViewportHeight int
	BufferRows     int
}

// NewScroller constructs a Scroller. rowHeight and viewportHeight must be
// positive; totalRows and bufferRows must be non-negative.
func NewScroller(rowHeight, totalRows, viewportHeight, bufferRows int) Scroller {
	return Scroller{
		RowHeight:      rowHeight,
		TotalRows:      totalRows,
		ViewportHeight: viewportHeight,
		BufferRows:     bufferRows,
	}
}

// ScrollHeight is the total pixel (row-unit) height of the virtual content.
func (s Scroller) ScrollHeight() int {
	return s.TotalRows * s.RowHeight
}

// Window computes the visible row range and the translateY offset for a
// given scrollTop. When TotalRows is 0 it returns startRow > endRow so
// callers can treat that as "nothing to render" without special-casing.
func (s Scroller) Window(scrollTop int) (startRow, endRow, translateY int) {
	if s.TotalRows <= 0 {
		return 0, -1, 0
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	start := scrollTop/s.RowHeight - s.BufferRows
	if start < 0 {
		start = 0
	}

	end := ceilDiv(scrollTop+s.ViewportHeight, s.RowHeight) + s.BufferRows
	if end > s.TotalRows-1 {
		end = s.TotalRows - 1
	}
	if end < start {
		end = start
	}

	return start, end, start * s.RowHeight
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
