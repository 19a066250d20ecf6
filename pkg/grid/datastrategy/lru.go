package datastrategy

import "github.com/loomgrid/gridcore/pkg/models"

// pageLRU is a recency-ordered (slice + map) LRU cache of page index ->
// row slice, bounded by maxPages: strict least-recently-used eviction
// with one pinned exception, the page anchoring row 0 of the current
// query. A page whose fetch is still in flight is never a candidate for
// eviction either, but that guarantee falls out structurally rather than
// from an explicit check: PagedRemote only ever calls put() with a page
// that has already finished fetching (see paged.go).
type pageLRU struct {
	maxPages int
	order    []int // most-recently-used at the end
	pages    map[int][]models.Row
}

func newPageLRU(maxPages int) *pageLRU {
	return &pageLRU{
		maxPages: maxPages,
		pages:    make(map[int][]models.Row),
	}
}

func (c *pageLRU) get(page int) ([]models.Row, bool) {
	rows, ok := c.pages[page]
	if ok {
		c.touch(page)
	}
	return rows, ok
}

func (c *pageLRU) put(page int, rows []models.Row, pinned int) {
	if _, exists := c.pages[page]; !exists && c.maxPages > 0 {
		for len(c.pages) >= c.maxPages {
			victim, ok := c.lruVictim(pinned)
			if !ok {
				break
			}
			c.evict(victim)
		}
	}
	c.pages[page] = rows
	c.touch(page)
}

func (c *pageLRU) touch(page int) {
	for i, p := range c.order {
		if p == page {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, page)
}

func (c *pageLRU) lruVictim(pinned int) (int, bool) {
	for _, p := range c.order {
		if p == pinned {
			continue
		}
		return p, true
	}
	return 0, false
}

func (c *pageLRU) evict(page int) {
	delete(c.pages, page)
	for i, p := range c.order {
		if p == page {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *pageLRU) clear() {
	c.pages = make(map[int][]models.Row)
	c.order = nil
}
