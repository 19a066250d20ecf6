package datastrategy

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/loomgrid/gridcore/pkg/models"
)

// PagedRemote is the paged-remote Data Strategy variant. "At most
// one load in flight per (pageIndex, query)" is realized with
// golang.org/x/sync/singleflight rather than a hand-rolled
// map[int]*pendingFetch: singleflight.Group.Do is exactly that guarantee.
type PagedRemote struct {
	fetchPage FetchPageFunc
	pageSize  int

	mu           sync.Mutex
	cache        *pageLRU
	group        singleflight.Group
	currentQuery models.Query
	totalRows    int

	summaryFetcher       summaryFetcherFunc
	filterOptionsFetcher filterOptionsFetcherFunc
}

// NewPagedRemote constructs a PagedRemote strategy. maxCachedPages <= 0
// means unbounded (the LRU never evicts).
func NewPagedRemote(fetchPage FetchPageFunc, pageSize, maxCachedPages int) *PagedRemote {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &PagedRemote{
		fetchPage: fetchPage,
		pageSize:  pageSize,
		cache:     newPageLRU(maxCachedPages),
	}
}

func (p *PagedRemote) Bootstrap() (int, error) {
	p.mu.Lock()
	_, seeded := p.cache.get(0)
	p.mu.Unlock()
	if !seeded {
		if err := p.loadPage(0); err != nil {
			return 0, err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalRows, nil
}

// Seed preloads page 0 with a response the caller already fetched (the
// Bootstrap Policy's first-page probe), so Bootstrap does not re-fetch it.
func (p *PagedRemote) Seed(resp models.PageResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.put(0, resp.List, p.anchorPage())
	p.totalRows = resp.TotalRows
}

func (p *PagedRemote) GetRow(rowIndex int) (models.Row, bool) {
	page, offset := p.pageFor(rowIndex)
	p.mu.Lock()
	rows, ok := p.cache.get(page)
	p.mu.Unlock()
	if !ok || offset >= len(rows) {
		return nil, false
	}
	return rows[offset], true
}

func (p *PagedRemote) EnsurePageForRow(rowIndex int) error {
	page, _ := p.pageFor(rowIndex)
	p.mu.Lock()
	_, cached := p.cache.get(page)
	p.mu.Unlock()
	if cached {
		return nil
	}
	return p.loadPage(page)
}

func (p *PagedRemote) pageFor(rowIndex int) (page, offset int) {
	return rowIndex / p.pageSize, rowIndex % p.pageSize
}

// loadPage fetches a page, deduplicating concurrent requests for the same
// (page, query) pair through singleflight.
func (p *PagedRemote) loadPage(page int) error {
	p.mu.Lock()
	query := p.currentQuery
	p.mu.Unlock()

	key := fmt.Sprintf("%d|%s|%v|%v", page, query.FilterText, query.Sort, query.ColumnFilters)
	_, err, _ := p.group.Do(key, func() (any, error) {
		resp, err := p.fetchPage(page, query)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.cache.put(page, resp.List, p.anchorPage())
		p.totalRows = resp.TotalRows
		p.mu.Unlock()
		return resp, nil
	})
	return err
}

// anchorPage is the page pinned against eviction: the one containing row
// 0 of the current query.
func (p *PagedRemote) anchorPage() int {
	anchor, _ := p.pageFor(0)
	return anchor
}

func (p *PagedRemote) ApplyQuery(q models.Query) (int, bool, error) {
	p.mu.Lock()
	p.cache.clear()
	p.currentQuery = q.Clone()
	p.mu.Unlock()

	if err := p.loadPage(0); err != nil {
		return 0, true, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalRows, true, nil
}

// GetSummary defers to an injected fetchSummary when present via the
// summaryFetcher field set by WithSummaryFetcher; absent that, it returns
// nil (no client-computable summary over unseen pages).
func (p *PagedRemote) GetSummary(q *models.Query) (models.Row, error) {
	if p.summaryFetcher == nil {
		return nil, nil
	}
	query := p.currentQuery
	if q != nil {
		query = *q
	}
	return p.summaryFetcher(query)
}

func (p *PagedRemote) GetTotalRows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalRows
}

// GetFilterOptions for a paged-remote source needs a server round trip;
// gridcore does not speculate about an endpoint for it, so it returns an
// empty slice unless a fetcher has been wired through WithFilterOptionsFetcher.
func (p *PagedRemote) GetFilterOptions(key string) []string {
	if p.filterOptionsFetcher == nil {
		return nil
	}
	return p.filterOptionsFetcher(key)
}

// summaryFetcher and filterOptionsFetcher are optional remote hooks,
// mirroring the constructor config's fetchSummary. They are declared
// here (not in the constructor) to keep NewPagedRemote's signature small;
// set them with the With* options below.
type summaryFetcherFunc func(q models.Query) (models.Row, error)
type filterOptionsFetcherFunc func(key string) []string

func (p *PagedRemote) WithSummaryFetcher(fn func(q models.Query) (models.Row, error)) *PagedRemote {
	p.summaryFetcher = fn
	return p
}

func (p *PagedRemote) WithFilterOptionsFetcher(fn func(key string) []string) *PagedRemote {
	p.filterOptionsFetcher = fn
	return p
}
