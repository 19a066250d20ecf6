package grid

import "github.com/loomgrid/gridcore/pkg/grid/datastrategy"

// ClientSideMaxRows is the default threshold Bootstrap uses to decide
// between an in-memory and a paged-remote strategy when the caller
// supplies a row count up front instead of forcing a mode.
const ClientSideMaxRows = 50_000

// BootstrapPolicy is C11: decides InMemory vs PagedRemote from the
// constructor config. A caller that already knows its dataset size can
// force a mode; otherwise the policy probes the first page (when a
// fetchPage is supplied) and compares the reported total against
// ClientSideMaxRows.
type BootstrapPolicy struct {
	Columns        []Column
	Data           []Row
	FetchPage      datastrategy.FetchPageFunc
	PageSize       int
	MaxCachedPages int
	ForceMode      Mode
	MaxRowsClient  int
}

// Resolve picks and constructs the Strategy, and reports which Mode was
// chosen.
func (p BootstrapPolicy) Resolve() (datastrategy.Strategy, Mode, error) {
	maxRows := p.MaxRowsClient
	if maxRows <= 0 {
		maxRows = ClientSideMaxRows
	}

	switch p.ForceMode {
	case ModeClient:
		return datastrategy.NewInMemory(p.Columns, p.Data), ModeClient, nil
	case ModeServer:
		if p.FetchPage == nil {
			return nil, "", ConfigError{Reason: "server mode requires a fetchPage function"}
		}
		return datastrategy.NewPagedRemote(p.FetchPage, p.PageSize, p.MaxCachedPages), ModeServer, nil
	}

	if p.FetchPage == nil {
		return datastrategy.NewInMemory(p.Columns, p.Data), ModeClient, nil
	}
	if len(p.Data) > 0 {
		// Both a dataset and a fetchPage were supplied; the dataset size
		// alone decides, since probing a page would otherwise trigger a
		// fetch the caller may not want for an in-memory table.
		if len(p.Data) <= maxRows {
			return datastrategy.NewInMemory(p.Columns, p.Data), ModeClient, nil
		}
		return datastrategy.NewPagedRemote(p.FetchPage, p.PageSize, p.MaxCachedPages), ModeServer, nil
	}

	// No initialData: probe the first page to learn totalRows. A small
	// enough result is eagerly paginated to completion and served
	// in-memory; otherwise the probed page seeds a paged-remote strategy
	// so it is not re-fetched.
	page0, err := p.FetchPage(0, Query{})
	if err != nil {
		return nil, "", err
	}
	if page0.TotalRows <= maxRows {
		pageSize := p.PageSize
		if pageSize <= 0 {
			pageSize = 1
		}
		all := append([]Row(nil), page0.List...)
		for len(all) < page0.TotalRows {
			pageIdx := len(all) / pageSize
			resp, err := p.FetchPage(pageIdx, Query{})
			if err != nil {
				return nil, "", err
			}
			if len(resp.List) == 0 {
				break
			}
			all = append(all, resp.List...)
		}
		return datastrategy.NewInMemory(p.Columns, all), ModeClient, nil
	}

	strategy := datastrategy.NewPagedRemote(p.FetchPage, p.PageSize, p.MaxCachedPages)
	strategy.Seed(page0)
	return strategy, ModeServer, nil
}
