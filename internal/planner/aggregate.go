package planner

import (
	"sort"
)

// paginationThreshold is the fetched-block count above which the read path
// switches from full aggregation to fixed-size pages.
const paginationThreshold = 100

// defaultPageSize is the page size used for oversized ranges.
const defaultPageSize = 100

// aggregateBlocks returns one projection per block in ascending start-time
// order. Day and week views serve this output as-is; month views may be
// reduced further for constrained clients.
func aggregateBlocks(blocks []TimeBlockView) []TimeBlockView {
	out := make([]TimeBlockView, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// paginateBlocks slices blocks into the requested 1-indexed page. A page past
// the end yields an empty slice with correct totals rather than an error.
func paginateBlocks(blocks []TimeBlockView, page, pageSize int) ([]TimeBlockView, PageInfo) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	ordered := aggregateBlocks(blocks)
	total := len(ordered)
	totalPages := (total + pageSize - 1) / pageSize

	info := PageInfo{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []TimeBlockView{}, info
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return ordered[start:end], info
}
