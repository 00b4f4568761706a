package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of a listing with total items.
// From and To are 1-based item positions, both 0 for an empty page.
func NewPagination(page, pageSize int, total int64) *Pagination {
	p := &Pagination{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize > 0 {
		p.TotalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	p.HasMore = int64(page) < p.TotalPages

	start := int64((page - 1) * pageSize)
	if start < total {
		p.From = int(start) + 1
		p.To = int(min(start+int64(pageSize), total))
	}
	return p
}
