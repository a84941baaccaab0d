package pagination

// PageMeta contains metadata about a page of results.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	From        int  `json:"from"         yaml:"from"`
	To          int  `json:"to"           yaml:"to"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPageMeta derives display metadata for a result page.
// From and To are the 1-based positions of the first and last item on the page,
// both zero when there are no items.
func NewPageMeta(page, pageSize, totalItems, totalPages int) PageMeta {
	if page < 1 {
		page = 1
	}
	if totalPages == 0 && pageSize > 0 && totalItems > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	meta := PageMeta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}

	if totalItems > 0 && pageSize > 0 {
		meta.From = (page-1)*pageSize + 1
		meta.To = min(page*pageSize, totalItems)
		if meta.From > totalItems {
			meta.From, meta.To = 0, 0
		}
	}

	return meta
}
