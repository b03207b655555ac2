package pagination

// window is the number of page links shown around the current page.
const window = 5

type Pager struct {
	TotalItems  int
	CurrentPage int
	PageSize    int
	TotalPages  int
	Pages       []int
}

// NewPager clamps currentPage into [1, TotalPages]. With no items the pager
// sits on page 1, so Offset is always a position that can hold rows.
func NewPager(totalItems, currentPage, pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := (totalItems + pageSize - 1) / pageSize
	if currentPage > totalPages {
		currentPage = totalPages
	}
	if currentPage < 1 {
		currentPage = 1
	}

	start := currentPage - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > totalPages {
		end = totalPages
		if end-window+1 >= 1 {
			start = end - window + 1
		} else {
			start = 1
		}
	}

	var pages []int
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	return Pager{
		TotalItems:  totalItems,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		Pages:       pages,
	}
}

func (p Pager) Offset() int {
	if p.CurrentPage < 1 {
		return 0
	}
	return (p.CurrentPage - 1) * p.PageSize
}

func (p Pager) HasPrev() bool { return p.CurrentPage > 1 }

func (p Pager) HasNext() bool { return p.CurrentPage < p.TotalPages }
