package query

// Page is a pure slice of a filtered record set.
type Page struct {
	Items      []Record `json:"items"`
	Number     int      `json:"page"`
	Size       int      `json:"size"`
	TotalItems int      `json:"total_items"`
	TotalPages int      `json:"total_pages"`
}

const defaultPageSize = 20

// Paginate slices records for the 1-based page number. An out-of-range page
// yields an empty item list with the counts still populated.
func Paginate(records []Record, number, size int) Page {
	if size <= 0 {
		size = defaultPageSize
	}
	if number <= 0 {
		number = 1
	}
	total := len(records)
	totalPages := (total + size - 1) / size

	p := Page{Number: number, Size: size, TotalItems: total, TotalPages: totalPages}
	start := (number - 1) * size
	if start >= total {
		p.Items = []Record{}
		return p
	}
	end := start + size
	if end > total {
		end = total
	}
	p.Items = records[start:end]
	return p
}

// View holds a dashboard view's transient filter and paging state. Changing
// the criteria resets the page to 1 so a stale out-of-range page is never
// presented.
type View struct {
	criteria Criteria
	page     int
	size     int
}

// NewView returns a view on page 1 with the given page size.
func NewView(size int) *View {
	if size <= 0 {
		size = defaultPageSize
	}
	return &View{page: 1, size: size}
}

// SetCriteria replaces the filter state and resets the page to 1.
func (v *View) SetCriteria(c Criteria) {
	v.criteria = c
	v.page = 1
}

// ClearCriteria resets the filter to match-everything and the page to 1.
func (v *View) ClearCriteria() {
	v.SetCriteria(Criteria{})
}

// SetPage moves to the 1-based page number without touching the criteria.
func (v *View) SetPage(page int) {
	if page <= 0 {
		page = 1
	}
	v.page = page
}

// Criteria returns the current filter state.
func (v *View) Criteria() Criteria { return v.criteria }

// PageNumber returns the current 1-based page.
func (v *View) PageNumber() int { return v.page }

// Apply runs the full pipeline over records: filter, fold, paginate.
func (v *View) Apply(records []Record) (Page, Stats) {
	filtered, stats := Apply(records, v.criteria)
	return Paginate(filtered, v.page, v.size), stats
}
