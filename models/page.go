package models

// Page is one page of a paginated listing. Page numbers are 0-indexed.
type Page[T any] struct {
	Prev bool `json:"prev"`
	Next bool `json:"next"`
	Data []T  `json:"data"`
}

// NewPage computes prev/next for page (0-indexed) of size over total items.
// next holds iff ceil(total/size)-1 > page, i.e. (page+1)*size < total.
func NewPage[T any](data []T, page, size, total int) Page[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := 0
	if size > 0 {
		lastPage = (total + size - 1) / size
	}
	return Page[T]{
		Prev: page > 0,
		Next: lastPage-1 > page,
		Data: data,
	}
}

// MaxPage is the highest page number served. Larger requests get MaxPage.
const MaxPage = 1 << 20

// ClampPage bounds page to [0, MaxPage].
func ClampPage(page int) int {
	if page < 0 {
		return 0
	}
	return min(page, MaxPage)
}
