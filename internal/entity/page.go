package entity

// Page - конверт пагинации для списочных выдач.
type Page struct {
	Page            int    `json:"page"`
	Take            int    `json:"take"`
	ItemCount       int    `json:"itemCount"`
	PageCount       int    `json:"pageCount"`
	Data            []Task `json:"data"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	HasNextPage     bool   `json:"hasNextPage"`
}

// NewPage собирает конверт из уже отфильтрованного набора.
// pageCount считается с округлением вверх: неполная последняя
// страница - это всё ещё страница.
func NewPage(page, take, itemCount int, data []Task) *Page {
	pageCount := 0
	if take > 0 {
		pageCount = (itemCount + take - 1) / take
	}
	if data == nil {
		data = []Task{}
	}
	return &Page{
		Page:            page,
		Take:            take,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		Data:            data,
		HasPreviousPage: page > 1,
		HasNextPage:     page < pageCount,
	}
}
