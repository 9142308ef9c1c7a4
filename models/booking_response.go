// models/booking_response.go
package models

// Pagination describes one page of a listing.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// BookingPage is a page of bookings plus its pagination block.
type BookingPage struct {
	Bookings   []Booking  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes the page count for total items at limit per page.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Current: page, Pages: pages, Total: total, Limit: limit}
}
