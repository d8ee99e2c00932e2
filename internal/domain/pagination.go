package domain

// PaginationParams holds offset-based pagination parameters for list queries.
// A zero PageSize means "no limit".
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limited reports whether the query should be bounded by PageSize.
func (p PaginationParams) Limited() bool {
	return p.PageSize > 0
}
