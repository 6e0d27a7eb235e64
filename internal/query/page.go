package query

const (
	// DefaultPageSize applies when a listing request names no page size.
	DefaultPageSize = 10
	// MaxPageSize caps the page size of every listing.
	MaxPageSize = 100
)

// Page is a 1-based page number and a page size, both already clamped.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows preceding the page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// SortColumns maps public sort keys onto SQL expressions. Unknown keys
// resolve to the fallback, so no caller text ever reaches ORDER BY.
type SortColumns struct {
	columns  map[string]string
	fallback string
}

// NewSortColumns builds a whitelist with the given fallback expression.
func NewSortColumns(fallback string, columns map[string]string) SortColumns {
	return SortColumns{columns: columns, fallback: fallback}
}

// Resolve returns the SQL expression for key.
func (s SortColumns) Resolve(key string) string {
	if col, ok := s.columns[key]; ok {
		return col
	}
	return s.fallback
}
