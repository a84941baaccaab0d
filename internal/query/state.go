package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Column identifies a sortable user column. The values are the server's sort keys.
type Column string

// Sortable columns, in display order.
const (
	ColumnID         Column = "id"
	ColumnName       Column = "name"
	ColumnEmail      Column = "email"
	ColumnRole       Column = "role"
	ColumnDepartment Column = "department"
	ColumnDateJoined Column = "date_joined"
)

// Order is the sort direction.
type Order string

// Sort directions.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Defaults for a fresh state.
const (
	DefaultPageSize  = 10
	DefaultSortBy    = ColumnID
	DefaultSortOrder = OrderAsc
	FirstPage        = 1
)

// Common validation errors.
var (
	ErrInvalidColumn   = errors.New("invalid sort column")
	ErrInvalidOrder    = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidPageSize = errors.New("page size must be one of 10, 25, 50, 100")
	ErrInvalidPage     = errors.New("page must be >= 1")
)

// Columns returns the sortable columns in display order.
func Columns() []Column {
	return []Column{ColumnID, ColumnName, ColumnEmail, ColumnRole, ColumnDepartment, ColumnDateJoined}
}

// PageSizes returns the allowed page sizes in ascending order.
func PageSizes() []int {
	return []int{10, 25, 50, 100}
}

// Label returns the column header text.
func (c Column) Label() string {
	switch c {
	case ColumnID:
		return "ID"
	case ColumnName:
		return "Name"
	case ColumnEmail:
		return "Email"
	case ColumnRole:
		return "Role"
	case ColumnDepartment:
		return "Department"
	case ColumnDateJoined:
		return "Date Joined"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the sortable columns.
func (c Column) Valid() bool {
	return slices.Contains(Columns(), c)
}

// ParseColumn resolves a column from its key, case-insensitively.
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColumn, s)
	}
	return c, nil
}

// Flip returns the opposite direction.
func (o Order) Flip() Order {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// ParseOrder resolves an order string, case-insensitively.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidOrder, s)
	}
}

// ValidPageSize reports whether size is one of the allowed page sizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes(), size)
}

// NextPageSize returns the allowed page size after size, wrapping around.
func NextPageSize(size int) int {
	sizes := PageSizes()
	for i, s := range sizes {
		if s == size {
			return sizes[(i+1)%len(sizes)]
		}
	}
	return sizes[0]
}

// State is the composite filter/sort/page values that fully determine a list request.
// It is comparable; two states are the same request iff they are ==.
type State struct {
	Search     string
	Department string
	Role       string
	SortBy     Column
	SortOrder  Order
	Page       int
	PageSize   int
}

// New returns the initial state: no filters, sorted by id ascending, page 1.
func New(pageSize int) State {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return State{
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      FirstPage,
		PageSize:  pageSize,
	}
}

// Validate checks that the state can be sent to the server.
func (s State) Validate() error {
	if !s.SortBy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, s.SortBy)
	}
	if s.SortOrder != OrderAsc && s.SortOrder != OrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidOrder, s.SortOrder)
	}
	if s.Page < FirstPage {
		return ErrInvalidPage
	}
	if !ValidPageSize(s.PageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, s.PageSize)
	}
	return nil
}

// Offset returns the number of records the server should skip.
func (s State) Offset() int {
	if s.Page < FirstPage {
		return 0
	}
	return (s.Page - 1) * s.PageSize
}

// Limit returns the number of records per page.
func (s State) Limit() int {
	return s.PageSize
}

// Params returns the offset/limit pair the server expects for this page.
func (s State) Params() (offset, limit int) {
	return s.Offset(), s.Limit()
}

// HasFilters reports whether any of search, department, or role is set.
func (s State) HasFilters() bool {
	return s.Search != "" || s.Department != "" || s.Role != ""
}

// ClampPage bounds page to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	upper := max(FirstPage, totalPages)
	return min(max(page, FirstPage), upper)
}

// FilterOptions are the distinct values offered by the department and role filters.
type FilterOptions struct {
	Departments []string
	Roles       []string
}

// NormalizeOptions deduplicates and sorts values, dropping empty strings.
func NormalizeOptions(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
