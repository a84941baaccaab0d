package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/dataexplorer/internal/query"
)

// Flag defaults.
const (
	DefaultPage = 1
	DefaultSort = "id:asc"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// Params holds list-command flags and converts them to a query state.
type Params struct {
	// Search is the free-text search term.
	Search string

	// Department is an exact-match department filter.
	Department string

	// Role is an exact-match role filter.
	Role string

	// Sort is "field" or "field:order".
	Sort string

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of results per page.
	PageSize int
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Sort:     DefaultSort,
		Page:     DefaultPage,
		PageSize: query.DefaultPageSize,
	}
}

// Validate checks that the flags describe a valid request.
func (p Params) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if !query.ValidPageSize(p.PageSize) {
		return fmt.Errorf("%w: got %d", query.ErrInvalidPageSize, p.PageSize)
	}
	if _, _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// State converts validated flags into a query state.
func (p Params) State() (query.State, error) {
	if err := p.Validate(); err != nil {
		return query.State{}, err
	}
	column, order, _ := ParseSort(p.Sort)

	s := query.New(p.PageSize)
	s.Search = strings.TrimSpace(p.Search)
	s.Department = strings.TrimSpace(p.Department)
	s.Role = strings.TrimSpace(p.Role)
	s.SortBy = column
	s.SortOrder = order
	s.Page = p.Page
	return s, nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "date_joined:desc". An empty string yields id ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (column query.Column, order query.Order, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return query.DefaultSortBy, query.DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	field := strings.TrimSpace(parts[0])
	orderStr := string(query.DefaultSortOrder)
	switch len(parts) {
	case 1:
	case sortPartsMax:
		orderStr = parts[1]
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if column, err = query.ParseColumn(field); err != nil {
		return "", "", err
	}
	if order, err = query.ParseOrder(orderStr); err != nil {
		return "", "", err
	}
	return column, order, nil
}
