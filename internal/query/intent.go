package query

// Effect is the side effect a caller must run after applying an intent.
type Effect int

const (
	// EffectNone means the state did not change and nothing needs to run.
	EffectNone Effect = iota
	// EffectFetch means the user list must be fetched for the new state.
	EffectFetch
	// EffectSeed means the server should generate sample data.
	EffectSeed
)

// String returns the effect name for logging.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectFetch:
		return "fetch"
	case EffectSeed:
		return "seed"
	default:
		return "unknown"
	}
}

// FilterField selects which exact-match filter a FilterChanged intent targets.
type FilterField int

const (
	// FilterDepartment filters by department.
	FilterDepartment FilterField = iota
	// FilterRole filters by role.
	FilterRole
)

// String returns the filter's query-parameter name.
func (f FilterField) String() string {
	if f == FilterRole {
		return "role"
	}
	return "department"
}

// Intent is a user action the explorer maps onto the query state.
type Intent interface {
	isIntent()
}

// SearchChanged sets the free-text search.
type SearchChanged struct{ Value string }

// FilterChanged sets the department or role filter. An empty value clears it.
type FilterChanged struct {
	Field FilterField
	Value string
}

// SortToggled reports a header activation on Column.
type SortToggled struct{ Column Column }

// PageChanged moves to Page.
type PageChanged struct{ Page int }

// PageSizeChanged sets the page size.
type PageSizeChanged struct{ Size int }

// FiltersCleared clears search, department, and role.
type FiltersCleared struct{}

// RefreshRequested re-issues the current state unchanged.
type RefreshRequested struct{}

// SeedRequested asks the server to regenerate Count sample users.
type SeedRequested struct{ Count int }

func (SearchChanged) isIntent()    {}
func (FilterChanged) isIntent()    {}
func (SortToggled) isIntent()      {}
func (PageChanged) isIntent()      {}
func (PageSizeChanged) isIntent()  {}
func (FiltersCleared) isIntent()   {}
func (RefreshRequested) isIntent() {}
func (SeedRequested) isIntent()    {}

// Apply returns the state after in and the effect the caller must run.
// totalPages is the page count of the most recent result and bounds PageChanged.
// Any change other than a page change resets Page to 1 in the returned state, so
// the fetch issued for it always requests the first page.
//
//nolint:cyclop // One case per intent keeps the transition table readable.
func (s State) Apply(in Intent, totalPages int) (State, Effect) {
	next := s

	switch in := in.(type) {
	case SearchChanged:
		next.Search = in.Value
	case FilterChanged:
		switch in.Field {
		case FilterDepartment:
			next.Department = in.Value
		case FilterRole:
			next.Role = in.Value
		}
	case SortToggled:
		if !in.Column.Valid() {
			return s, EffectNone
		}
		if in.Column == s.SortBy {
			next.SortOrder = s.SortOrder.Flip()
		} else {
			next.SortBy = in.Column
			next.SortOrder = OrderAsc
		}
	case PageSizeChanged:
		if !ValidPageSize(in.Size) {
			return s, EffectNone
		}
		next.PageSize = in.Size
	case FiltersCleared:
		next.Search, next.Department, next.Role = "", "", ""
	case PageChanged:
		next.Page = ClampPage(in.Page, totalPages)
		if next == s {
			return s, EffectNone
		}
		return next, EffectFetch
	case RefreshRequested:
		return s, EffectFetch
	case SeedRequested:
		return s, EffectSeed
	default:
		return s, EffectNone
	}

	if next == s {
		return s, EffectNone
	}
	next.Page = FirstPage
	return next, EffectFetch
}
