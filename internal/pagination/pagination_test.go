package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dataexplorer/internal/query"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{name: "first of twelve", current: 1, totalPages: 12, want: []int{1, 2, 3, 4, 5}},
		{name: "third of twelve", current: 3, totalPages: 12, want: []int{1, 2, 3, 4, 5}},
		{name: "fourth of twelve", current: 4, totalPages: 12, want: []int{2, 3, 4, 5, 6}},
		{name: "sixth of twelve", current: 6, totalPages: 12, want: []int{4, 5, 6, 7, 8}},
		{name: "ninth of twelve", current: 9, totalPages: 12, want: []int{7, 8, 9, 10, 11}},
		{name: "tenth of twelve", current: 10, totalPages: 12, want: []int{8, 9, 10, 11, 12}},
		{name: "last of twelve", current: 12, totalPages: 12, want: []int{8, 9, 10, 11, 12}},
		{name: "fewer than five", current: 2, totalPages: 3, want: []int{1, 2, 3}},
		{name: "exactly five", current: 5, totalPages: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "six pages middle", current: 3, totalPages: 6, want: []int{1, 2, 3, 4, 5}},
		{name: "six pages fourth", current: 4, totalPages: 6, want: []int{2, 3, 4, 5, 6}},
		{name: "seven pages fourth", current: 4, totalPages: 7, want: []int{2, 3, 4, 5, 6}},
		{name: "single page", current: 1, totalPages: 1, want: []int{1}},
		{name: "no pages", current: 1, totalPages: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.current, tt.totalPages, DefaultWindowSize))
		})
	}
}

func TestWindow_AlwaysContainsCurrent(t *testing.T) {
	for total := 1; total <= 20; total++ {
		for current := 1; current <= total; current++ {
			pages := Window(current, total, DefaultWindowSize)
			assert.Contains(t, pages, current, "current=%d total=%d", current, total)
			assert.LessOrEqual(t, len(pages), DefaultWindowSize)
			assert.GreaterOrEqual(t, pages[0], 1)
			assert.LessOrEqual(t, pages[len(pages)-1], total)
		}
	}
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name                                  string
		page, pageSize, totalItems, totalPage int
		want                                  PageMeta
	}{
		{
			name: "first page", page: 1, pageSize: 10, totalItems: 25, totalPage: 3,
			want: PageMeta{CurrentPage: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, From: 1, To: 10, HasNext: true},
		},
		{
			name: "last partial page", page: 3, pageSize: 10, totalItems: 25, totalPage: 3,
			want: PageMeta{CurrentPage: 3, PageSize: 10, TotalPages: 3, TotalItems: 25, From: 21, To: 25, HasPrevious: true},
		},
		{
			name: "derived total pages", page: 2, pageSize: 10, totalItems: 25,
			want: PageMeta{CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, From: 11, To: 20, HasPrevious: true, HasNext: true},
		},
		{
			name: "empty", page: 1, pageSize: 10,
			want: PageMeta{CurrentPage: 1, PageSize: 10},
		},
		{
			name: "beyond last page", page: 9, pageSize: 10, totalItems: 25, totalPage: 3,
			want: PageMeta{CurrentPage: 9, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPageMeta(tt.page, tt.pageSize, tt.totalItems, tt.totalPage))
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name       string
		sortStr    string
		wantColumn query.Column
		wantOrder  query.Order
		wantErr    error
	}{
		{name: "empty", sortStr: "", wantColumn: query.ColumnID, wantOrder: query.OrderAsc},
		{name: "field only", sortStr: "name", wantColumn: query.ColumnName, wantOrder: query.OrderAsc},
		{name: "field and desc", sortStr: "date_joined:desc", wantColumn: query.ColumnDateJoined, wantOrder: query.OrderDesc},
		{name: "upper case", sortStr: "EMAIL:ASC", wantColumn: query.ColumnEmail, wantOrder: query.OrderAsc},
		{name: "too many parts", sortStr: "name:asc:extra", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
		{name: "unknown field", sortStr: "salary", wantErr: query.ErrInvalidColumn},
		{name: "bad order", sortStr: "name:up", wantErr: query.ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, order, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantColumn, column)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestParams_State(t *testing.T) {
	p := NewParams()
	p.Search = "  ada "
	p.Role = "Lead"
	p.Sort = "name:desc"
	p.Page = 3
	p.PageSize = 25

	s, err := p.State()
	require.NoError(t, err)
	assert.Equal(t, query.State{
		Search:    "ada",
		Role:      "Lead",
		SortBy:    query.ColumnName,
		SortOrder: query.OrderDesc,
		Page:      3,
		PageSize:  25,
	}, s)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "defaults", params: *NewParams()},
		{name: "page zero", params: Params{Page: 0, PageSize: 10}, wantErr: ErrInvalidPage},
		{name: "bad page size", params: Params{Page: 1, PageSize: 15}, wantErr: query.ErrInvalidPageSize},
		{name: "bad sort", params: Params{Page: 1, PageSize: 10, Sort: "a:b:c"}, wantErr: ErrInvalidSortFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
