package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/api/apitest"
	"github.com/rshade/dataexplorer/internal/query"
)

func TestRenderTable_ExactlyOneBody(t *testing.T) {
	users := apitest.GenerateUsers(3)

	tests := []struct {
		name        string
		props       TableProps
		wantLoading bool
		wantEmpty   bool
		wantRows    bool
	}{
		{
			name:        "loading with rows",
			props:       TableProps{Items: users, Loading: true, SortBy: query.ColumnID, SortOrder: query.OrderAsc},
			wantLoading: true,
		},
		{
			name:      "empty",
			props:     TableProps{SortBy: query.ColumnID, SortOrder: query.OrderAsc},
			wantEmpty: true,
		},
		{
			name:     "rows",
			props:    TableProps{Items: users, SortBy: query.ColumnID, SortOrder: query.OrderAsc},
			wantRows: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderTable(tt.props)
			assert.Equal(t, tt.wantLoading, strings.Contains(out, msgLoadingUsers))
			assert.Equal(t, tt.wantEmpty, strings.Contains(out, msgNoUsers))
			assert.Equal(t, tt.wantRows, strings.Contains(out, users[0].Email))
		})
	}
}

func TestRenderTable_SortMarker(t *testing.T) {
	out := RenderTable(TableProps{SortBy: query.ColumnName, SortOrder: query.OrderDesc})
	header := strings.Split(out, "\n")[0]
	assert.Contains(t, header, "Name "+markerDesc)
	assert.NotContains(t, header, markerAsc)
	assert.Equal(t, 1, strings.Count(header, markerDesc))

	out = RenderTable(TableProps{SortBy: query.ColumnDateJoined, SortOrder: query.OrderAsc})
	assert.Contains(t, out, "Date Joined "+markerAsc)
}

func TestRenderTable_DoesNotMutateInput(t *testing.T) {
	users := apitest.GenerateUsers(5)
	before := append([]api.User(nil), users...)

	RenderTable(TableProps{Items: users, SortBy: query.ColumnName, SortOrder: query.OrderDesc, Cursor: 2, Height: 2})
	assert.Equal(t, before, users)
}

func TestRenderTable_Viewport(t *testing.T) {
	users := apitest.GenerateUsers(30)
	out := RenderTable(TableProps{Items: users, SortBy: query.ColumnID, SortOrder: query.OrderAsc, Cursor: 29, Height: 5})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2+5)
	assert.Contains(t, out, users[29].Email)
	assert.NotContains(t, out, users[0].Email)
}

func TestRenderTable_ZeroDate(t *testing.T) {
	out := RenderTable(TableProps{Items: []api.User{{ID: 7, Name: "No Date"}}, SortBy: query.ColumnID, SortOrder: query.OrderAsc})
	row := strings.Split(out, "\n")[2]
	assert.True(t, strings.HasSuffix(strings.TrimRight(row, " "), "-"))
}

func TestSortIndicator(t *testing.T) {
	assert.Equal(t, markerAsc, SortIndicator(query.ColumnID, query.ColumnID, query.OrderAsc))
	assert.Equal(t, markerDesc, SortIndicator(query.ColumnID, query.ColumnID, query.OrderDesc))
	assert.Empty(t, SortIndicator(query.ColumnRole, query.ColumnID, query.OrderDesc))
}

func TestColumnForKey(t *testing.T) {
	for i, want := range query.Columns() {
		got, ok := ColumnForKey(string(rune('1' + i)))
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	for _, k := range []string{"0", "7", "x", ""} {
		_, ok := ColumnForKey(k)
		assert.False(t, ok, k)
	}
}
