package pagination_test

import (
	"testing"

	"github.com/jrsteele09/go-admin-frontend/internal/pagination"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		raw           string
		expectedPage  int
		expectedTotal int
		expectedStart int
		expectedEnd   int
	}{
		{name: "empty list has one page", total: 0, raw: "", expectedPage: 1, expectedTotal: 1, expectedStart: 0, expectedEnd: 0},
		{name: "eight items two pages", total: 8, raw: "1", expectedPage: 1, expectedTotal: 2, expectedStart: 0, expectedEnd: 6},
		{name: "second page", total: 8, raw: "2", expectedPage: 2, expectedTotal: 2, expectedStart: 6, expectedEnd: 8},
		{name: "page past the end clamps", total: 8, raw: "5", expectedPage: 2, expectedTotal: 2, expectedStart: 6, expectedEnd: 8},
		{name: "zero clamps to first", total: 8, raw: "0", expectedPage: 1, expectedTotal: 2, expectedStart: 0, expectedEnd: 6},
		{name: "negative clamps to first", total: 8, raw: "-3", expectedPage: 1, expectedTotal: 2, expectedStart: 0, expectedEnd: 6},
		{name: "garbage selects first", total: 8, raw: "abc", expectedPage: 1, expectedTotal: 2, expectedStart: 0, expectedEnd: 6},
		{name: "exact multiple", total: 12, raw: "2", expectedPage: 2, expectedTotal: 2, expectedStart: 6, expectedEnd: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Paginate(tt.total, pagination.PageSize, tt.raw)
			require.Equal(t, tt.expectedPage, p.Current)
			require.Equal(t, tt.expectedTotal, p.TotalPages)
			require.Len(t, p.Pages, tt.expectedTotal)
			require.Equal(t, 1, p.Pages[0])
			require.Equal(t, tt.expectedStart, p.Start)
			require.Equal(t, tt.expectedEnd, p.End)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, pagination.Slice(items, pagination.Paginate(len(items), 6, "1")))
	require.Equal(t, []int{7, 8}, pagination.Slice(items, pagination.Paginate(len(items), 6, "2")))
	require.Equal(t, []int{}, pagination.Slice([]int{}, pagination.Paginate(0, 6, "1")))
}
