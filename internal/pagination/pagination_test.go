package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestThirteenItemsSplitTenAndThree(t *testing.T) {
	items := seq(13)

	first := Paginate(items, 10, "")
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	second := Paginate(items, 10, "2")
	assert.Equal(t, []int{10, 11, 12}, second.Items)
	assert.Equal(t, 2, second.Number)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
}

func TestRequestedPageClamping(t *testing.T) {
	items := seq(25)
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"1.5", 1},
		{"0", 1},
		{"-4", 1},
		{"3", 3},
		{" 2 ", 2},
		{"99", 3},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			p := Paginate(items, 10, tc.raw)
			assert.Equal(t, tc.want, p.Number)
		})
	}
}

func TestEmptyListingHasOnePage(t *testing.T) {
	p := Paginate([]string(nil), 10, "5")
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext)
}

func TestNonPositivePageSizeFallsBack(t *testing.T) {
	p := Paginate(seq(15), 0, "1")
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, DefaultPageSize)
}

func TestWindow(t *testing.T) {
	w := NewWindow(13, 10, 2)
	assert.Equal(t, Window{Number: 2, TotalPages: 2, Offset: 10, Limit: 3}, w)

	w = NewWindow(20, 10, 2)
	assert.Equal(t, Window{Number: 2, TotalPages: 2, Offset: 10, Limit: 10}, w)

	w = NewWindow(0, 10, 1)
	assert.Equal(t, Window{Number: 1, TotalPages: 1, Offset: 0, Limit: 0}, w)
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	items := seq(5)
	p := Paginate(items, 2, "1")
	p.Items[0] = 42
	assert.Equal(t, 0, items[0])
}

func TestMapKeepsPosition(t *testing.T) {
	p := Paginate(seq(13), 10, "2")
	m := Map(p, func(i int) string { return string(rune('a' + i - 10)) })
	assert.Equal(t, []string{"a", "b", "c"}, m.Items)
	assert.Equal(t, p.Number, m.Number)
	assert.Equal(t, p.TotalPages, m.TotalPages)
	assert.True(t, m.HasPrevious)
}
