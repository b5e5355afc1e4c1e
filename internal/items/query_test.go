package items

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	q := DiscoveryQuery{}
	q.Normalize()

	assert.Equal(t, ScopeHostel, q.Scope)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
}

func TestNormalizeRejectsUnknownScope(t *testing.T) {
	t.Parallel()

	q := DiscoveryQuery{Scope: "campus"}
	q.Normalize()
	assert.Equal(t, ScopeHostel, q.Scope)

	q = DiscoveryQuery{Scope: ScopeUniversity}
	q.Normalize()
	assert.Equal(t, ScopeUniversity, q.Scope)
}

func TestSkip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit, want int
	}{
		{1, 12, 0},
		{2, 12, 12},
		{3, 5, 10},
	}
	for _, tt := range tests {
		q := DiscoveryQuery{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.want, q.Skip())
	}
}

func TestScopeCondition(t *testing.T) {
	t.Parallel()

	cond, arg := ScopeCondition(ScopeHostel, "h-1", "MU", 1)
	assert.Equal(t, "i.hostel_id = $1", cond)
	assert.Equal(t, "h-1", arg)

	cond, arg = ScopeCondition(ScopeUniversity, "h-1", "MU", 1)
	assert.Contains(t, cond, "university = $1")
	assert.Contains(t, cond, "is_active")
	assert.Equal(t, "MU", arg)
}

func TestBuildFilterBasePredicate(t *testing.T) {
	t.Parallel()

	q := DiscoveryQuery{}
	q.Normalize()

	where, args := q.BuildFilter("h-1", "MU")

	assert.True(t, strings.HasPrefix(where, "WHERE "))
	assert.Contains(t, where, "i.hostel_id = $1")
	assert.Contains(t, where, "i.status = 'available'")
	assert.Contains(t, where, "i.is_active")
	require.Len(t, args, 1)
	assert.Equal(t, "h-1", args[0])
}

func TestBuildFilterSearchNarrowsBase(t *testing.T) {
	t.Parallel()

	q := DiscoveryQuery{Search: "lamp"}
	q.Normalize()

	where, args := q.BuildFilter("h-1", "MU")

	// The search clause must AND onto the base predicate, not replace it.
	assert.Contains(t, where, "i.status = 'available'")
	assert.Contains(t, where, "i.title ILIKE $2")
	assert.Contains(t, where, "i.description ILIKE $2")
	assert.Contains(t, where, "tag ILIKE $2")
	require.Len(t, args, 2)
	assert.Equal(t, "%lamp%", args[1])
}

func TestBuildFilterAllFilters(t *testing.T) {
	t.Parallel()

	min, max := 10.0, 500.0
	q := DiscoveryQuery{
		Scope:       ScopeUniversity,
		Search:      "desk",
		Category:    "furniture",
		ListingType: "sell",
		Condition:   "good",
		MinPrice:    &min,
		MaxPrice:    &max,
	}
	q.Normalize()

	where, args := q.BuildFilter("h-1", "MU")

	require.Len(t, args, 7)
	assert.Equal(t, "MU", args[0])
	assert.Equal(t, "furniture", args[1])
	assert.Equal(t, "sell", args[2])
	assert.Equal(t, "good", args[3])
	assert.Equal(t, min, args[4])
	assert.Equal(t, max, args[5])
	assert.Equal(t, "%desk%", args[6])

	assert.Contains(t, where, "i.category = $2")
	assert.Contains(t, where, "i.listing_type = $3")
	assert.Contains(t, where, "i.condition = $4")
	assert.Contains(t, where, "i.price >= $5")
	assert.Contains(t, where, "i.price <= $6")
	assert.Contains(t, where, "ILIKE $7")
}

func TestBuildSelectOrderAndPaging(t *testing.T) {
	t.Parallel()

	q := DiscoveryQuery{Page: 3, Limit: 10}
	q.Normalize()

	query, args := q.BuildSelect("h-1", "MU")

	assert.Contains(t, query, "ORDER BY i.is_promoted DESC, i.created_at DESC")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	require.Len(t, args, 3)
	assert.Equal(t, 10, args[1])
	assert.Equal(t, 20, args[2])
}

func TestBuildCountMatchesFilter(t *testing.T) {
	t.Parallel()

	q := DiscoveryQuery{Category: "books"}
	q.Normalize()

	selQuery, selArgs := q.BuildSelect("h-1", "MU")
	cntQuery, cntArgs := q.BuildCount("h-1", "MU")

	assert.True(t, strings.HasPrefix(cntQuery, "SELECT COUNT(*)"))
	assert.NotContains(t, cntQuery, "LIMIT")
	// The count query shares the select's filter args minus paging.
	assert.Equal(t, selArgs[:len(selArgs)-2], cntArgs)
	assert.Contains(t, selQuery, "i.category = $2")
	assert.Contains(t, cntQuery, "i.category = $2")
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     int
		limit    int
		returned int
		total    int
		want     Pagination
	}{
		{
			name: "first of many",
			page: 1, limit: 12, returned: 12, total: 30,
			want: Pagination{Current: 1, Pages: 3, Total: 30, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, limit: 12, returned: 12, total: 30,
			want: Pagination{Current: 2, Pages: 3, Total: 30, HasNext: true, HasPrev: true},
		},
		{
			name: "last partial page",
			page: 3, limit: 12, returned: 6, total: 30,
			want: Pagination{Current: 3, Pages: 3, Total: 30, HasNext: false, HasPrev: true},
		},
		{
			name: "exact fit",
			page: 1, limit: 10, returned: 10, total: 10,
			want: Pagination{Current: 1, Pages: 1, Total: 10, HasNext: false, HasPrev: false},
		},
		{
			name: "empty result",
			page: 1, limit: 12, returned: 0, total: 0,
			want: Pagination{Current: 1, Pages: 0, Total: 0, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewPagination(tt.page, tt.limit, tt.returned, tt.total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	page, limit := ParsePage("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, limit)

	page, limit = ParsePage("3", "20")
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePage("-1", "abc")
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, limit)
}

func TestParsePriceBound(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parsePriceBound(""))
	assert.Nil(t, parsePriceBound("cheap"))

	v := parsePriceBound("99.5")
	require.NotNil(t, v)
	assert.Equal(t, 99.5, *v)
}
