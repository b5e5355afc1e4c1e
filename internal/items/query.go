package items

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fretio/fretio/internal/db"
)

// Discovery scope selectors.
const (
	ScopeHostel     = "hostel"
	ScopeUniversity = "university"
)

// DiscoveryQuery is the filter set for listing discovery. Zero values
// mean "no filter".
type DiscoveryQuery struct {
	Scope       string
	Search      string
	Category    string
	ListingType string
	Condition   string
	MinPrice    *float64
	MaxPrice    *float64
	Page        int
	Limit       int
}

// Normalize applies the documented defaults: hostel scope, page 1,
// twelve results per page.
func (q *DiscoveryQuery) Normalize() {
	if q.Scope != ScopeUniversity {
		q.Scope = ScopeHostel
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}
}

// Skip returns the row offset for the current page.
func (q *DiscoveryQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// ScopeCondition renders the hostel-set predicate for the caller's
// scope, appending its argument to args. Hostel scope pins the exact
// hostel; university scope expands to every active hostel sharing the
// caller's university.
func ScopeCondition(scope, hostelID, university string, argPos int) (string, any) {
	if scope == ScopeUniversity {
		return fmt.Sprintf("i.hostel_id IN (SELECT id FROM hostels WHERE university = $%d AND is_active)", argPos), university
	}
	return fmt.Sprintf("i.hostel_id = $%d", argPos), hostelID
}

// BuildFilter renders the discovery WHERE clause and its arguments.
// The base predicate (scope, available, active) always applies; search
// narrows it, never replaces it.
func (q *DiscoveryQuery) BuildFilter(hostelID, university string) (string, []any) {
	var conds []string
	var args []any

	scopeCond, scopeArg := ScopeCondition(q.Scope, hostelID, university, 1)
	conds = append(conds, scopeCond)
	args = append(args, scopeArg)

	conds = append(conds, "i.status = 'available'", "i.is_active")

	if q.Category != "" {
		args = append(args, q.Category)
		conds = append(conds, fmt.Sprintf("i.category = $%d", len(args)))
	}
	if q.ListingType != "" {
		args = append(args, q.ListingType)
		conds = append(conds, fmt.Sprintf("i.listing_type = $%d", len(args)))
	}
	if q.Condition != "" {
		args = append(args, q.Condition)
		conds = append(conds, fmt.Sprintf("i.condition = $%d", len(args)))
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		conds = append(conds, fmt.Sprintf("i.price >= $%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		conds = append(conds, fmt.Sprintf("i.price <= $%d", len(args)))
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(i.title ILIKE $%d OR i.description ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(i.tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// BuildSelect renders the full paginated discovery query. The sort
// order is fixed: promoted listings first, then newest.
func (q *DiscoveryQuery) BuildSelect(hostelID, university string) (string, []any) {
	where, args := q.BuildFilter(hostelID, university)
	args = append(args, q.Limit, q.Skip())
	query := itemSelect + " " + where +
		" ORDER BY i.is_promoted DESC, i.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args
}

// BuildCount renders the matching total-count query.
func (q *DiscoveryQuery) BuildCount(hostelID, university string) (string, []any) {
	where, args := q.BuildFilter(hostelID, university)
	return "SELECT COUNT(*) FROM items i " + where, args
}

// Pagination is the page metadata block returned alongside results.
type Pagination struct {
	Current int  `json:"current"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination derives the page block from the request and the result
// set: hasNext holds when rows remain past this page, hasPrev past
// page one.
func NewPagination(page, limit, returned, total int) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	skip := (page - 1) * limit
	return Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		HasNext: skip+returned < total,
		HasPrev: page > 1,
	}
}

// parsePositiveInt parses query parameters like page and limit,
// falling back when absent or malformed.
func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func parsePriceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParsePage parses page and limit query parameters with the
// discovery defaults.
func ParsePage(rawPage, rawLimit string) (page, limit int) {
	return parsePositiveInt(rawPage, 1), parsePositiveInt(rawLimit, 12)
}

// FetchPage runs the item select with the given tail (WHERE and ORDER
// BY clauses referencing the i alias) and appends LIMIT and OFFSET
// for the requested page.
func FetchPage(ctx context.Context, tail string, args []any, page, limit int) ([]*Item, error) {
	pageArgs := append(append([]any{}, args...), limit, (page-1)*limit)
	query := itemSelect + " " + tail +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := db.Conn.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, it)
	}
	return results, rows.Err()
}
