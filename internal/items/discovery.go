package items

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/db"
)

// List is the discovery endpoint: filtered, paginated, optionally
// searched listings scoped to the caller's hostel or university.
func List(c echo.Context) error {
	hostelID, _ := c.Get("hostel_id").(string)
	university, _ := c.Get("university").(string)
	if hostelID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	q := DiscoveryQuery{
		Scope:       c.QueryParam("scope"),
		Search:      c.QueryParam("search"),
		Category:    c.QueryParam("category"),
		ListingType: c.QueryParam("listingType"),
		Condition:   c.QueryParam("condition"),
		MinPrice:    parsePriceBound(c.QueryParam("minPrice")),
		MaxPrice:    parsePriceBound(c.QueryParam("maxPrice")),
		Page:        parsePositiveInt(c.QueryParam("page"), 1),
		Limit:       parsePositiveInt(c.QueryParam("limit"), 12),
	}
	q.Normalize()

	ctx := context.Background()

	query, args := q.BuildSelect(hostelID, university)
	rows, err := db.Conn.Query(ctx, query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching items"})
	}
	defer rows.Close()

	results := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to parse item record"})
		}
		results = append(results, it)
	}

	var total int
	countQuery, countArgs := q.BuildCount(hostelID, university)
	if err := db.Conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching items"})
	}

	hostelName, _ := c.Get("hostel_name").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       results,
		"pagination": NewPagination(q.Page, q.Limit, len(results), total),
		"discoveryInfo": echo.Map{
			"userHostel":     hostelName,
			"userUniversity": university,
			"scope":          q.Scope,
		},
	})
}

// DiscoveryFilters computes the metadata the discovery UI needs: the
// categories present in scope, price aggregates, listing type counts
// and the hostel-vs-university counts behind the scope toggle.
func DiscoveryFilters(c echo.Context) error {
	hostelID, _ := c.Get("hostel_id").(string)
	university, _ := c.Get("university").(string)
	if hostelID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	ctx := context.Background()

	uniCond, uniArg := ScopeCondition(ScopeUniversity, hostelID, university, 1)
	base := " FROM items i WHERE " + uniCond + " AND i.status = 'available' AND i.is_active"

	rows, err := db.Conn.Query(ctx, `SELECT DISTINCT i.category`+base+` ORDER BY i.category`, uniArg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching discovery filters"})
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching discovery filters"})
		}
		categories = append(categories, cat)
	}

	var minPrice, maxPrice, avgPrice float64
	err = db.Conn.QueryRow(ctx,
		`SELECT COALESCE(MIN(i.price), 0), COALESCE(MAX(i.price), 0), COALESCE(AVG(i.price), 0)`+base, uniArg,
	).Scan(&minPrice, &maxPrice, &avgPrice)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching discovery filters"})
	}

	typeRows, err := db.Conn.Query(ctx, `SELECT i.listing_type, COUNT(*)`+base+` GROUP BY i.listing_type`, uniArg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching discovery filters"})
	}
	defer typeRows.Close()

	listingTypes := echo.Map{}
	for typeRows.Next() {
		var lt string
		var count int
		if err := typeRows.Scan(&lt, &count); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching discovery filters"})
		}
		listingTypes[lt] = count
	}

	var hostelCount, universityCount int
	hostelCond, hostelArg := ScopeCondition(ScopeHostel, hostelID, university, 1)
	err = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM items i WHERE `+hostelCond+` AND i.status = 'available' AND i.is_active`, hostelArg,
	).Scan(&hostelCount)
	if err == nil {
		err = db.Conn.QueryRow(ctx, `SELECT COUNT(*)`+base, uniArg).Scan(&universityCount)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching discovery filters"})
	}

	hostelName, _ := c.Get("hostel_name").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"categories": categories,
			"priceRange": echo.Map{
				"minPrice": minPrice,
				"maxPrice": maxPrice,
				"avgPrice": avgPrice,
			},
			"listingTypes": listingTypes,
			"scopeCounts": echo.Map{
				"hostel":     hostelCount,
				"university": universityCount,
			},
			"userInfo": echo.Map{
				"hostel":     hostelName,
				"university": university,
			},
		},
	})
}
