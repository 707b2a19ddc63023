// Package params validates listing query parameters and turns them into
// safe, enumerated inputs for the repository. User input never reaches a
// SQL statement directly: per-page values come from a closed allow-set and
// sort keys are translated through a static column map.
package params

import (
	"fmt"
	"strconv"

	"github.com/UnendingLoop/UploadServer/internal/model"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 8
	MaxPerPage     = 20
)

// AvailablePerPage is the allow-set of page sizes.
var AvailablePerPage = map[int]bool{
	4:  true,
	8:  true,
	12: true,
}

// Pagination holds SQL-ready limit/offset values.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination validates page and per_page query values and computes
// limit/offset. Absent values fall back to defaults.
func ParsePagination(query map[string]string) (Pagination, error) {
	pageStr, ok := query["page"]
	if !ok {
		pageStr = strconv.Itoa(DefaultPage)
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		return Pagination{}, fmt.Errorf("%w: %q", model.ErrInvalidPage, pageStr)
	}

	perPageStr, ok := query["per_page"]
	if !ok {
		perPageStr = strconv.Itoa(DefaultPerPage)
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage <= 0 {
		return Pagination{}, fmt.Errorf("%w: %q", model.ErrInvalidPerPage, perPageStr)
	}
	if !AvailablePerPage[perPage] {
		return Pagination{}, fmt.Errorf("%w: %d (available: 4, 8, 12)", model.ErrPerPageNotAvailable, perPage)
	}
	// Unreachable while the allow-set tops out below MaxPerPage; kept so a
	// future allow-set change cannot blow past the ceiling unnoticed.
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Pagination{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}, nil
}
