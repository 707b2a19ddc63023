package params

import (
	"fmt"

	"github.com/UnendingLoop/UploadServer/internal/model"
)

const (
	DefaultSortParam = "sort_age"
	DefaultSortValue = "desc"
)

// sortColumns maps logical sort keys to storage column names. The closed
// mapping is the only path from user input to a column identifier.
var sortColumns = map[string]string{
	"sort_age":  "upload_time",
	"sort_size": "size",
	"sort_name": "original_name",
}

var sortDirections = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

// Sort holds a SQL-ready column name and direction.
type Sort struct {
	Column    string
	Direction string
}

// ParseSort validates sort_param and sort_value query values and resolves
// them to a storage column and direction. Absent values fall back to
// defaults (upload_time, DESC).
func ParseSort(query map[string]string) (Sort, error) {
	sortParam, ok := query["sort_param"]
	if !ok {
		sortParam = DefaultSortParam
	}
	column, ok := sortColumns[sortParam]
	if !ok {
		return Sort{}, fmt.Errorf("%w: %q", model.ErrInvalidSortParam, sortParam)
	}

	sortValue, ok := query["sort_value"]
	if !ok {
		sortValue = DefaultSortValue
	}
	direction, ok := sortDirections[sortValue]
	if !ok {
		return Sort{}, fmt.Errorf("%w: %q", model.ErrInvalidSortValue, sortValue)
	}

	return Sort{Column: column, Direction: direction}, nil
}
