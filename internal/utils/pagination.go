package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/constants"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// DefaultPagination is used when the request carries no paging parameters.
func DefaultPagination() PaginationParams {
	return PaginationParams{Limit: constants.DefaultPageSize}
}

// ParsePagination validates raw limit/offset values. Empty values fall back to
// the defaults; anything non-numeric or out of range is rejected.
func ParsePagination(rawLimit, rawOffset string) (PaginationParams, error) {
	params := DefaultPagination()

	if s := strings.TrimSpace(rawLimit); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < constants.MinPageSize || limit > constants.MaxPageSize {
			return params, apierrors.WithKind(apierrors.ErrKindInvalidInput,
				fmt.Sprintf("limit must be an integer between %d and %d", constants.MinPageSize, constants.MaxPageSize))
		}
		params.Limit = limit
	}

	if s := strings.TrimSpace(rawOffset); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			return params, apierrors.WithKind(apierrors.ErrKindInvalidInput, "offset must be a non-negative integer")
		}
		params.Offset = offset
	}

	return params, nil
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	return ParsePagination(c.Query("limit"), c.Query("offset"))
}

// ParseID parses a positive numeric identifier from a path or query value.
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// ParseOptionalID parses an optional identifier. An empty value yields nil.
func ParseOptionalID(raw string) (*uint64, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	id, ok := ParseID(raw)
	if !ok {
		return nil, false
	}
	return &id, true
}
