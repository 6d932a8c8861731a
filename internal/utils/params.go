package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PageParams is the parsed offset pagination of a list request.
type PageParams struct {
	Page     int
	PageSize int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

var (
	ErrBadPage  = errors.New("page must be a positive integer")
	ErrBadOrder = errors.New("order must be asc or desc")
)

func ParsePage(ctx *gin.Context, defaultSize, maxSize int) (PageParams, error) {
	p := PageParams{Page: 1, PageSize: defaultSize}

	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)

		if err != nil || n < 1 {
			return PageParams{}, ErrBadPage
		}

		p.Page = n
	}

	if raw := ctx.Query("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)

		if err != nil || n < 1 {
			return PageParams{}, ErrBadPage
		}

		if n > maxSize {
			n = maxSize
		}

		p.PageSize = n
	}

	return p, nil
}

// ParseSort reads ?sort=<field>&order=asc|desc. The field itself is validated
// against the collection's whitelist at the service layer.
func ParseSort(ctx *gin.Context) (string, bool, error) {
	sortBy := ctx.Query("sort")

	switch ctx.Query("order") {
	case "", "asc":
		return sortBy, false, nil
	case "desc":
		return sortBy, true, nil
	default:
		return "", false, ErrBadOrder
	}
}

// OptionalQuery returns a pointer only when the parameter is present and
// non-empty, matching the nil-means-unset convention of the list filters.
func OptionalQuery(ctx *gin.Context, name string) *string {
	v := ctx.Query(name)

	if v == "" {
		return nil
	}

	return &v
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)

	return err == nil
}
