package dto

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type PageParams struct {
	Page int
	Size int
}

// ParsePageParams reads page and size from the query string, falling back to
// defaults for missing or invalid values and capping size at MaxPageSize.
func ParsePageParams(q url.Values) PageParams {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = DefaultPage
	}
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageParams{Page: page, Size: size}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Range returns the inclusive row range used by PostgREST.
func (p PageParams) Range() (from, to int) {
	from = p.Offset()
	return from, from + p.Size - 1
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

func NewPage[T any](items []T, total int, params PageParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if params.Size > 0 {
		pages = (total + params.Size - 1) / params.Size
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
		Pages: pages,
	}
}
