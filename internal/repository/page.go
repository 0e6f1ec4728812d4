package repository

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("record not found")

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest is the caller's paging window. Zero values fall back to the
// first page at the default limit.
type PageRequest struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Page is the list envelope every store returns. TotalPages is always
// ceil(Total/Limit) and Data holds at most Limit records of the filtered
// set, sliced for the requested page.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

func paginate[T any](filtered []T, req PageRequest) Page[T] {
	req = req.normalize()

	total := len(filtered)
	totalPages := (total + req.Limit - 1) / req.Limit

	start := (req.Page - 1) * req.Limit
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, filtered[start:end])

	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}
}

// matchText is the free-text predicate: an empty query applies no
// constraint, otherwise a case-insensitive substring match over the given
// fields.
func matchText(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, field := range fields {
		if containsFold(field, query) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
