package model

// Page is one slice of a filtered listing. Total counts every matching row.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}
