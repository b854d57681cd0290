// Package repository declares the persistence ports for the domain.
// Implementations live under internal/infrastructure/persistence.
package repository

import "context"

// TxKey carries an active transaction through a context. Repository
// implementations check it so that methods called inside
// Transactor.WithTransaction join the same transaction.
type TxKey struct{}

// Transactor runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. Nested calls
// join the outer transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pagination is a limit/offset window over a list query.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize clamps the window to sane bounds.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Limit returns the SQL limit for the window.
func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset returns the SQL offset for the window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PagedResult is a page of items plus the total match count.
type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewPagedResult builds a page from a query result.
func NewPagedResult[T any](items []T, total int64, p Pagination) *PagedResult[T] {
	return &PagedResult[T]{
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
