package pagination

import (
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

const (
	// DefaultPage is used when no page is requested.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize enforces the configured defaults and the maximum limit.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Build computes the adjacent page pointers for a result set of total rows.
// Next is present only while rows remain past the current page, Prev only
// past the first page.
func Build(params Params, total int64) *types.Pagination {
	n := params.Normalize()

	out := &types.Pagination{}
	if int64(n.Page*n.Limit) < total {
		out.Next = &types.Page{Page: n.Page + 1, Limit: n.Limit}
	}
	if n.Page > 1 {
		out.Prev = &types.Page{Page: n.Page - 1, Limit: n.Limit}
	}
	if out.Next == nil && out.Prev == nil {
		return nil
	}
	return out
}
