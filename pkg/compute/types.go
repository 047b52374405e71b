package compute

import (
	"github.com/huandu/go-clone"
)

type OrderType int

const (
	OT_INVALID OrderType = iota
	OT_DEFAULT
	OT_ASC
	OT_DESC
)

type OrderByNullType int

const (
	OBNT_INVALID OrderByNullType = iota
	OBNT_DEFAULT
	OBNT_NULLS_FIRST
	OBNT_NULLS_LAST
)

// OrderSpec describes one order-by request: per-column directions plus the
// null placement shared by all columns of the call.
type OrderSpec struct {
	Orders    []OrderType
	NullOrder OrderByNullType
}

// Clone deep-copies the spec so a caller can adjust directions per call
// without touching the original.
func (spec *OrderSpec) Clone() *OrderSpec {
	return clone.Clone(spec).(*OrderSpec)
}

// OrderContext carries the per-call ordering policy into the order-by
// entry point.
type OrderContext struct {
	NullOrder OrderByNullType
}

// SearchOptions configures the ordered-search entry point.
type SearchOptions struct {
	// FindFirstGreater searches for the first haystack row strictly greater
	// than the needle row instead of the first row not less than it.
	FindFirstGreater bool
	// NullsFirst places nulls before values; it must match the policy the
	// haystack was sorted with.
	NullsFirst bool
	// UseHaystackLength writes the haystack row count for needles beyond
	// every haystack row; otherwise the result row is nulled out.
	UseHaystackLength bool
}
