// Copyright 2024-2025 keeldb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compute

import (
	"fmt"

	"github.com/keeldb/keel/pkg/chunk"
)

// RowOrder is a strict-weak-ordering comparator over whole rows of two table
// views. Columns are scanned left to right; the first column that decides
// the order wins. A descending column swaps its operand sides, so both the
// value comparison and the null placement flip with it. Nulls compare equal
// to nulls and otherwise sort to the side the null policy names, on either
// operand.
type RowOrder struct {
	left   *chunk.Table
	right  *chunk.Table
	orders []OrderType
	// nullsFirst: a null row is less than a valid row.
	nullsFirst bool
	// computed once; row comparisons skip mask probes entirely when neither
	// side carries validity storage.
	hasNulls bool
}

// NewRowOrder builds the comparator. orders may be nil (all ascending) or
// hold one direction per column; OT_DEFAULT means ascending. nullOrder
// OBNT_DEFAULT means nulls first.
func NewRowOrder(left, right *chunk.Table, orders []OrderType, nullOrder OrderByNullType) (*RowOrder, error) {
	if err := validateTablePair(left, right); err != nil {
		return nil, err
	}
	if orders != nil && len(orders) != left.ColumnCount() {
		return nil, fmt.Errorf("%w: %d orders for %d columns",
			ErrColumnCountMismatch, len(orders), left.ColumnCount())
	}
	normalized := make([]OrderType, left.ColumnCount())
	for j := range normalized {
		normalized[j] = OT_ASC
		if orders != nil && orders[j] == OT_DESC {
			normalized[j] = OT_DESC
		}
	}
	return &RowOrder{
		left:       left,
		right:      right,
		orders:     normalized,
		nullsFirst: nullOrder != OBNT_NULLS_LAST,
		hasNulls:   left.HasNulls() || right.HasNulls(),
	}, nil
}

// Less reports whether row lrow of the left view sorts strictly before row
// rrow of the right view.
func (ord *RowOrder) Less(lrow, rrow int) bool {
	return ord.compare(lrow, rrow) == orderLess
}

func (ord *RowOrder) compare(lrow, rrow int) orderVerdict {
	for j := 0; j < ord.left.ColumnCount(); j++ {
		if v := ord.compareColumnAt(j, lrow, rrow); v != orderUndecided {
			return v
		}
	}
	return orderUndecided
}

func (ord *RowOrder) compareColumnAt(j, lrow, rrow int) orderVerdict {
	lvec := ord.left.Column(j)
	rvec := ord.right.Column(j)
	lIdx, rIdx := lrow, rrow
	if ord.orders[j] == OT_DESC {
		lvec, rvec = rvec, lvec
		lIdx, rIdx = rIdx, lIdx
	}
	if ord.hasNulls {
		lNull := !lvec.Mask.RowIsValid(uint64(lIdx))
		rNull := !rvec.Mask.RowIsValid(uint64(rIdx))
		if lNull || rNull {
			if lNull && rNull {
				return orderUndecided
			}
			nullSide := orderLess
			if !ord.nullsFirst {
				nullSide = orderGreater
			}
			if lNull {
				return nullSide
			}
			if nullSide == orderLess {
				return orderGreater
			}
			return orderLess
		}
	}
	return compareColumn(lvec, rvec, lIdx, rIdx)
}
