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
	"github.com/keeldb/keel/pkg/chunk"
)

// RowEqual tests whole rows of two table views for equality, column by
// column with a short circuit on the first unequal column. The two views may
// be the same table.
type RowEqual struct {
	left  *chunk.Table
	right *chunk.Table
	// nullsEqual makes a null match a null. One null against a value is
	// unequal either way.
	nullsEqual bool
	hasNulls   bool
}

func NewRowEqual(left, right *chunk.Table, nullsEqual bool) (*RowEqual, error) {
	if err := validateTablePair(left, right); err != nil {
		return nil, err
	}
	return &RowEqual{
		left:       left,
		right:      right,
		nullsEqual: nullsEqual,
		hasNulls:   left.HasNulls() || right.HasNulls(),
	}, nil
}

func (eq *RowEqual) Equal(lrow, rrow int) bool {
	for j := 0; j < eq.left.ColumnCount(); j++ {
		lvec := eq.left.Column(j)
		rvec := eq.right.Column(j)
		if eq.hasNulls {
			lNull := !lvec.Mask.RowIsValid(uint64(lrow))
			rNull := !rvec.Mask.RowIsValid(uint64(rrow))
			if lNull || rNull {
				if lNull && rNull && eq.nullsEqual {
					continue
				}
				return false
			}
		}
		if !equalColumn(lvec, rvec, lrow, rrow) {
			return false
		}
	}
	return true
}
