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
	"github.com/keeldb/keel/pkg/common"
	"github.com/keeldb/keel/pkg/util"
)

// orderVerdict is the outcome of comparing one column of two rows. A single
// column can fail to decide the order (equal values, or two nulls); the
// multi-column scan then moves to the next column.
type orderVerdict int8

const (
	orderUndecided orderVerdict = iota
	orderLess
	orderGreater
)

type CompareOp[T any] interface {
	operation(left, right *T) bool
}

// =

type equalOp[T comparable] struct {
}

func (e equalOp[T]) operation(left, right *T) bool {
	return *left == *right
}

type equalStrOp struct {
}

func (e equalStrOp) operation(left, right *common.String) bool {
	return left.Equal(right)
}

type equalDateOp struct {
}

func (e equalDateOp) operation(left, right *common.Date) bool {
	return left.Equal(right)
}

type equalDecimalOp struct {
}

func (e equalDecimalOp) operation(left, right *common.Decimal) bool {
	return left.Equal(right)
}

// NaN compares neither less nor greater than NaN, so two NaNs are equal
// under the ordering and must be equal here too.
type equalFloatOp[T ~float32 | ~float64] struct {
}

func (e equalFloatOp[T]) operation(left, right *T) bool {
	return !util.LessFloat(*left, *right) && !util.LessFloat(*right, *left)
}

// <

type lessOp[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64] struct {
}

func (l lessOp[T]) operation(left, right *T) bool {
	return *left < *right
}

// false sorts before true
type lessBoolOp struct {
}

func (l lessBoolOp) operation(left, right *bool) bool {
	return !*left && *right
}

// NaN sorts after every other value
type lessFloatOp[T ~float32 | ~float64] struct {
}

func (l lessFloatOp[T]) operation(left, right *T) bool {
	return util.LessFloat(*left, *right)
}

type lessStrOp struct {
}

func (l lessStrOp) operation(left, right *common.String) bool {
	return left.Less(right)
}

type lessDateOp struct {
}

func (l lessDateOp) operation(left, right *common.Date) bool {
	return left.Less(right)
}

type lessDecimalOp struct {
}

func (l lessDecimalOp) operation(left, right *common.Decimal) bool {
	return left.Less(right)
}

func verdictAt[T any](lvec, rvec *chunk.Vector, lIdx, rIdx int, less CompareOp[T]) orderVerdict {
	lSlice := chunk.GetSliceInPhyFormatFlat[T](lvec)
	rSlice := chunk.GetSliceInPhyFormatFlat[T](rvec)
	if less.operation(&lSlice[lIdx], &rSlice[rIdx]) {
		return orderLess
	}
	if less.operation(&rSlice[rIdx], &lSlice[lIdx]) {
		return orderGreater
	}
	return orderUndecided
}

func equalAt[T any](lvec, rvec *chunk.Vector, lIdx, rIdx int, eq CompareOp[T]) bool {
	lSlice := chunk.GetSliceInPhyFormatFlat[T](lvec)
	rSlice := chunk.GetSliceInPhyFormatFlat[T](rvec)
	return eq.operation(&lSlice[lIdx], &rSlice[rIdx])
}

// compareColumn orders element lIdx of lvec against element rIdx of rvec.
// Both vectors carry the same physical type; callers validate before
// dispatching, so an unknown tag here is unreachable.
func compareColumn(lvec, rvec *chunk.Vector, lIdx, rIdx int) orderVerdict {
	switch lvec.Typ().GetInternalType() {
	case common.BOOL:
		return verdictAt[bool](lvec, rvec, lIdx, rIdx, lessBoolOp{})
	case common.INT8:
		return verdictAt[int8](lvec, rvec, lIdx, rIdx, lessOp[int8]{})
	case common.INT16:
		return verdictAt[int16](lvec, rvec, lIdx, rIdx, lessOp[int16]{})
	case common.INT32:
		return verdictAt[int32](lvec, rvec, lIdx, rIdx, lessOp[int32]{})
	case common.INT64:
		return verdictAt[int64](lvec, rvec, lIdx, rIdx, lessOp[int64]{})
	case common.UINT8:
		return verdictAt[uint8](lvec, rvec, lIdx, rIdx, lessOp[uint8]{})
	case common.UINT16:
		return verdictAt[uint16](lvec, rvec, lIdx, rIdx, lessOp[uint16]{})
	case common.UINT32:
		return verdictAt[uint32](lvec, rvec, lIdx, rIdx, lessOp[uint32]{})
	case common.UINT64:
		return verdictAt[uint64](lvec, rvec, lIdx, rIdx, lessOp[uint64]{})
	case common.FLOAT:
		return verdictAt[float32](lvec, rvec, lIdx, rIdx, lessFloatOp[float32]{})
	case common.DOUBLE:
		return verdictAt[float64](lvec, rvec, lIdx, rIdx, lessFloatOp[float64]{})
	case common.DATE:
		return verdictAt[common.Date](lvec, rvec, lIdx, rIdx, lessDateOp{})
	case common.DECIMAL:
		return verdictAt[common.Decimal](lvec, rvec, lIdx, rIdx, lessDecimalOp{})
	case common.VARCHAR:
		return verdictAt[common.String](lvec, rvec, lIdx, rIdx, lessStrOp{})
	default:
		panic("usp")
	}
}

// equalColumn tests element lIdx of lvec against element rIdx of rvec.
func equalColumn(lvec, rvec *chunk.Vector, lIdx, rIdx int) bool {
	switch lvec.Typ().GetInternalType() {
	case common.BOOL:
		return equalAt[bool](lvec, rvec, lIdx, rIdx, equalOp[bool]{})
	case common.INT8:
		return equalAt[int8](lvec, rvec, lIdx, rIdx, equalOp[int8]{})
	case common.INT16:
		return equalAt[int16](lvec, rvec, lIdx, rIdx, equalOp[int16]{})
	case common.INT32:
		return equalAt[int32](lvec, rvec, lIdx, rIdx, equalOp[int32]{})
	case common.INT64:
		return equalAt[int64](lvec, rvec, lIdx, rIdx, equalOp[int64]{})
	case common.UINT8:
		return equalAt[uint8](lvec, rvec, lIdx, rIdx, equalOp[uint8]{})
	case common.UINT16:
		return equalAt[uint16](lvec, rvec, lIdx, rIdx, equalOp[uint16]{})
	case common.UINT32:
		return equalAt[uint32](lvec, rvec, lIdx, rIdx, equalOp[uint32]{})
	case common.UINT64:
		return equalAt[uint64](lvec, rvec, lIdx, rIdx, equalOp[uint64]{})
	case common.FLOAT:
		return equalAt[float32](lvec, rvec, lIdx, rIdx, equalFloatOp[float32]{})
	case common.DOUBLE:
		return equalAt[float64](lvec, rvec, lIdx, rIdx, equalFloatOp[float64]{})
	case common.DATE:
		return equalAt[common.Date](lvec, rvec, lIdx, rIdx, equalDateOp{})
	case common.DECIMAL:
		return equalAt[common.Decimal](lvec, rvec, lIdx, rIdx, equalDecimalOp{})
	case common.VARCHAR:
		return equalAt[common.String](lvec, rvec, lIdx, rIdx, equalStrOp{})
	default:
		panic("usp")
	}
}

func comparableType(typ common.LType) bool {
	switch typ.GetInternalType() {
	case common.BOOL,
		common.INT8, common.INT16, common.INT32, common.INT64,
		common.UINT8, common.UINT16, common.UINT32, common.UINT64,
		common.FLOAT, common.DOUBLE,
		common.DATE, common.DECIMAL, common.VARCHAR:
		return true
	default:
		return false
	}
}

// validateTablePair checks the preconditions every row comparator shares:
// matching column counts, matching comparable types, and for category
// columns a shared dictionary, since indexes of different dictionaries do
// not order the same way their keys do.
func validateTablePair(left, right *chunk.Table) error {
	if left == nil || right == nil {
		return fmt.Errorf("%w: nil table", ErrDatasetEmpty)
	}
	if left.ColumnCount() == 0 || right.ColumnCount() == 0 {
		return fmt.Errorf("%w: zero columns", ErrInvalidArgument)
	}
	if left.ColumnCount() != right.ColumnCount() {
		return fmt.Errorf("%w: %d vs %d",
			ErrColumnCountMismatch, left.ColumnCount(), right.ColumnCount())
	}
	for j := 0; j < left.ColumnCount(); j++ {
		lcol, rcol := left.Column(j), right.Column(j)
		if !lcol.Typ().Equal(rcol.Typ()) {
			return fmt.Errorf("%w: column %d type %v vs %v",
				ErrUnsupportedType, j, lcol.Typ().Id, rcol.Typ().Id)
		}
		if !comparableType(lcol.Typ()) {
			return fmt.Errorf("%w: column %d type %v",
				ErrUnsupportedType, j, lcol.Typ().Id)
		}
		if lcol.Typ().IsStringCategory() && lcol.Cat != rcol.Cat {
			return fmt.Errorf("%w: column %d category dictionaries not synced",
				ErrUnsupportedType, j)
		}
	}
	return nil
}
