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
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/keeldb/keel/pkg/chunk"
	"github.com/keeldb/keel/pkg/common"
	"github.com/keeldb/keel/pkg/util"
)

// NotFoundSentinel is written for a needle row past every haystack row when
// SearchOptions.UseHaystackLength is off; the row's validity bit is cleared
// as well.
const NotFoundSentinel = ^uint64(0)

// searchShardRows is the needle-row shard size for parallel resolution. It
// must stay a multiple of the bitmap entry width so shards never write the
// same mask entry.
const searchShardRows = 1024

// MultiSearch locates, for every needle row, its bound in the sorted
// haystack under the multi-column row ordering: the first haystack row not
// less than the needle, or with FindFirstGreater the first strictly greater
// one. The haystack must already be sorted ascending with the same null
// placement the options name. The result column is UBIGINT with one row per
// needle row.
//
// A needle past every haystack row resolves to the haystack row count when
// UseHaystackLength is set, otherwise to NotFoundSentinel with the result
// row nulled out.
func MultiSearch(result *chunk.Vector, haystack, needle *chunk.Table, opts SearchOptions) error {
	if result == nil {
		return fmt.Errorf("%w: nil result column", ErrDatasetEmpty)
	}
	if err := validateTablePair(needle, haystack); err != nil {
		return err
	}
	if result.Typ().Id != common.LTID_UBIGINT {
		return fmt.Errorf("%w: result column must be UBIGINT, got %v",
			ErrUnsupportedType, result.Typ().Id)
	}
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	needleCount := needle.Card()
	if len(resData) < needleCount {
		return fmt.Errorf("%w: result holds %d rows, need %d",
			ErrColumnSizeMismatch, len(resData), needleCount)
	}

	nullOrder := OBNT_NULLS_FIRST
	if !opts.NullsFirst {
		nullOrder = OBNT_NULLS_LAST
	}
	needleVsHay, err := NewRowOrder(needle, haystack, nil, nullOrder)
	if err != nil {
		return err
	}
	hayVsNeedle, err := NewRowOrder(haystack, needle, nil, nullOrder)
	if err != nil {
		return err
	}

	resMask := chunk.GetMaskInPhyFormatFlat(result)
	if opts.UseHaystackLength {
		resMask.Reset()
	} else {
		resMask.SetAllValid(needleCount)
	}

	hayCount := haystack.Card()
	util.Debug("multisearch",
		zap.Int("needleRows", needleCount),
		zap.Int("haystackRows", hayCount),
		zap.Int("columns", haystack.ColumnCount()))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for begin := 0; begin < needleCount; begin += searchShardRows {
		begin := begin
		end := min(begin+searchShardRows, needleCount)
		g.Go(func() error {
			for n := begin; n < end; n++ {
				idx := searchRow(needleVsHay, hayVsNeedle, n, hayCount, opts.FindFirstGreater)
				if idx == hayCount && !opts.UseHaystackLength {
					resData[n] = NotFoundSentinel
					resMask.SetInvalidUnsafe(uint64(n))
					continue
				}
				resData[n] = uint64(idx)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// searchRow binary-searches one needle row. Lower bound keeps the first
// haystack row h with !(haystack[h] < needle); upper bound keeps the first
// with needle < haystack[h].
func searchRow(needleVsHay, hayVsNeedle *RowOrder, n, hayCount int, upper bool) int {
	lo, hi := 0, hayCount
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		var keep bool
		if upper {
			keep = needleVsHay.Less(n, mid)
		} else {
			keep = !hayVsNeedle.Less(mid, n)
		}
		if keep {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
