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
	"sort"

	"github.com/liyue201/gostl/ds/priorityqueue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/keeldb/keel/pkg/chunk"
	"github.com/keeldb/keel/pkg/common"
	"github.com/keeldb/keel/pkg/util"
)

// minShardRows keeps tiny inputs on a single shard; the merge overhead is
// not worth it below this.
const minShardRows = 4096

// OrderBy fills the result UBIGINT column with the permutation that sorts
// the input rows under the multi-column comparator: result[k] is the input
// row index holding rank k. Equal rows keep their input order, so the
// output is deterministic. ctx may be nil; the default places nulls first.
func OrderBy(input *chunk.Table, orders []OrderType, result *chunk.Vector, resultCount int, ctx *OrderContext) error {
	if result == nil {
		return fmt.Errorf("%w: nil result column", ErrDatasetEmpty)
	}
	ord, err := NewRowOrder(input, input, orders, orderCtxNulls(ctx))
	if err != nil {
		return err
	}
	if result.Typ().Id != common.LTID_UBIGINT {
		return fmt.Errorf("%w: result column must be UBIGINT, got %v",
			ErrUnsupportedType, result.Typ().Id)
	}
	if resultCount != input.Card() {
		return fmt.Errorf("%w: result rows %d, input rows %d",
			ErrColumnSizeMismatch, resultCount, input.Card())
	}
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	if len(resData) < resultCount {
		return fmt.Errorf("%w: result holds %d rows, need %d",
			ErrColumnSizeMismatch, len(resData), resultCount)
	}

	// row-index tie-break keeps equal rows in input order
	lessRow := func(a, b uint64) bool {
		switch ord.compare(int(a), int(b)) {
		case orderLess:
			return true
		case orderGreater:
			return false
		default:
			return a < b
		}
	}

	n := input.Card()
	shards := shardRowIndexes(n)
	util.Debug("orderby",
		zap.Int("rows", n),
		zap.Int("columns", input.ColumnCount()),
		zap.Int("shards", len(shards)))
	g := new(errgroup.Group)
	for s := range shards {
		sh := shards[s]
		g.Go(func() error {
			sort.Slice(sh, func(i, j int) bool {
				return lessRow(sh[i], sh[j])
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if len(shards) == 1 {
		copy(resData, shards[0])
		return nil
	}
	mergeShards(resData[:n], shards, lessRow)
	return nil
}

func orderCtxNulls(ctx *OrderContext) OrderByNullType {
	if ctx == nil {
		return OBNT_NULLS_FIRST
	}
	return ctx.NullOrder
}

func shardRowIndexes(n int) [][]uint64 {
	numShards := runtime.NumCPU()
	if n < 2*minShardRows || numShards < 2 {
		numShards = 1
	}
	shardSize := (n + numShards - 1) / numShards
	shards := make([][]uint64, 0, numShards)
	for begin := 0; begin < n; begin += shardSize {
		end := min(begin+shardSize, n)
		sh := make([]uint64, 0, end-begin)
		for i := begin; i < end; i++ {
			sh = append(sh, uint64(i))
		}
		shards = append(shards, sh)
	}
	if len(shards) == 0 {
		shards = append(shards, []uint64{})
	}
	return shards
}

type mergeHead struct {
	row   uint64
	shard int
}

// mergeShards k-way merges the sorted shards. The queue pops its largest
// element under the comparator, so the comparator ranks the smaller row
// higher.
func mergeShards(out []uint64, shards [][]uint64, lessRow func(a, b uint64) bool) {
	cursors := make([]int, len(shards))
	cmp := func(a, b mergeHead) int {
		if lessRow(a.row, b.row) {
			return 1
		}
		if lessRow(b.row, a.row) {
			return -1
		}
		return 0
	}
	pq := priorityqueue.New[mergeHead](cmp)
	for s, sh := range shards {
		if len(sh) > 0 {
			pq.Push(mergeHead{row: sh[0], shard: s})
			cursors[s] = 1
		}
	}
	k := 0
	for !pq.Empty() {
		head := pq.Pop()
		out[k] = head.row
		k++
		s := head.shard
		if cursors[s] < len(shards[s]) {
			pq.Push(mergeHead{row: shards[s][cursors[s]], shard: s})
			cursors[s]++
		}
	}
}
