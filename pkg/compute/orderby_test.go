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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeldb/keel/pkg/chunk"
)

func TestOrderBySingleColumn(t *testing.T) {
	tab := tableOf(5, int32Col([]int32{30, 10, 50, 20, 40}))
	result := ubigintResult(5)

	err := OrderBy(tab, nil, result, 5, nil)
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, []uint64{1, 3, 0, 4, 2}, resData[:5])
}

func TestOrderByTieBreakSecondColumn(t *testing.T) {
	tab := tableOf(4,
		int32Col([]int32{1, 1, 0, 1}),
		int32Col([]int32{9, 2, 7, 5}),
	)
	result := ubigintResult(4)

	err := OrderBy(tab, nil, result, 4, nil)
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, []uint64{2, 1, 3, 0}, resData[:4])
}

func TestOrderByDescending(t *testing.T) {
	tab := tableOf(3, int32Col([]int32{10, 30, 20}))
	result := ubigintResult(3)

	err := OrderBy(tab, []OrderType{OT_DESC}, result, 3, nil)
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, []uint64{1, 2, 0}, resData[:3])
}

func TestOrderByNullPlacement(t *testing.T) {
	// row 2 is null
	build := func() (*chunk.Table, *chunk.Vector) {
		return tableOf(4, int32Col([]int32{7, 3, 0, 5}, 2)), ubigintResult(4)
	}

	t.Run("nulls first", func(t *testing.T) {
		tab, result := build()
		err := OrderBy(tab, nil, result, 4, &OrderContext{NullOrder: OBNT_NULLS_FIRST})
		require.NoError(t, err)
		resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
		assert.Equal(t, []uint64{2, 1, 3, 0}, resData[:4])
	})

	t.Run("nulls last", func(t *testing.T) {
		tab, result := build()
		err := OrderBy(tab, nil, result, 4, &OrderContext{NullOrder: OBNT_NULLS_LAST})
		require.NoError(t, err)
		resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
		assert.Equal(t, []uint64{1, 3, 0, 2}, resData[:4])
	})
}

// equal rows keep their input order
func TestOrderByDeterministicTies(t *testing.T) {
	tab := tableOf(5, int32Col([]int32{1, 1, 1, 0, 1}))
	result := ubigintResult(5)

	err := OrderBy(tab, nil, result, 5, nil)
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, []uint64{3, 0, 1, 2, 4}, resData[:5])
}

// large enough to cross the shard threshold and exercise the merge
func TestOrderByLarge(t *testing.T) {
	n := 3 * minShardRows
	rng := rand.New(rand.NewSource(42))
	vals := make([]int32, n)
	for i := range vals {
		vals[i] = int32(rng.Intn(1000))
	}
	tab := tableOf(n, int32Col(vals))
	result := ubigintResult(n)

	err := OrderBy(tab, nil, result, n, nil)
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)

	seen := make([]bool, n)
	for k := 0; k < n; k++ {
		row := resData[k]
		require.Less(t, row, uint64(n))
		require.False(t, seen[row], "row %d emitted twice", row)
		seen[row] = true
		if k > 0 {
			prev, cur := resData[k-1], resData[k]
			require.LessOrEqual(t, vals[prev], vals[cur])
			if vals[prev] == vals[cur] {
				require.Less(t, prev, cur, "tie at rank %d not in input order", k)
			}
		}
	}
}

func TestOrderByValidation(t *testing.T) {
	tab := tableOf(2, int32Col([]int32{1, 2}))

	t.Run("nil result", func(t *testing.T) {
		err := OrderBy(tab, nil, nil, 2, nil)
		require.ErrorIs(t, err, ErrDatasetEmpty)
	})

	t.Run("zero columns", func(t *testing.T) {
		err := OrderBy(&chunk.Table{}, nil, ubigintResult(2), 0, nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("result count mismatch", func(t *testing.T) {
		err := OrderBy(tab, nil, ubigintResult(2), 3, nil)
		require.ErrorIs(t, err, ErrColumnSizeMismatch)
	})

	t.Run("orders length mismatch", func(t *testing.T) {
		err := OrderBy(tab, []OrderType{OT_ASC, OT_DESC}, ubigintResult(2), 2, nil)
		require.ErrorIs(t, err, ErrColumnCountMismatch)
	})
}

func TestOrderSpecClone(t *testing.T) {
	spec := &OrderSpec{
		Orders:    []OrderType{OT_ASC, OT_DESC},
		NullOrder: OBNT_NULLS_LAST,
	}
	cp := spec.Clone()
	cp.Orders[0] = OT_DESC
	assert.Equal(t, OT_ASC, spec.Orders[0])
	assert.Equal(t, OBNT_NULLS_LAST, cp.NullOrder)
}
