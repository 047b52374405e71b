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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeldb/keel/pkg/chunk"
)

func TestMultiSearchFirstGreater(t *testing.T) {
	haystack := tableOf(5, int32Col([]int32{10, 20, 30, 40, 50}))
	needle := tableOf(1, int32Col([]int32{20}))
	result := ubigintResult(1)

	err := MultiSearch(result, haystack, needle, SearchOptions{
		FindFirstGreater:  true,
		NullsFirst:        true,
		UseHaystackLength: true,
	})
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, uint64(2), resData[0])
}

func TestMultiSearchLowerBound(t *testing.T) {
	haystack := tableOf(5, int32Col([]int32{10, 20, 20, 40, 50}))
	needle := tableOf(4, int32Col([]int32{5, 20, 25, 60}))
	result := ubigintResult(4)

	err := MultiSearch(result, haystack, needle, SearchOptions{
		NullsFirst:        true,
		UseHaystackLength: true,
	})
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, []uint64{0, 1, 3, 5}, resData[:4])
}

func TestMultiSearchSentinel(t *testing.T) {
	haystack := tableOf(3, int32Col([]int32{1, 2, 3}))
	needle := tableOf(2, int32Col([]int32{2, 99}))
	result := ubigintResult(2)

	err := MultiSearch(result, haystack, needle, SearchOptions{
		NullsFirst: true,
	})
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, uint64(1), resData[0])
	assert.True(t, result.Mask.RowIsValid(0))
	assert.Equal(t, NotFoundSentinel, resData[1])
	assert.False(t, result.Mask.RowIsValid(1))
}

func TestMultiSearchMultiColumn(t *testing.T) {
	// sorted by (c0, c1)
	haystack := tableOf(4,
		int32Col([]int32{1, 1, 2, 2}),
		varcharCol([]string{"a", "c", "a", "b"}),
	)
	needle := tableOf(2,
		int32Col([]int32{1, 2}),
		varcharCol([]string{"b", "b"}),
	)
	result := ubigintResult(2)

	err := MultiSearch(result, haystack, needle, SearchOptions{
		NullsFirst:        true,
		UseHaystackLength: true,
	})
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, []uint64{1, 3}, resData[:2])
}

func TestMultiSearchNullNeedle(t *testing.T) {
	// haystack sorted nulls-first: null, 10, 20
	hay := int32Col([]int32{0, 10, 20}, 0)
	haystack := tableOf(3, hay)
	needle := tableOf(1, int32Col([]int32{0}, 0))
	result := ubigintResult(1)

	err := MultiSearch(result, haystack, needle, SearchOptions{
		NullsFirst:        true,
		UseHaystackLength: true,
	})
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	assert.Equal(t, uint64(0), resData[0])
}

// results over sorted needles must be nondecreasing
func TestMultiSearchMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	hayVals := make([]int32, 200)
	for i := range hayVals {
		hayVals[i] = int32(rng.Intn(500))
	}
	sort.Slice(hayVals, func(i, j int) bool { return hayVals[i] < hayVals[j] })
	needleVals := make([]int32, 64)
	for i := range needleVals {
		needleVals[i] = int32(rng.Intn(600))
	}
	sort.Slice(needleVals, func(i, j int) bool { return needleVals[i] < needleVals[j] })

	haystack := tableOf(len(hayVals), int32Col(hayVals))
	needle := tableOf(len(needleVals), int32Col(needleVals))
	result := ubigintResult(len(needleVals))

	err := MultiSearch(result, haystack, needle, SearchOptions{
		NullsFirst:        true,
		UseHaystackLength: true,
	})
	require.NoError(t, err)
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	for i := 1; i < len(needleVals); i++ {
		assert.LessOrEqual(t, resData[i-1], resData[i])
	}
}

func TestMultiSearchValidation(t *testing.T) {
	haystack := tableOf(2, int32Col([]int32{1, 2}))
	needle := tableOf(1, int32Col([]int32{1}))

	t.Run("nil result", func(t *testing.T) {
		err := MultiSearch(nil, haystack, needle, SearchOptions{})
		require.ErrorIs(t, err, ErrDatasetEmpty)
	})

	t.Run("zero columns", func(t *testing.T) {
		empty := &chunk.Table{}
		err := MultiSearch(ubigintResult(1), haystack, empty, SearchOptions{})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("column count mismatch", func(t *testing.T) {
		wide := tableOf(1, int32Col([]int32{1}), int32Col([]int32{2}))
		err := MultiSearch(ubigintResult(1), haystack, wide, SearchOptions{})
		require.ErrorIs(t, err, ErrColumnCountMismatch)
	})

	t.Run("type mismatch", func(t *testing.T) {
		strs := tableOf(1, varcharCol([]string{"x"}))
		err := MultiSearch(ubigintResult(1), haystack, strs, SearchOptions{})
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("result too small", func(t *testing.T) {
		big := tableOf(3, int32Col([]int32{1, 2, 3}))
		err := MultiSearch(ubigintResult(1), haystack, big, SearchOptions{})
		require.ErrorIs(t, err, ErrColumnSizeMismatch)
	})

	t.Run("result not ubigint", func(t *testing.T) {
		err := MultiSearch(int32Col([]int32{0}), haystack, needle, SearchOptions{})
		require.ErrorIs(t, err, ErrUnsupportedType)
	})
}
