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

package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDictDenseKeyOrder(t *testing.T) {
	dict := NewCategoryDict([]string{"pear", "apple", "pear", "fig"})
	assert.Equal(t, 3, dict.KeyCount())
	assert.Equal(t, []string{"apple", "fig", "pear"}, dict.Keys())

	idx, has := dict.IndexOf("fig")
	require.True(t, has)
	assert.Equal(t, int32(1), idx)
	_, has = dict.IndexOf("grape")
	assert.False(t, has)

	assert.Equal(t, "apple", dict.Key(0))
	assert.Equal(t, "pear", dict.Key(2))
}

func TestEncode(t *testing.T) {
	dict, indices := Encode([]string{"b", "a", "b"})
	assert.Equal(t, []string{"a", "b"}, dict.Keys())
	assert.Equal(t, []int32{1, 0, 1}, indices)
}

func TestGatherDropsUnreferencedKeys(t *testing.T) {
	dict, _ := Encode([]string{"a", "b", "c"})
	// only "c" and "a" referenced
	gathered, indices := dict.Gather([]int32{2, 0, 2})
	assert.Equal(t, []string{"a", "c"}, gathered.Keys())
	assert.Equal(t, []int32{1, 0, 1}, indices)
}

func TestMergeAndRemap(t *testing.T) {
	left, _ := Encode([]string{"b", "d"})
	right, _ := Encode([]string{"a", "b"})
	merged, remapL, remapR := left.MergeAndRemap(right)

	assert.Equal(t, []string{"a", "b", "d"}, merged.Keys())
	assert.Equal(t, []int32{1, 2}, remapL)
	assert.Equal(t, []int32{0, 1}, remapR)
}

func TestNewCategoryFlatVector(t *testing.T) {
	vec := NewCategoryFlatVector([]string{"y", "x", "y"}, 3)
	require.NotNil(t, vec.Cat)
	data := GetSliceInPhyFormatFlat[int32](vec)
	assert.Equal(t, []int32{1, 0, 1}, data[:3])
	assert.Equal(t, "x", vec.Cat.Key(0))
}
