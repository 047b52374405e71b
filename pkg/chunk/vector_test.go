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

	"github.com/keeldb/keel/pkg/common"
)

func TestVectorGetSetValue(t *testing.T) {
	vec := NewFlatVector(common.BigintType(), 4)
	vec.SetValue(0, &Value{Typ: common.BigintType(), I64: -7})
	vec.SetValue(1, &Value{Typ: common.BigintType(), IsNull: true})

	v0 := vec.GetValue(0)
	require.False(t, v0.IsNull)
	assert.Equal(t, int64(-7), v0.I64)

	v1 := vec.GetValue(1)
	assert.True(t, v1.IsNull)
}

func TestVectorVarchar(t *testing.T) {
	vec := NewVarcharFlatVector([]string{"hello", ""}, 2)
	defer FreeVarchar(vec, 2)
	assert.Equal(t, "hello", vec.GetValue(0).Str)
	assert.Equal(t, "", vec.GetValue(1).Str)
}

func TestSetNullPastDefaultVectorSize(t *testing.T) {
	// columns larger than the default vector size still accept nulls at any
	// row; the lazily materialized mask grows to cover the row
	vec := NewFlatVector(common.IntegerType(), 5000)
	SetNullInPhyFormatFlat(vec, 4000, true)
	assert.False(t, vec.Mask.RowIsValid(4000))
	assert.True(t, vec.Mask.RowIsValid(3999))
	assert.True(t, vec.Mask.RowIsValid(4999))

	vec.SetValue(4500, &Value{Typ: common.IntegerType(), IsNull: true})
	assert.True(t, vec.GetValue(4500).IsNull)
	assert.True(t, vec.GetValue(4000).IsNull)
}

func TestVectorReference(t *testing.T) {
	src := NewInt32FlatVector([]int32{9, 8}, 2)
	dst := NewFlatVector(common.IntegerType(), 2)
	dst.Reference(src)
	assert.Equal(t, int64(9), dst.GetValue(0).I64)

	// a write through the source is visible in the view
	src.SetValue(0, &Value{Typ: common.IntegerType(), I64: 5})
	assert.Equal(t, int64(5), dst.GetValue(0).I64)
}

func TestConstVector(t *testing.T) {
	vec := NewConstVector(common.IntegerType())
	vec.SetValue(0, &Value{Typ: common.IntegerType(), I64: 42})
	assert.Equal(t, int64(42), vec.GetValue(0).I64)
	assert.Equal(t, int64(42), vec.GetValue(7).I64)
}

func TestHasNull(t *testing.T) {
	vec := NewInt32FlatVector([]int32{1, 2, 3}, 3)
	assert.False(t, HasNull(vec, 3))
	SetNullInPhyFormatFlat(vec, 2, true)
	assert.True(t, HasNull(vec, 3))
	assert.False(t, HasNull(vec, 2))
}
