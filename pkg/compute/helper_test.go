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
	"github.com/keeldb/keel/pkg/common"
)

func int32Col(vals []int32, nullRows ...int) *chunk.Vector {
	vec := chunk.NewInt32FlatVector(vals, len(vals))
	for _, i := range nullRows {
		chunk.SetNullInPhyFormatFlat(vec, uint64(i), true)
	}
	return vec
}

func float64Col(vals []float64, nullRows ...int) *chunk.Vector {
	vec := chunk.NewFloat64FlatVector(vals, len(vals))
	for _, i := range nullRows {
		chunk.SetNullInPhyFormatFlat(vec, uint64(i), true)
	}
	return vec
}

func varcharCol(vals []string, nullRows ...int) *chunk.Vector {
	vec := chunk.NewVarcharFlatVector(vals, len(vals))
	for _, i := range nullRows {
		chunk.SetNullInPhyFormatFlat(vec, uint64(i), true)
	}
	return vec
}

func tableOf(count int, cols ...*chunk.Vector) *chunk.Table {
	return chunk.NewTable(cols, count)
}

func ubigintResult(rows int) *chunk.Vector {
	return chunk.NewFlatVector(common.UbigintType(), rows)
}
