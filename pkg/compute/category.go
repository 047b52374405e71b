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

func validateCategoryColumn(vec *chunk.Vector, what string, j int) error {
	if vec == nil {
		return fmt.Errorf("%w: nil %s column %d", ErrDatasetEmpty, what, j)
	}
	if !vec.Typ().IsStringCategory() {
		return fmt.Errorf("%w: %s column %d is %v, want string category",
			ErrUnsupportedType, what, j, vec.Typ().Id)
	}
	return nil
}

// mergedDict folds the dictionaries of all inputs into one shared
// dictionary and returns, per input, the remap table from its old indexes
// onto the merged one.
func mergedDict(inputs []*chunk.Vector) (*chunk.CategoryDict, [][]int32) {
	keys := make([]string, 0)
	for _, in := range inputs {
		if in.Cat != nil {
			keys = append(keys, in.Cat.Keys()...)
		}
	}
	merged := chunk.NewCategoryDict(keys)
	remaps := make([][]int32, len(inputs))
	for i, in := range inputs {
		if in.Cat == nil {
			continue
		}
		tbl := make([]int32, in.Cat.KeyCount())
		for k, key := range in.Cat.Keys() {
			idx, has := merged.IndexOf(key)
			if !has {
				panic("usp")
			}
			tbl[k] = idx
		}
		remaps[i] = tbl
	}
	return merged, remaps
}

// ConcatCategories stacks the input category columns into the output column
// under one merged dictionary. counts holds the row count of each input;
// rows land in the output in input order. Null rows stay null and their
// index payload is not interpreted.
func ConcatCategories(inputs []*chunk.Vector, counts []int, output *chunk.Vector) error {
	if len(inputs) == 0 || output == nil {
		return fmt.Errorf("%w: no input columns", ErrDatasetEmpty)
	}
	if len(counts) != len(inputs) {
		return fmt.Errorf("%w: %d counts for %d columns",
			ErrColumnCountMismatch, len(counts), len(inputs))
	}
	total := 0
	for j, in := range inputs {
		if err := validateCategoryColumn(in, "input", j); err != nil {
			return err
		}
		total += counts[j]
	}
	if err := validateCategoryColumn(output, "output", 0); err != nil {
		return err
	}
	outData := chunk.GetSliceInPhyFormatFlat[int32](output)
	if len(outData) < total {
		return fmt.Errorf("%w: output holds %d rows, need %d",
			ErrColumnSizeMismatch, len(outData), total)
	}

	merged, remaps := mergedDict(inputs)
	for _, in := range inputs {
		if in.Mask.IsMaskSet() {
			output.Mask.SetAllValid(total)
			break
		}
	}
	at := 0
	for j, in := range inputs {
		inData := chunk.GetSliceInPhyFormatFlat[int32](in)
		for i := 0; i < counts[j]; i++ {
			if !in.Mask.RowIsValid(uint64(i)) {
				output.Mask.SetInvalidUnsafe(uint64(at))
				at++
				continue
			}
			outData[at] = remaps[j][inData[i]]
			at++
		}
	}
	output.Cat = merged
	return nil
}

// SyncColumnCategories rewrites each input category column onto one shared
// dictionary, writing the remapped indexes into the corresponding output
// column. After the sync, indexes of any two output columns compare the way
// their keys do, so synced category columns order by index.
func SyncColumnCategories(inputs, outputs []*chunk.Vector, counts []int) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no input columns", ErrDatasetEmpty)
	}
	if len(outputs) != len(inputs) || len(counts) != len(inputs) {
		return fmt.Errorf("%w: %d inputs, %d outputs, %d counts",
			ErrColumnCountMismatch, len(inputs), len(outputs), len(counts))
	}
	for j := range inputs {
		if err := validateCategoryColumn(inputs[j], "input", j); err != nil {
			return err
		}
		if err := validateCategoryColumn(outputs[j], "output", j); err != nil {
			return err
		}
	}
	for j := range inputs {
		outData := chunk.GetSliceInPhyFormatFlat[int32](outputs[j])
		if len(outData) < counts[j] {
			return fmt.Errorf("%w: output column %d holds %d rows, need %d",
				ErrColumnSizeMismatch, j, len(outData), counts[j])
		}
	}

	merged, remaps := mergedDict(inputs)
	for j, in := range inputs {
		inData := chunk.GetSliceInPhyFormatFlat[int32](in)
		outData := chunk.GetSliceInPhyFormatFlat[int32](outputs[j])
		if in.Mask.IsMaskSet() {
			outputs[j].Mask.SetAllValid(counts[j])
		}
		for i := 0; i < counts[j]; i++ {
			if !in.Mask.RowIsValid(uint64(i)) {
				outputs[j].Mask.SetInvalidUnsafe(uint64(i))
				continue
			}
			outData[i] = remaps[j][inData[i]]
		}
		outputs[j].Cat = merged
	}
	return nil
}
