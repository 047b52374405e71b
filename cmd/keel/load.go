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

package main

import (
	"fmt"

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"

	"github.com/keeldb/keel/pkg/chunk"
	"github.com/keeldb/keel/pkg/common"
)

// loadParquetTable reads the given leaf columns of a parquet file into a
// table. Element types are inferred from the first non-null value of each
// column; a column with no values at all loads as varchar.
func loadParquetTable(path string, colIndice []int) (*chunk.Table, error) {
	pqFile, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer pqFile.Close()

	rd, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, err
	}
	defer rd.ReadStop()

	rowCount := int(rd.GetNumRows())
	cols := make([]*chunk.Vector, 0, len(colIndice))
	for _, idx := range colIndice {
		values, _, _, err := rd.ReadColumnByIndex(int64(idx), int64(rowCount))
		if err != nil {
			return nil, fmt.Errorf("read column %d of %s: %w", idx, path, err)
		}
		if len(values) != rowCount {
			return nil, fmt.Errorf("column %d of %s has %d values, want %d",
				idx, path, len(values), rowCount)
		}
		vec, err := columnFromValues(values, rowCount)
		if err != nil {
			return nil, fmt.Errorf("column %d of %s: %w", idx, path, err)
		}
		cols = append(cols, vec)
	}
	return chunk.NewTable(cols, rowCount), nil
}

func columnFromValues(values []interface{}, rowCount int) (*chunk.Vector, error) {
	vec := chunk.NewFlatVector(inferType(values), rowCount)
	for i, v := range values {
		if v == nil {
			chunk.SetNullInPhyFormatFlat(vec, uint64(i), true)
			continue
		}
		val, err := parquetColToValue(v, vec.Typ())
		if err != nil {
			return nil, err
		}
		vec.SetValue(i, val)
	}
	return vec, nil
}

func inferType(values []interface{}) common.LType {
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case bool:
			return common.BooleanType()
		case int32:
			return common.IntegerType()
		case int64:
			return common.BigintType()
		case float32:
			return common.FloatType()
		case float64:
			return common.DoubleType()
		default:
			return common.VarcharType()
		}
	}
	return common.VarcharType()
}

func parquetColToValue(v interface{}, lTyp common.LType) (*chunk.Value, error) {
	val := &chunk.Value{Typ: lTyp}
	switch t := v.(type) {
	case bool:
		val.Bool = t
	case int32:
		val.I64 = int64(t)
	case int64:
		val.I64 = t
	case float32:
		val.F64 = float64(t)
	case float64:
		val.F64 = t
	case string:
		val.Str = t
	case []byte:
		val.Str = string(t)
	default:
		return nil, fmt.Errorf("unsupported parquet value %T", v)
	}
	return val, nil
}
