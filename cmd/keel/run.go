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
	"strings"

	"go.uber.org/zap"

	"github.com/keeldb/keel/pkg/chunk"
	"github.com/keeldb/keel/pkg/common"
	"github.com/keeldb/keel/pkg/compute"
	"github.com/keeldb/keel/pkg/util"
)

func parseNullOrder(s string) (compute.OrderByNullType, error) {
	switch s {
	case "first", "":
		return compute.OBNT_NULLS_FIRST, nil
	case "last":
		return compute.OBNT_NULLS_LAST, nil
	default:
		return compute.OBNT_INVALID, fmt.Errorf("unknown null placement %q", s)
	}
}

func buildOrderSpec(keyCount int, descPositions []int, nulls string) (*compute.OrderSpec, error) {
	nullOrder, err := parseNullOrder(nulls)
	if err != nil {
		return nil, err
	}
	spec := &compute.OrderSpec{
		Orders:    make([]compute.OrderType, keyCount),
		NullOrder: nullOrder,
	}
	for j := range spec.Orders {
		spec.Orders[j] = compute.OT_ASC
	}
	for _, p := range descPositions {
		if p < 0 || p >= keyCount {
			return nil, fmt.Errorf("--desc position %d out of range, have %d keys", p, keyCount)
		}
		spec.Orders[p] = compute.OT_DESC
	}
	return spec, nil
}

func outputCap(cfg *util.Config, rows int) int {
	if cfg.Debug.MaxOutputRowCount > 0 && cfg.Debug.MaxOutputRowCount < rows {
		return cfg.Debug.MaxOutputRowCount
	}
	return rows
}

func printRow(tab *chunk.Table, row int) string {
	parts := make([]string, 0, tab.ColumnCount())
	for j := 0; j < tab.ColumnCount(); j++ {
		parts = append(parts, tab.Column(j).GetValue(row).String())
	}
	return strings.Join(parts, ", ")
}

func runSort(cfg *util.Config) error {
	if cfg.Input.Path == "" {
		return fmt.Errorf("sort needs --input")
	}
	if len(sortOpts.keys) == 0 {
		return fmt.Errorf("sort needs --keys")
	}
	spec, err := buildOrderSpec(len(sortOpts.keys), sortOpts.desc, sortOpts.nulls)
	if err != nil {
		return err
	}

	tab, err := loadParquetTable(cfg.Input.Path, sortOpts.keys)
	if err != nil {
		return err
	}
	util.Info("loaded input",
		zap.String("path", cfg.Input.Path),
		zap.Int("rows", tab.Card()),
		zap.Int("keys", tab.ColumnCount()))
	fmt.Print(tab.Describe())

	result := chunk.NewFlatVector(common.UbigintType(), tab.Card())
	err = compute.OrderBy(tab, spec.Orders, result, tab.Card(),
		&compute.OrderContext{NullOrder: spec.NullOrder})
	if err != nil {
		return err
	}

	if cfg.Debug.PrintResult {
		result.Print2("permutation", outputCap(cfg, tab.Card()))
	}
	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	for k := 0; k < outputCap(cfg, tab.Card()); k++ {
		if cfg.Debug.PrintResult {
			fmt.Printf("%d\t%s\n", resData[k], printRow(tab, int(resData[k])))
		} else {
			fmt.Println(resData[k])
		}
	}
	return nil
}

func runSearch(cfg *util.Config) error {
	if searchOpts.haystackPath == "" || cfg.Input.Path == "" {
		return fmt.Errorf("search needs --haystack and --needle")
	}
	if len(searchOpts.keys) == 0 {
		return fmt.Errorf("search needs --keys")
	}
	nullOrder, err := parseNullOrder(searchOpts.nulls)
	if err != nil {
		return err
	}

	haystack, err := loadParquetTable(searchOpts.haystackPath, searchOpts.keys)
	if err != nil {
		return err
	}
	needle, err := loadParquetTable(cfg.Input.Path, searchOpts.keys)
	if err != nil {
		return err
	}
	util.Info("loaded tables",
		zap.Int("haystackRows", haystack.Card()),
		zap.Int("needleRows", needle.Card()))

	result := chunk.NewFlatVector(common.UbigintType(), needle.Card())
	err = compute.MultiSearch(result, haystack, needle, compute.SearchOptions{
		FindFirstGreater:  searchOpts.firstGreater,
		NullsFirst:        nullOrder == compute.OBNT_NULLS_FIRST,
		UseHaystackLength: searchOpts.useLength,
	})
	if err != nil {
		return err
	}

	resData := chunk.GetSliceInPhyFormatFlat[uint64](result)
	for n := 0; n < outputCap(cfg, needle.Card()); n++ {
		pos := fmt.Sprintf("%d", resData[n])
		if !result.Mask.RowIsValid(uint64(n)) {
			pos = "not found"
		}
		if cfg.Debug.PrintResult {
			fmt.Printf("%s\t%s\n", pos, printRow(needle, n))
		} else {
			fmt.Println(pos)
		}
	}
	return nil
}
