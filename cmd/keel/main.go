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
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/keeldb/keel/pkg/util"
)

var keelCfg = &util.Config{}

var info = "keel row ordering kernel"
var RootCmd = &cobra.Command{
	Use:          "keel",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use keel --help or -h")
	},
}

func init() {
	cobra.OnInitialize(loadConfig)
	initSortCmd()
	initSearchCmd()
}

var sortOpts struct {
	keys  []int
	desc  []int
	nulls string
}

var sortInfo = "print the permutation that sorts the input rows"
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: sortInfo,
	Long:  sortInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initDebugOptions()
		return runSort(keelCfg)
	},
}

func initSortCmd() {
	RootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVar(&keelCfg.Input.Path, "input", "", "input parquet file")
	sortCmd.Flags().IntSliceVar(&sortOpts.keys, "keys", nil, "key column indexes, comparison order")
	sortCmd.Flags().IntSliceVar(&sortOpts.desc, "desc", nil, "positions in --keys sorted descending")
	sortCmd.Flags().StringVar(&sortOpts.nulls, "nulls", "first", "null placement. first, last")

	viper.BindPFlag("input.path", sortCmd.Flags().Lookup("input"))
}

var searchOpts struct {
	haystackPath string
	keys         []int
	firstGreater bool
	nulls        string
	useLength    bool
}

var searchInfo = "binary-search needle rows in a sorted haystack"
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: searchInfo,
	Long:  searchInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initDebugOptions()
		return runSearch(keelCfg)
	},
}

func initSearchCmd() {
	RootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchOpts.haystackPath, "haystack", "", "sorted haystack parquet file")
	searchCmd.Flags().StringVar(&keelCfg.Input.Path, "needle", "", "needle parquet file")
	searchCmd.Flags().IntSliceVar(&searchOpts.keys, "keys", nil, "key column indexes, comparison order")
	searchCmd.Flags().BoolVar(&searchOpts.firstGreater, "first-greater", false, "find the first row strictly greater instead of the first not less")
	searchCmd.Flags().StringVar(&searchOpts.nulls, "nulls", "first", "null placement the haystack was sorted with. first, last")
	searchCmd.Flags().BoolVar(&searchOpts.useLength, "use-length", false, "report the haystack row count for needles past every row")

	viper.BindPFlag("input.path", searchCmd.Flags().Lookup("needle"))
}

func initDebugOptions() {
	if viper.IsSet("debug.printResult") {
		keelCfg.Debug.PrintResult = viper.GetBool("debug.printResult")
	}
	if viper.IsSet("debug.maxOutputRowCount") {
		keelCfg.Debug.MaxOutputRowCount = viper.GetInt("debug.maxOutputRowCount")
	}
	if viper.IsSet("input.path") {
		keelCfg.Input.Path = viper.GetString("input.path")
	}
}

var defCfgFilePaths = []string{".", "etc/keel"}
var cfgFileName = "keel.toml"

// loadConfig decodes keel.toml when one is present; flags and KEEL_*
// environment variables override it. Missing config is fine, everything has
// a flag.
func loadConfig() {
	viper.SetEnvPrefix("keel")
	viper.AutomaticEnv()
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			if _, err := toml.DecodeFile(fpath, keelCfg); err != nil {
				util.Error("decode config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			viper.SetConfigFile(fpath)
			if err := viper.ReadInConfig(); err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
			}
			break
		}
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
