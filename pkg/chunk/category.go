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
	"github.com/tidwall/btree"

	"github.com/keeldb/keel/pkg/common"
	"github.com/keeldb/keel/pkg/util"
)

type catItem struct {
	key string
	idx int32
}

func catItemLess(a, b catItem) bool {
	return a.key < b.key
}

// CategoryDict maps category keys to dense int32 indexes assigned in key
// order, so comparing indexes of one dictionary compares keys. Category
// columns from different dictionaries must be remapped onto a shared
// dictionary before their indexes are comparable.
type CategoryDict struct {
	tree *btree.BTreeG[catItem]
	keys []string
}

// dictLock guards dictionary rebuilds: synced dictionaries are shared
// between columns, and a rebuild may recurse into another rebuild.
var dictLock = util.NewReentryLock()

func NewCategoryDict(keys []string) *CategoryDict {
	dictLock.Lock()
	defer dictLock.Unlock()

	tree := btree.NewBTreeG[catItem](catItemLess)
	for _, k := range keys {
		tree.Set(catItem{key: k})
	}
	dict := &CategoryDict{
		tree: tree,
		keys: make([]string, 0, tree.Len()),
	}
	// dense indexes in key order
	idx := int32(0)
	tree.Scan(func(item catItem) bool {
		dict.keys = append(dict.keys, item.key)
		return true
	})
	for _, k := range dict.keys {
		dict.tree.Set(catItem{key: k, idx: idx})
		idx++
	}
	return dict
}

func (dict *CategoryDict) KeyCount() int {
	return len(dict.keys)
}

func (dict *CategoryDict) Key(idx int32) string {
	util.AssertFunc(idx >= 0 && int(idx) < len(dict.keys))
	return dict.keys[idx]
}

func (dict *CategoryDict) IndexOf(key string) (int32, bool) {
	item, has := dict.tree.Get(catItem{key: key})
	if !has {
		return 0, false
	}
	return item.idx, true
}

func (dict *CategoryDict) Keys() []string {
	return dict.keys
}

// Encode builds a dictionary from the given values and returns it together
// with the per-value indexes.
func Encode(values []string) (*CategoryDict, []int32) {
	dict := NewCategoryDict(values)
	indices := make([]int32, len(values))
	for i, v := range values {
		idx, has := dict.IndexOf(v)
		util.AssertFunc(has)
		indices[i] = idx
	}
	return dict, indices
}

// Gather builds a dictionary holding only the keys referenced by indices
// and rewrites indices onto it, mirroring a dictionary gather.
func (dict *CategoryDict) Gather(indices []int32) (*CategoryDict, []int32) {
	used := make([]string, 0, len(indices))
	for _, idx := range indices {
		used = append(used, dict.Key(idx))
	}
	return Encode(used)
}

// MergeAndRemap merges two dictionaries into one shared dictionary and
// returns the remap tables from each source dictionary's indexes onto the
// merged one.
func (dict *CategoryDict) MergeAndRemap(other *CategoryDict) (*CategoryDict, []int32, []int32) {
	all := make([]string, 0, len(dict.keys)+len(other.keys))
	all = append(all, dict.keys...)
	all = append(all, other.keys...)
	merged := NewCategoryDict(all)

	remap := func(src *CategoryDict) []int32 {
		tbl := make([]int32, len(src.keys))
		for i, k := range src.keys {
			idx, has := merged.IndexOf(k)
			util.AssertFunc(has)
			tbl[i] = idx
		}
		return tbl
	}
	return merged, remap(dict), remap(other)
}

// NewCategoryFlatVector builds a string-category column: dense indexes plus
// the dictionary that decodes them.
func NewCategoryFlatVector(values []string, sz int) *Vector {
	dict, indices := Encode(values)
	vec := NewFlatVector(common.StringCategoryType(), sz)
	data := GetSliceInPhyFormatFlat[int32](vec)
	copy(data, indices)
	vec.Cat = dict
	return vec
}
