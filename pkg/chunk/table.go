package chunk

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/keeldb/keel/pkg/util"
)

// Table is a borrowed, read-only view over an ordered set of columns that
// share one row count. Column order is the multi-key comparison order. A
// Table never owns column storage; it must not outlive the vectors it
// references.
type Table struct {
	Cols  []*Vector
	Count int
}

func NewTable(cols []*Vector, count int) *Table {
	util.AssertFunc(len(cols) > 0)
	return &Table{
		Cols:  cols,
		Count: count,
	}
}

func (tab *Table) Column(j int) *Vector {
	return tab.Cols[j]
}

func (tab *Table) ColumnCount() int {
	return len(tab.Cols)
}

// Card is the shared row count.
func (tab *Table) Card() int {
	return tab.Count
}

// HasNulls reports whether any column carries validity storage. Computed
// per table, not per row; comparators use it to pick the null-aware path.
func (tab *Table) HasNulls() bool {
	for _, col := range tab.Cols {
		if col.Mask.IsMaskSet() {
			return true
		}
	}
	return false
}

// Describe renders the table schema as a tree. Diagnostic output only.
func (tab *Table) Describe() string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("table rows=%d", tab.Count))
	for j, col := range tab.Cols {
		label := fmt.Sprintf("col %d %v", j, col.Typ().Id)
		if col.Mask.IsMaskSet() {
			label += fmt.Sprintf(" nulls=%d",
				tab.Count-col.Mask.CountValid(tab.Count))
		}
		tree.AddNode(label)
	}
	return tree.String()
}
