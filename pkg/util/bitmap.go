package util

import (
	"math/bits"
	"strings"
)

// Bitmap is the packed validity mask of a column. One bit per row, packed
// into 32-bit entries, least significant bit first: row i lives in entry
// i/32 at offset i%32. A set bit means the row is valid (non null). A nil
// Bits slice means every row is valid. Bits past the row count are
// unspecified and must not be interpreted.
type Bitmap struct {
	Bits []uint32
}

const BitmapEntryWidth = 32

func EntryCount(cnt int) int {
	return (cnt + (BitmapEntryWidth - 1)) / BitmapEntryWidth
}

func SizeInBytes(cnt int) int {
	return EntryCount(cnt) * 4
}

func GetEntryIndex(idx uint64) (uint64, uint64) {
	return idx / BitmapEntryWidth, idx % BitmapEntryWidth
}

func EntryIsSet(e uint32, pos uint64) bool {
	return e&(1<<pos) != 0
}

func RowIsValidInEntry(e uint32, pos uint64) bool {
	return EntryIsSet(e, pos)
}

func NoneValidInEntry(entry uint32) bool {
	return entry == 0
}

func AllValidInEntry(entry uint32) bool {
	return entry == ^uint32(0)
}

func (bm *Bitmap) Data() []uint32 {
	return bm.Bits
}

func (bm *Bitmap) Bytes(count int) int {
	return SizeInBytes(count)
}

func (bm *Bitmap) Init(count int) {
	cnt := EntryCount(count)
	bm.Bits = make([]uint32, cnt)
	for i := range bm.Bits {
		bm.Bits[i] = ^uint32(0)
	}
}

func (bm *Bitmap) ShareWith(other *Bitmap) {
	bm.Bits = other.Bits
}

func (bm *Bitmap) Invalid() bool {
	return len(bm.Bits) == 0
}

// AllValid reports whether the mask has no storage at all, meaning no row
// was ever marked null.
func (bm *Bitmap) AllValid() bool {
	return bm.Invalid()
}

func (bm *Bitmap) IsMaskSet() bool {
	return bm.Bits != nil
}

func (bm *Bitmap) GetEntry(eIdx uint64) uint32 {
	if bm.Invalid() {
		return ^uint32(0)
	}
	return bm.Bits[eIdx]
}

func (bm *Bitmap) RowIsValidUnsafe(idx uint64) bool {
	eIdx, pos := GetEntryIndex(idx)
	e := bm.GetEntry(eIdx)
	return EntryIsSet(e, pos)
}

func (bm *Bitmap) RowIsValid(idx uint64) bool {
	if bm.Invalid() {
		return true
	}
	return bm.RowIsValidUnsafe(idx)
}

func (bm *Bitmap) SetValid(ridx uint64) {
	if bm.Invalid() {
		return
	}
	bm.ensureCapacity(ridx)
	bm.SetValidUnsafe(ridx)
}

func (bm *Bitmap) SetValidUnsafe(ridx uint64) {
	eIdx, pos := GetEntryIndex(ridx)
	bm.Bits[eIdx] |= 1 << pos
}

func (bm *Bitmap) SetInvalid(ridx uint64) {
	if bm.Invalid() {
		bm.Init(max(int(ridx)+1, DefaultVectorSize))
	} else {
		bm.ensureCapacity(ridx)
	}
	bm.SetInvalidUnsafe(ridx)
}

// ensureCapacity grows a materialized mask so ridx is covered. A present
// mask must span every row it is asked about; rows added by the growth
// start valid.
func (bm *Bitmap) ensureCapacity(ridx uint64) {
	eIdx, _ := GetEntryIndex(ridx)
	if int(eIdx) < len(bm.Bits) {
		return
	}
	bm.Resize(len(bm.Bits)*BitmapEntryWidth, int(ridx)+1)
}

func (bm *Bitmap) SetInvalidUnsafe(ridx uint64) {
	eIdx, pos := GetEntryIndex(ridx)
	bm.Bits[eIdx] &= ^(uint32(1) << pos)
}

func (bm *Bitmap) Set(ridx uint64, valid bool) {
	if valid {
		bm.SetValid(ridx)
	} else {
		bm.SetInvalid(ridx)
	}
}

func (bm *Bitmap) Reset() {
	bm.Bits = nil
}

// Combine intersects bm with other: a row stays valid only if valid in both.
func (bm *Bitmap) Combine(other *Bitmap, count int) {
	if other.AllValid() {
		return
	}
	if bm.AllValid() {
		bm.ShareWith(other)
		return
	}
	oldData := bm.Bits
	bm.Init(count)
	eCnt := EntryCount(count)
	for i := 0; i < eCnt; i++ {
		bm.Bits[i] = oldData[i] & other.Bits[i]
	}
}

func (bm *Bitmap) CopyFrom(other *Bitmap, count int) {
	if other.AllValid() {
		bm.Bits = nil
	} else {
		eCnt := EntryCount(count)
		bm.Bits = make([]uint32, eCnt)
		copy(bm.Bits, other.Bits[:eCnt])
	}
}

func (bm *Bitmap) Resize(oldCnt int, newCnt int) {
	if newCnt <= oldCnt {
		return
	}
	if bm.Bits != nil {
		ncnt := EntryCount(newCnt)
		ocnt := EntryCount(oldCnt)
		newData := make([]uint32, ncnt)
		copy(newData, bm.Bits)
		for i := ocnt; i < ncnt; i++ {
			newData[i] = ^uint32(0)
		}
		bm.Bits = newData
	} else {
		bm.Init(newCnt)
	}
}

func (bm *Bitmap) PrepareSpace(cnt int) {
	if bm.Invalid() {
		bm.Init(cnt)
	}
}

func (bm *Bitmap) SetAllInvalid(cnt int) {
	bm.PrepareSpace(cnt)
	if cnt == 0 {
		return
	}
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		bm.Bits[i] = 0
	}
	lastBits := cnt % BitmapEntryWidth
	if lastBits == 0 {
		bm.Bits[lastEidx] = 0
	} else {
		bm.Bits[lastEidx] = ^uint32(0) << lastBits
	}
}

func (bm *Bitmap) SetAllValid(cnt int) {
	bm.PrepareSpace(cnt)
	if cnt == 0 {
		return
	}
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		bm.Bits[i] = ^uint32(0)
	}
	lastBits := cnt % BitmapEntryWidth
	if lastBits == 0 {
		bm.Bits[lastEidx] = ^uint32(0)
	} else {
		bm.Bits[lastEidx] = ^(^uint32(0) << lastBits)
	}
}

func (bm *Bitmap) CountValid(count int) int {
	if bm.AllValid() || count == 0 {
		return count
	}
	valid := 0
	fullEntries := count / BitmapEntryWidth
	for i := 0; i < fullEntries; i++ {
		e := bm.Bits[i]
		switch {
		case AllValidInEntry(e):
			valid += BitmapEntryWidth
		case NoneValidInEntry(e):
		default:
			valid += bits.OnesCount32(e)
		}
	}
	for i := fullEntries * BitmapEntryWidth; i < count; i++ {
		if bm.RowIsValidUnsafe(uint64(i)) {
			valid++
		}
	}
	return valid
}

// BitString renders the first count rows of the mask as a literal bit
// string in natural row order, '1' for valid and '0' for null. Diagnostic
// output only.
func (bm *Bitmap) BitString(count int) string {
	var sb strings.Builder
	sb.Grow(count)
	for i := 0; i < count; i++ {
		if bm.RowIsValid(uint64(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
