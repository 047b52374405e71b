package chunk

import (
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/keeldb/keel/pkg/common"
	"github.com/keeldb/keel/pkg/util"
)

// Vector is one column: a typed, contiguously stored element buffer plus an
// optional validity mask. The kernel treats vectors as externally allocated
// and never frees them.
type Vector struct {
	_PhyFormat PhyFormat
	_Typ       common.LType
	Data       []byte
	Mask       *util.Bitmap
	Buf        *VecBuffer
	// Cat is only set on string-category columns. Shared between columns
	// after a sync.
	Cat *CategoryDict
}

func NewVector(lTyp common.LType, cap int) *Vector {
	vec := &Vector{
		_PhyFormat: PF_FLAT,
		_Typ:       lTyp,
		Mask:       &util.Bitmap{},
	}
	sz := lTyp.GetInternalType().Size()
	if sz > 0 {
		vec.Buf = NewStandardBuffer(lTyp, cap)
		vec.Data = vec.Buf.Data
	}
	return vec
}

func NewFlatVector(lTyp common.LType, cap int) *Vector {
	return NewVector(lTyp, cap)
}

// NewConstVector holds a single element logically repeated for every row.
func NewConstVector(lTyp common.LType) *Vector {
	vec := &Vector{
		_PhyFormat: PF_CONST,
		_Typ:       lTyp,
		Mask:       &util.Bitmap{},
	}
	vec.Buf = NewConstBuffer(lTyp)
	vec.Data = vec.Buf.Data
	return vec
}

func (vec *Vector) Typ() common.LType {
	return vec._Typ
}

func (vec *Vector) PhyFormat() PhyFormat {
	return vec._PhyFormat
}

func (vec *Vector) SetPhyFormat(pf PhyFormat) {
	vec._PhyFormat = pf
}

// Reference makes vec a borrowed view of other. No element data is copied.
func (vec *Vector) Reference(other *Vector) {
	util.AssertFunc(vec.Typ().Equal(other.Typ()))
	vec._PhyFormat = other._PhyFormat
	vec.Buf = other.Buf
	vec.Data = other.Data
	vec.Mask = other.Mask
	vec.Cat = other.Cat
}

func (vec *Vector) Reset() {
	vec._PhyFormat = PF_FLAT
	vec.Mask.Reset()
}

func (vec *Vector) GetValue(idx int) *Value {
	switch vec.PhyFormat() {
	case PF_CONST:
		idx = 0
	case PF_FLAT:
	default:
		panic("usp")
	}
	if !vec.Mask.RowIsValid(uint64(idx)) {
		return &Value{
			Typ:    vec.Typ(),
			IsNull: true,
		}
	}

	switch vec.Typ().Id {
	case common.LTID_BOOLEAN:
		data := GetSliceInPhyFormatFlat[bool](vec)
		return &Value{Typ: vec.Typ(), Bool: data[idx]}
	case common.LTID_TINYINT:
		data := GetSliceInPhyFormatFlat[int8](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_SMALLINT:
		data := GetSliceInPhyFormatFlat[int16](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_INTEGER:
		data := GetSliceInPhyFormatFlat[int32](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_BIGINT,
		common.LTID_TIMESTAMP, common.LTID_TIMESTAMP_SEC,
		common.LTID_TIMESTAMP_MS, common.LTID_TIMESTAMP_NS:
		data := GetSliceInPhyFormatFlat[int64](vec)
		return &Value{Typ: vec.Typ(), I64: data[idx]}
	case common.LTID_UTINYINT:
		data := GetSliceInPhyFormatFlat[uint8](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_USMALLINT:
		data := GetSliceInPhyFormatFlat[uint16](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_UINTEGER:
		data := GetSliceInPhyFormatFlat[uint32](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_UBIGINT:
		data := GetSliceInPhyFormatFlat[uint64](vec)
		return &Value{Typ: vec.Typ(), I64: int64(data[idx])}
	case common.LTID_FLOAT:
		data := GetSliceInPhyFormatFlat[float32](vec)
		return &Value{Typ: vec.Typ(), F64: float64(data[idx])}
	case common.LTID_DOUBLE:
		data := GetSliceInPhyFormatFlat[float64](vec)
		return &Value{Typ: vec.Typ(), F64: data[idx]}
	case common.LTID_DATE:
		data := GetSliceInPhyFormatFlat[common.Date](vec)
		return &Value{
			Typ:   vec.Typ(),
			I64:   int64(data[idx].Year),
			I64_1: int64(data[idx].Month),
			I64_2: int64(data[idx].Day),
		}
	case common.LTID_DECIMAL:
		data := GetSliceInPhyFormatFlat[common.Decimal](vec)
		return &Value{Typ: vec.Typ(), Str: data[idx].String()}
	case common.LTID_VARCHAR:
		data := GetSliceInPhyFormatFlat[common.String](vec)
		return &Value{Typ: vec.Typ(), Str: data[idx].String()}
	case common.LTID_STRING_CATEGORY:
		data := GetSliceInPhyFormatFlat[int32](vec)
		ret := &Value{Typ: vec.Typ(), I64: int64(data[idx])}
		if vec.Cat != nil {
			ret.Str = vec.Cat.Key(data[idx])
		}
		return ret
	default:
		panic("usp")
	}
}

func (vec *Vector) SetValue(idx int, val *Value) {
	util.AssertFunc(val.Typ.Equal(vec.Typ()))
	vec.Mask.Set(uint64(idx), !val.IsNull)
	if val.IsNull {
		return
	}
	pTyp := vec.Typ().GetInternalType()
	switch pTyp {
	case common.BOOL:
		slice := util.ToSlice[bool](vec.Data, pTyp.Size())
		slice[idx] = val.Bool
	case common.INT8:
		slice := util.ToSlice[int8](vec.Data, pTyp.Size())
		slice[idx] = int8(val.I64)
	case common.INT16:
		slice := util.ToSlice[int16](vec.Data, pTyp.Size())
		slice[idx] = int16(val.I64)
	case common.INT32:
		slice := util.ToSlice[int32](vec.Data, pTyp.Size())
		slice[idx] = int32(val.I64)
	case common.INT64:
		slice := util.ToSlice[int64](vec.Data, pTyp.Size())
		slice[idx] = val.I64
	case common.UINT8:
		slice := util.ToSlice[uint8](vec.Data, pTyp.Size())
		slice[idx] = uint8(val.I64)
	case common.UINT16:
		slice := util.ToSlice[uint16](vec.Data, pTyp.Size())
		slice[idx] = uint16(val.I64)
	case common.UINT32:
		slice := util.ToSlice[uint32](vec.Data, pTyp.Size())
		slice[idx] = uint32(val.I64)
	case common.UINT64:
		slice := util.ToSlice[uint64](vec.Data, pTyp.Size())
		slice[idx] = uint64(val.I64)
	case common.FLOAT:
		slice := util.ToSlice[float32](vec.Data, pTyp.Size())
		slice[idx] = float32(val.F64)
	case common.DOUBLE:
		slice := util.ToSlice[float64](vec.Data, pTyp.Size())
		slice[idx] = val.F64
	case common.DATE:
		slice := util.ToSlice[common.Date](vec.Data, pTyp.Size())
		slice[idx] = common.Date{
			Year:  int32(val.I64),
			Month: int32(val.I64_1),
			Day:   int32(val.I64_2),
		}
	case common.DECIMAL:
		slice := util.ToSlice[common.Decimal](vec.Data, pTyp.Size())
		if len(val.Str) != 0 {
			decVal, err := decimal.ParseExact(val.Str, vec.Typ().Scale)
			if err != nil {
				panic(err)
			}
			slice[idx] = common.Decimal{Decimal: decVal}
		} else {
			nDec, err := decimal.NewFromInt64(val.I64, val.I64_1, vec._Typ.Scale)
			if err != nil {
				panic(err)
			}
			slice[idx] = common.Decimal{Decimal: nDec}
		}
	case common.VARCHAR:
		slice := util.ToSlice[common.String](vec.Data, pTyp.Size())
		byteSlice := []byte(val.Str)
		dstMem := util.CMalloc(len(byteSlice))
		dst := util.PointerToSlice[byte](dstMem, len(byteSlice))
		copy(dst, byteSlice)
		slice[idx] = common.String{
			Data: dstMem,
			Len:  len(dst),
		}
	default:
		panic("usp")
	}
}

func (vec *Vector) Print2(prefix string, rowCount int) {
	fields := make([]zap.Field, 0)
	for j := 0; j < rowCount; j++ {
		val := vec.GetValue(j)
		fields = append(fields, zap.String("", val.String()))
	}
	util.Info(prefix, fields...)
}

func GetSliceInPhyFormatFlat[T any](vec *Vector) []T {
	util.AssertFunc(vec.PhyFormat().IsFlat() || vec.PhyFormat().IsConst())
	pSize := vec.Typ().GetInternalType().Size()
	return util.ToSlice[T](vec.Data, pSize)
}

func GetMaskInPhyFormatFlat(vec *Vector) *util.Bitmap {
	util.AssertFunc(vec.PhyFormat().IsFlat())
	return vec.Mask
}

func SetNullInPhyFormatFlat(vec *Vector, idx uint64, null bool) {
	util.AssertFunc(vec.PhyFormat().IsFlat())
	vec.Mask.Set(idx, !null)
}

// HasNull scans the first count rows for a cleared validity bit.
func HasNull(input *Vector, count int) bool {
	if count == 0 {
		return false
	}
	if input.Mask.AllValid() {
		return false
	}
	for i := 0; i < count; i++ {
		if !input.Mask.RowIsValid(uint64(i)) {
			return true
		}
	}
	return false
}

func NewInt32FlatVector(v []int32, sz int) *Vector {
	vec := NewFlatVector(common.IntegerType(), sz)
	data := GetSliceInPhyFormatFlat[int32](vec)
	copy(data, v)
	return vec
}

func NewInt64FlatVector(v []int64, sz int) *Vector {
	vec := NewFlatVector(common.BigintType(), sz)
	data := GetSliceInPhyFormatFlat[int64](vec)
	copy(data, v)
	return vec
}

func NewUbigintFlatVector(v []uint64, sz int) *Vector {
	vec := NewFlatVector(common.UbigintType(), sz)
	data := GetSliceInPhyFormatFlat[uint64](vec)
	copy(data, v)
	return vec
}

func NewFloat64FlatVector(v []float64, sz int) *Vector {
	vec := NewFlatVector(common.DoubleType(), sz)
	data := GetSliceInPhyFormatFlat[float64](vec)
	copy(data, v)
	return vec
}

func NewDateFlatVector(v []common.Date, sz int) *Vector {
	vec := NewFlatVector(common.DateType(), sz)
	data := GetSliceInPhyFormatFlat[common.Date](vec)
	copy(data, v)
	return vec
}

func NewVarcharFlatVector(v []string, sz int) *Vector {
	vec := NewFlatVector(common.VarcharType(), sz)
	data := GetSliceInPhyFormatFlat[common.String](vec)
	for i := 0; i < len(v); i++ {
		dstMem := util.CMalloc(len(v[i]))
		dst := util.PointerToSlice[byte](dstMem, len(v[i]))
		copy(dst, v[i])
		data[i] = common.String{
			Data: dstMem,
			Len:  len(dst),
		}
	}
	return vec
}

// FreeVarchar releases the element bytes of the first count rows of a
// varchar column. The column must not be read afterwards.
func FreeVarchar(vec *Vector, count int) {
	util.AssertFunc(vec.Typ().GetInternalType() == common.VARCHAR)
	data := GetSliceInPhyFormatFlat[common.String](vec)
	for i := 0; i < count; i++ {
		if !vec.Mask.RowIsValid(uint64(i)) || data[i].Data == nil {
			continue
		}
		util.CFree(data[i].Data)
		data[i] = common.String{}
	}
}
