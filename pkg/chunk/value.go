package chunk

import (
	"fmt"

	"github.com/keeldb/keel/pkg/common"
)

// Value boxes a single element for diagnostics and the CLI surface. The
// comparison kernels never allocate Values; they work on the raw buffers.
type Value struct {
	Typ    common.LType
	IsNull bool
	Bool   bool
	I64    int64
	I64_1  int64
	I64_2  int64
	F64    float64
	Str    string
}

func (val *Value) String() string {
	if val.IsNull {
		return "NULL"
	}
	switch val.Typ.Id {
	case common.LTID_BOOLEAN:
		return fmt.Sprintf("%v", val.Bool)
	case common.LTID_TINYINT, common.LTID_SMALLINT,
		common.LTID_INTEGER, common.LTID_BIGINT,
		common.LTID_TIMESTAMP, common.LTID_TIMESTAMP_SEC,
		common.LTID_TIMESTAMP_MS, common.LTID_TIMESTAMP_NS:
		return fmt.Sprintf("%d", val.I64)
	case common.LTID_UTINYINT, common.LTID_USMALLINT,
		common.LTID_UINTEGER, common.LTID_UBIGINT:
		return fmt.Sprintf("%d", uint64(val.I64))
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		return fmt.Sprintf("%g", val.F64)
	case common.LTID_DATE:
		return fmt.Sprintf("%04d-%02d-%02d", val.I64, val.I64_1, val.I64_2)
	case common.LTID_DECIMAL, common.LTID_VARCHAR, common.LTID_STRING_CATEGORY:
		return val.Str
	default:
		panic("usp")
	}
}
