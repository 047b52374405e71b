package common

import (
	"unsafe"

	"github.com/keeldb/keel/pkg/util"
)

// String is the fixed-width in-vector representation of a varchar element:
// a pointer/length pair into externally owned bytes.
type String struct {
	Len  int
	Data unsafe.Pointer
}

func (s *String) DataSlice() []byte {
	return util.PointerToSlice[byte](s.Data, s.Len)
}

func (s *String) DataPtr() unsafe.Pointer {
	return s.Data
}

func (s *String) String() string {
	t := s.DataSlice()
	return string(t)
}

func (s *String) Equal(o *String) bool {
	if s.Len != o.Len {
		return false
	}
	return util.PointerMemcmp(s.Data, o.Data, s.Len) == 0
}

func (s *String) Less(o *String) bool {
	minLen := min(s.Len, o.Len)
	ret := util.PointerMemcmp(s.Data, o.Data, minLen)
	if ret != 0 {
		return ret < 0
	}
	return s.Len < o.Len
}

func (s *String) Length() int {
	return s.Len
}
