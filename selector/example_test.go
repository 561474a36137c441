package selector_test

import (
	"fmt"

	"github.com/arloliu/encsel/column"
	"github.com/arloliu/encsel/config"
	"github.com/arloliu/encsel/format"
	"github.com/arloliu/encsel/selector"
)

func ExampleSelector_Select() {
	s, err := selector.New()
	if err != nil {
		panic(err)
	}

	policy := config.Policy{
		IntEncoding:  config.IntBP,
		IntBitLength: config.Int(9),
		IntBound:     config.Int(300),
	}
	w, err := s.Select(column.New(format.Int32, "http", "status"), policy)
	if err != nil {
		panic(err)
	}
	defer w.Finish()

	for _, code := range []int32{200, 200, 404, 301} {
		if err := w.WriteInt32(code); err != nil {
			panic(err)
		}
	}
	page, err := w.Bytes()
	if err != nil {
		panic(err)
	}

	fmt.Println(w.Encoding(), len(page))
	// Output: BIT_PACKED 9
}

func ExampleSelector_Choose() {
	s, err := selector.New()
	if err != nil {
		panic(err)
	}

	for _, typ := range []format.PhysicalType{format.Boolean, format.Int64, format.ByteArray} {
		w, strategy, err := s.Choose(column.New(typ, "c"), config.DefaultPolicy())
		if err != nil {
			panic(err)
		}
		fmt.Println(typ, strategy, w.Encoding())
		w.Finish()
	}
	// Output:
	// BOOLEAN rle RLE
	// INT64 dictionary RLE_DICTIONARY
	// BYTE_ARRAY dictionary RLE_DICTIONARY
}
