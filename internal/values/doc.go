// Package values implements the primitive value writers that encsel selects
// between: plain, fixed-length plain, RLE / bit-packing hybrid, aligned and
// unaligned bit-packing, delta binary packing, delta length byte array, delta byte
// array and dictionary coding.
//
// Every writer satisfies encoding.ValuesWriter. The dictionary writer also satisfies
// encoding.DictionaryValuesWriter, which the fallback wrapper drives.
//
// Writers buffer the values of one page and encode them with the matching
// parquet-go encoding when Bytes is called. Two formats are assembled here: RLE
// pages carry a 4-byte little-endian length prefix ahead of the parquet-go run
// stream, and BIT_PACKED pages wider than 8 bits are packed by
// ByteBitPackingWriter, since parquet-go packs that encoding for levels only.
package values
