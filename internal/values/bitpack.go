package values

import "math/bits"

// WidthFromBound returns the number of bits needed to store any value in [0, bound].
func WidthFromBound(bound int) int {
	if bound <= 0 {
		return 0
	}

	return bits.Len64(uint64(bound))
}

func maxForWidth(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<width - 1
}

func lowMask(n int) uint64 {
	return uint64(1)<<n - 1
}

// lsbBitWriter packs values least significant bit first.
type lsbBitWriter struct {
	cur    byte
	filled int
}

func (w *lsbBitWriter) write(dst []byte, v uint64, width int) []byte {
	for remaining := width; remaining > 0; {
		take := min(8-w.filled, remaining)
		w.cur |= byte(v&lowMask(take)) << w.filled
		v >>= take
		w.filled += take
		remaining -= take
		if w.filled == 8 {
			dst = append(dst, w.cur)
			w.cur, w.filled = 0, 0
		}
	}

	return dst
}

func (w *lsbBitWriter) flush(dst []byte) []byte {
	if w.filled > 0 {
		dst = append(dst, w.cur)
		w.cur, w.filled = 0, 0
	}

	return dst
}

// msbBitWriter packs values most significant bit first.
type msbBitWriter struct {
	cur    byte
	filled int
}

func (w *msbBitWriter) write(dst []byte, v uint64, width int) []byte {
	for remaining := width; remaining > 0; {
		take := min(8-w.filled, remaining)
		chunk := (v >> (remaining - take)) & lowMask(take)
		w.cur |= byte(chunk) << (8 - w.filled - take)
		w.filled += take
		remaining -= take
		if w.filled == 8 {
			dst = append(dst, w.cur)
			w.cur, w.filled = 0, 0
		}
	}

	return dst
}

func (w *msbBitWriter) flush(dst []byte) []byte {
	if w.filled > 0 {
		dst = append(dst, w.cur)
		w.cur, w.filled = 0, 0
	}

	return dst
}

// appendPackedLSB appends vals packed with width bits each, LSB first, padding the
// final byte with zero bits.
func appendPackedLSB(dst []byte, vals []uint64, width int) []byte {
	var w lsbBitWriter
	for _, v := range vals {
		dst = w.write(dst, v, width)
	}

	return w.flush(dst)
}

// appendPackedMSB appends vals packed with width bits each, MSB first, padding the
// final byte with zero bits.
func appendPackedMSB(dst []byte, vals []uint64, width int) []byte {
	var w msbBitWriter
	for _, v := range vals {
		dst = w.write(dst, v, width)
	}

	return w.flush(dst)
}
