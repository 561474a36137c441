package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/encsel/column"
	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
)

// writeValue parses one input line as a value of desc's type and writes it to w.
// Int96 values are given as 24 hex digits.
func writeValue(w encoding.ValuesWriter, desc column.Descriptor, line string) error {
	switch desc.Type {
	case format.Boolean:
		v, err := strconv.ParseBool(line)
		if err != nil {
			return err
		}
		return w.WriteBoolean(v)
	case format.Int32:
		v, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return err
		}
		return w.WriteInt32(int32(v))
	case format.Int64:
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return err
		}
		return w.WriteInt64(v)
	case format.Float:
		v, err := strconv.ParseFloat(line, 32)
		if err != nil {
			return err
		}
		return w.WriteFloat(float32(v))
	case format.Double:
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return err
		}
		return w.WriteDouble(v)
	case format.Int96:
		v, err := hex.DecodeString(line)
		if err != nil {
			return err
		}
		return w.WriteByteArray(v)
	case format.ByteArray, format.FixedLenByteArray:
		return w.WriteByteArray([]byte(line))
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedType, desc.Type)
	}
}

// pageStats describes one emitted page.
type pageStats struct {
	Encoding format.EncodingType
	Values   int
	Size     int
}

// encodeResult summarizes an encode run.
type encodeResult struct {
	Pages       []pageStats
	Dictionary  *pageStats
	RawSize     int
	TotalValues int
}

// encodeLines writes every line of r to w and cuts a page whenever the buffered size
// reaches pageSize.
func encodeLines(w encoding.ValuesWriter, desc column.Descriptor, r io.Reader, pageSize int) (encodeResult, error) {
	var (
		res     encodeResult
		pending int
	)

	flush := func() error {
		data, err := w.Bytes()
		if err != nil {
			return err
		}
		res.Pages = append(res.Pages, pageStats{Encoding: w.Encoding(), Values: pending, Size: len(data)})
		w.Reset()
		pending = 0

		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if err := writeValue(w, desc, line); err != nil {
			return res, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pending++
		res.TotalValues++
		res.RawSize += len(line)
		if w.BufferedSize() >= pageSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	if pending > 0 || len(res.Pages) == 0 {
		if err := flush(); err != nil {
			return res, err
		}
	}

	dict, err := w.DictionaryPage()
	if err != nil {
		return res, err
	}
	if dict != nil {
		res.Dictionary = &pageStats{Encoding: dict.Encoding, Values: dict.NumValues, Size: len(dict.Bytes)}
	}

	return res, nil
}
