// Package encoding defines the contract between encsel and the value encoders it
// hands out.
//
// The central type is ValuesWriter, the polymorphic handle a page writer receives
// for a column. The page writer does not know whether the handle is a direct
// encoder or a dictionary encoder wrapped with a fallback; it only appends values,
// finalizes pages and reads the encoding tags to put into page headers.
//
// # Page Lifecycle
//
//	w, err := sel.Select(desc, policy)
//	if err != nil {
//	    return err
//	}
//	defer w.Finish()
//
//	for _, v := range values {
//	    if err := w.WriteInt64(v); err != nil {
//	        return err
//	    }
//	}
//
//	page, err := w.Bytes()     // data page payload
//	enc := w.Encoding()        // data page tag, e.g. RLE_DICTIONARY
//	dict, err := w.DictionaryPage() // nil unless a dictionary page is needed
//
// # Dictionary Writers
//
// DictionaryValuesWriter extends ValuesWriter with the queries the fallback wrapper
// needs: dictionary cardinality and byte size, the "should fall back now" signal, and
// a way to re-encode the buffered page into another writer.
//
// # Properties
//
// Every encoder is constructed from Properties: the initial slab size, the page size
// threshold, the dictionary byte budget and an Allocator. The default allocator is
// backed by sync.Pool and is safe for concurrent use.
//
// # Thread Safety
//
// Writers are single-writer objects. Use one writer per column chunk and never share
// it between goroutines.
package encoding
