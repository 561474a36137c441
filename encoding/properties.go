package encoding

import "github.com/arloliu/encsel/internal/pool"

// Default write-session sizing.
const (
	DefaultInitialSlabSize             = 64
	DefaultPageSizeThreshold           = 1024 * 1024
	DefaultDictionaryPageSizeThreshold = 1024 * 1024
)

// Allocator provides the byte buffers encoders write into.
//
// Implementations must be safe for concurrent use since writers for different
// columns may allocate in parallel.
type Allocator interface {
	// Allocate returns an empty slice with room for at least capacity bytes.
	Allocate(capacity int) []byte
	// Release hands a slice obtained from Allocate back to the allocator.
	Release(b []byte)
}

// Properties carries the write-session settings every encoder is constructed with.
// The selector passes them through unchanged.
type Properties struct {
	// InitialSlabSize is the initial capacity of an encoder's page buffer.
	InitialSlabSize int
	// PageSizeThreshold is the page size the page writer aims for.
	PageSizeThreshold int
	// DictionaryPageSizeThreshold is the dictionary byte size past which a dictionary
	// writer asks to fall back.
	DictionaryPageSizeThreshold int
	// Allocator supplies page buffers. Nil selects the shared pooled allocator.
	Allocator Allocator
	// DictionaryAllocator supplies dictionary page buffers. A dictionary page handed
	// out by DictionaryPage belongs to the caller, who may Release its bytes here
	// once written. Nil selects the shared pooled dictionary allocator.
	DictionaryAllocator Allocator
}

// DefaultProperties returns the default write-session properties.
func DefaultProperties() Properties {
	return Properties{
		InitialSlabSize:             DefaultInitialSlabSize,
		PageSizeThreshold:           DefaultPageSizeThreshold,
		DictionaryPageSizeThreshold: DefaultDictionaryPageSizeThreshold,
		Allocator:                   pool.PageAllocator(),
		DictionaryAllocator:         pool.DictAllocator(),
	}
}

// WithDefaults returns a copy of p with zero fields replaced by their defaults.
func (p Properties) WithDefaults() Properties {
	def := DefaultProperties()
	if p.InitialSlabSize <= 0 {
		p.InitialSlabSize = def.InitialSlabSize
	}
	if p.PageSizeThreshold <= 0 {
		p.PageSizeThreshold = def.PageSizeThreshold
	}
	if p.DictionaryPageSizeThreshold <= 0 {
		p.DictionaryPageSizeThreshold = def.DictionaryPageSizeThreshold
	}
	if p.Allocator == nil {
		p.Allocator = def.Allocator
	}
	if p.DictionaryAllocator == nil {
		p.DictionaryAllocator = def.DictionaryAllocator
	}

	return p
}
