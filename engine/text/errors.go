package text

import "errors"

var (
	// ErrNoGlyphImage means the rasterizer produced nothing for a glyph.
	// Callers skip the glyph and carry on.
	ErrNoGlyphImage = errors.New("text: no image for glyph")
	// ErrOutOfSpace means every cached glyph is in use this frame and the
	// atlas cannot fit another one.
	ErrOutOfSpace = errors.New("text: glyph atlas out of space")
	// ErrLRUStorage means the atlas ran out of room with nothing left to
	// evict. It indicates the packer and the cache disagree.
	ErrLRUStorage = errors.New("text: glyph cache empty while atlas is full")
)
