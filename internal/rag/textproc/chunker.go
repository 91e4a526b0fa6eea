package textproc

import (
	"errors"
	"strings"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
)

// Chunker splits normalized text into overlapping windows. A window
// nominally spans chunkSize characters but gets shortened to the nearest
// sentence terminator or newline found in its last BoundarySearchSpan
// characters, so we don't cut mid-sentence. After emitting a chunk the
// cursor retreats by overlap so neighbouring chunks share context - a fact
// that straddles a boundary is still retrievable.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker rejects overlap >= chunkSize outright. With that configuration
// the cursor would never advance and Split would spin forever, so it is a
// caller bug, not something to clamp quietly.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, errors.New("chunk size must be positive")
	}
	if overlap < 0 {
		return nil, errors.New("overlap must not be negative")
	}
	if overlap >= chunkSize {
		return nil, errors.New("overlap must be smaller than chunk size")
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split is deterministic and order-preserving: the slice order becomes the
// chunk index. Empty input gives no chunks, input shorter than the chunk
// size gives exactly one.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.chunkSize

		if end < len(text) {
			//look for a sentence break in the tail of the window
			searchStart := end - config.BoundarySearchSpan
			if searchStart < start {
				searchStart = start
			}
			window := text[searchStart:end]
			boundary := strings.LastIndexByte(window, '.')
			if nl := strings.LastIndexByte(window, '\n'); nl > boundary {
				boundary = nl
			}
			//accept the boundary only if the overlap retreat still lands
			//past start, otherwise the cursor would move backwards
			if boundary >= 0 && searchStart+boundary+1-c.overlap > start {
				end = searchStart + boundary + 1
			}
		} else {
			end = len(text)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end < len(text) {
			start = end - c.overlap
		} else {
			start = end
		}
	}

	return chunks
}
