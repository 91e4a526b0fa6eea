package rag

import (
	"sort"
	"strings"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
)

// assembleContext flattens retrieved chunks into the prompt context block.
// Chunks are reordered by (document, chunk index) so the model reads each
// document in its original reading order, not in similarity order. Returns
// the context text plus the distinct source document ids in that same
// deterministic order.
func assembleContext(chunks []docModel.Chunk) (string, []string) {
	if len(chunks) == 0 {
		return "", nil
	}

	ordered := make([]docModel.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DocumentID != ordered[j].DocumentID {
			return ordered[i].DocumentID < ordered[j].DocumentID
		}
		return ordered[i].ChunkIndex < ordered[j].ChunkIndex
	})

	var parts []string
	var sources []string
	var current string
	var builder strings.Builder

	flush := func() {
		if builder.Len() > 0 {
			parts = append(parts, strings.TrimSpace(builder.String()))
			builder.Reset()
		}
	}

	for _, chunk := range ordered {
		if chunk.DocumentID != current {
			flush()
			current = chunk.DocumentID
			sources = append(sources, current)
			builder.WriteString("[Source]\n")
		}
		builder.WriteString(chunk.Content)
		builder.WriteString("\n\n")
	}
	flush()

	return strings.Join(parts, "\n---\n"), sources
}
