package embedding

import "context"

// Embedder maps text to fixed-dimension dense vectors. BatchEmbedding must
// preserve input order - callers zip inputs with outputs by position.
// Dimension is a capability query, never a constant on the caller side.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
	Dimension() int
}
