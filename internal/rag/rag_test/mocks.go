package rag_test

import (
	"context"
	"sync"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
)

// MockExtractor implements extract.TextExtractor
type MockExtractor struct {
	// Control fields to simulate different behaviors
	OnExtract func(path string) (string, error)
}

func (m *MockExtractor) Extract(path string) (string, error) {
	if m.OnExtract != nil {
		return m.OnExtract(path)
	}
	return "default extracted text", nil
}

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
	Dim              int
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return make([]float32, m.Dim), nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Dummy vectors matching the chunk count
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = make([]float32, m.Dim)
	}
	return vectors, nil
}

func (m *MockEmbedder) Dimension() int {
	return m.Dim
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerateAnswer func(ctx context.Context, question, contextText string) (string, error)
}

func (m *MockLLM) GenerateAnswer(ctx context.Context, question, contextText string) (string, error) {
	if m.OnGenerateAnswer != nil {
		return m.OnGenerateAnswer(ctx, question, contextText)
	}
	return "mocked llm response", nil
}

// MockChunkStore implements rag.ChunkStore, recording what was written.
type MockChunkStore struct {
	OnInsertChunks func(ctx context.Context, chunks []docModel.Chunk) error
	OnGetChunk     func(ctx context.Context, chunkID string) (docModel.Chunk, bool, error)

	InsertedChunks []docModel.Chunk
	StatusUpdates  map[string]docModel.DocumentStatus
	DeleteAllCalls int
}

func NewMockChunkStore() *MockChunkStore {
	return &MockChunkStore{StatusUpdates: make(map[string]docModel.DocumentStatus)}
}

func (m *MockChunkStore) InsertChunks(ctx context.Context, chunks []docModel.Chunk) error {
	if m.OnInsertChunks != nil {
		return m.OnInsertChunks(ctx, chunks)
	}
	m.InsertedChunks = append(m.InsertedChunks, chunks...)
	return nil
}

func (m *MockChunkStore) UpdateDocumentStatus(ctx context.Context, documentID string, status docModel.DocumentStatus, indexedAt *time.Time) error {
	m.StatusUpdates[documentID] = status
	return nil
}

func (m *MockChunkStore) GetChunk(ctx context.Context, chunkID string) (docModel.Chunk, bool, error) {
	if m.OnGetChunk != nil {
		return m.OnGetChunk(ctx, chunkID)
	}
	for _, chunk := range m.InsertedChunks {
		if chunk.ChunkID == chunkID {
			return chunk, true, nil
		}
	}
	return docModel.Chunk{}, false, nil
}

func (m *MockChunkStore) DeleteAll(ctx context.Context) error {
	m.DeleteAllCalls++
	m.InsertedChunks = nil
	return nil
}

// MockAnswerCache implements rag.AnswerCache. Saves happen from a
// background goroutine, so the map is mutex guarded.
type MockAnswerCache struct {
	OnGet func(ctx context.Context, question string) (docModel.CachedAnswer, bool)

	mu    sync.Mutex
	saved map[string]docModel.CachedAnswer
}

func NewMockAnswerCache() *MockAnswerCache {
	return &MockAnswerCache{saved: make(map[string]docModel.CachedAnswer)}
}

func (m *MockAnswerCache) Get(ctx context.Context, question string) (docModel.CachedAnswer, bool) {
	if m.OnGet != nil {
		return m.OnGet(ctx, question)
	}
	return docModel.CachedAnswer{}, false
}

func (m *MockAnswerCache) Save(ctx context.Context, question string, answer docModel.CachedAnswer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[question] = answer
	return nil
}

func (m *MockAnswerCache) SavedAnswer(question string) (docModel.CachedAnswer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	answer, found := m.saved[question]
	return answer, found
}
