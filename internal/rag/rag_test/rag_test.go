package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/textproc"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/vectorindex"
)

const testDim = 4

type testFixture struct {
	service   rag.Service
	extractor *MockExtractor
	embedder  *MockEmbedder
	llm       *MockLLM
	store     *MockChunkStore
	cache     *MockAnswerCache
	index     *vectorindex.Index
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	index, err := vectorindex.New(testDim, t.TempDir())
	if err != nil {
		t.Fatalf("building index: %v", err)
	}
	chunker, err := textproc.NewChunker(100, 10)
	if err != nil {
		t.Fatalf("building chunker: %v", err)
	}

	f := &testFixture{
		extractor: &MockExtractor{},
		embedder:  &MockEmbedder{Dim: testDim},
		llm:       &MockLLM{},
		store:     NewMockChunkStore(),
		cache:     NewMockAnswerCache(),
		index:     index,
	}
	f.service = rag.NewService(f.extractor, chunker, f.embedder, index, f.llm, f.store, f.cache)
	return f
}

func newIngestJob(documentID string) jobModel.IngestJob {
	return jobModel.IngestJob{
		DocumentID: documentID,
		Filename:   documentID + ".txt",
		FilePath:   "/tmp/" + documentID + ".txt",
		FileType:   ".txt",
		TraceID:    "test-trace",
	}
}

// seedIndex plants chunks directly in the index and the store, skipping
// the ingest pipeline, for query-path tests.
func seedIndex(t *testing.T, f *testFixture, chunks []docModel.Chunk, vectors [][]float32) {
	t.Helper()
	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ChunkID
	}
	if _, err := f.index.Add(vectors, ids); err != nil {
		t.Fatalf("seeding index: %v", err)
	}
	f.store.InsertedChunks = append(f.store.InsertedChunks, chunks...)
}

func TestIngestDocument_Success(t *testing.T) {
	f := newFixture(t)

	// 250 meaningful chars, chunk size 100 -> 3 chunks
	f.extractor.OnExtract = func(path string) (string, error) {
		return strings.Repeat("the quarterly revenue figures grew steadily across all regions ", 4), nil
	}

	result := f.service.IngestDocument(context.Background(), newIngestJob("doc_abc123"))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("expected complete, got %s (failed at %s: %v)", result.Status, result.FailedAt, result.Err)
	}
	if result.NumChunks == 0 {
		t.Error("expected at least one chunk")
	}
	if got := f.index.TotalVectors(); got != result.NumChunks {
		t.Errorf("index holds %d vectors, result says %d chunks", got, result.NumChunks)
	}
	if len(f.store.InsertedChunks) != result.NumChunks {
		t.Fatalf("store got %d chunks, want %d", len(f.store.InsertedChunks), result.NumChunks)
	}
	for i, chunk := range f.store.InsertedChunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		if chunk.VectorPosition == nil || *chunk.VectorPosition != i {
			t.Errorf("chunk %d missing or wrong vector position: %v", i, chunk.VectorPosition)
		}
		if want := "doc_abc123_chunk_" + string(rune('0'+i)); chunk.ChunkID != want {
			t.Errorf("chunk id %q, want %q", chunk.ChunkID, want)
		}
	}
	if f.store.StatusUpdates["doc_abc123"] != docModel.StatusIndexed {
		t.Errorf("document status should be indexed, got %s", f.store.StatusUpdates["doc_abc123"])
	}
}

func TestIngestDocument_EmptyDocument(t *testing.T) {
	f := newFixture(t)

	// Page numbers and whitespace only - nothing meaningful survives cleaning
	f.extractor.OnExtract = func(path string) (string, error) {
		return "Page 1\n\n   12   \n\nPage 2\n", nil
	}

	result := f.service.IngestDocument(context.Background(), newIngestJob("doc_empty1"))

	if result.Status != jobModel.JobStatusError {
		t.Fatalf("expected error status, got %s", result.Status)
	}
	if !errors.Is(result.Err, rag.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", result.Err)
	}
	if result.FailedAt != jobModel.NormalizeCall {
		t.Errorf("expected failure at normalize, got %s", result.FailedAt)
	}
	if f.store.StatusUpdates["doc_empty1"] != docModel.StatusFailed {
		t.Error("document should be marked failed")
	}
	if f.index.TotalVectors() != 0 {
		t.Error("nothing should have reached the index")
	}
}

func TestIngestDocument_EmbeddingFailure(t *testing.T) {
	f := newFixture(t)

	f.extractor.OnExtract = func(path string) (string, error) {
		return strings.Repeat("some perfectly reasonable sentence content here ", 5), nil
	}
	f.embedder.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
		return nil, errors.New("quota exhausted")
	}

	result := f.service.IngestDocument(context.Background(), newIngestJob("doc_fail01"))

	if result.Status != jobModel.JobStatusError {
		t.Fatalf("expected error status, got %s", result.Status)
	}
	if result.FailedAt != jobModel.EmbeddingAPICall {
		t.Errorf("expected failure at embedding, got %s", result.FailedAt)
	}
	if f.store.StatusUpdates["doc_fail01"] != docModel.StatusFailed {
		t.Error("document should be marked failed")
	}
	if f.index.TotalVectors() != 0 {
		t.Error("failed ingest must not leave vectors behind")
	}
}

func TestAnswerQuestion_NoMatchesOnEmptyIndex(t *testing.T) {
	f := newFixture(t)

	outcome := f.service.AnswerQuestion(context.Background(), "what is the revenue?", 5)

	if outcome.Kind != docModel.OutcomeNoMatches {
		t.Fatalf("expected no_matches, got %s", outcome.Kind)
	}
	if outcome.Answer != rag.NoMatchesAnswer {
		t.Errorf("unexpected answer: %q", outcome.Answer)
	}
	if outcome.NumSources() != 0 {
		t.Errorf("no matches should mean no sources, got %v", outcome.Sources)
	}
}

func TestAnswerQuestion_MissingContent(t *testing.T) {
	f := newFixture(t)

	seedIndex(t, f, []docModel.Chunk{
		{ChunkID: "doc_gone01_chunk_0", DocumentID: "doc_gone01", Content: "orphan"},
	}, [][]float32{{1, 0, 0, 0}})

	// Store lost the row - index and metadata drifted apart
	f.store.OnGetChunk = func(ctx context.Context, chunkID string) (docModel.Chunk, bool, error) {
		return docModel.Chunk{}, false, nil
	}

	outcome := f.service.AnswerQuestion(context.Background(), "anything", 5)

	if outcome.Kind != docModel.OutcomeMissingContent {
		t.Fatalf("expected missing_content, got %s", outcome.Kind)
	}
	if outcome.Answer != rag.MissingContentAnswer {
		t.Errorf("unexpected answer: %q", outcome.Answer)
	}
}

func TestAnswerQuestion_Success(t *testing.T) {
	f := newFixture(t)

	seedIndex(t, f, []docModel.Chunk{
		{ChunkID: "doc_bbb222_chunk_0", DocumentID: "doc_bbb222", ChunkIndex: 0, Content: "margins shrank in Q3"},
		{ChunkID: "doc_aaa111_chunk_0", DocumentID: "doc_aaa111", ChunkIndex: 0, Content: "revenue grew twelve percent"},
		{ChunkID: "doc_aaa111_chunk_1", DocumentID: "doc_aaa111", ChunkIndex: 1, Content: "growth was driven by exports"},
	}, [][]float32{
		{0, 0, 1, 0},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
	})

	var seenContext string
	f.llm.OnGenerateAnswer = func(ctx context.Context, question, contextText string) (string, error) {
		seenContext = contextText
		return "Revenue grew twelve percent, driven by exports.", nil
	}
	f.embedder.OnGetEmbedding = func(ctx context.Context, query string) ([]float32, error) {
		return []float32{1, 0, 0, 0}, nil
	}

	outcome := f.service.AnswerQuestion(context.Background(), "How did revenue do?", 3)

	if outcome.Kind != docModel.OutcomeAnswered {
		t.Fatalf("expected answered, got %s (%q)", outcome.Kind, outcome.Answer)
	}
	if outcome.Answer != "Revenue grew twelve percent, driven by exports." {
		t.Errorf("unexpected answer: %q", outcome.Answer)
	}

	// Sources are distinct docs, ordered by the context sort not similarity
	if len(outcome.Sources) != 2 || outcome.Sources[0] != "doc_aaa111" || outcome.Sources[1] != "doc_bbb222" {
		t.Errorf("unexpected sources: %v", outcome.Sources)
	}

	// Context keeps document reading order and the source markers
	if !strings.HasPrefix(seenContext, "[Source]\n") {
		t.Errorf("context missing source header: %q", seenContext)
	}
	if !strings.Contains(seenContext, "\n---\n") {
		t.Error("context missing document separator")
	}
	if strings.Index(seenContext, "revenue grew") > strings.Index(seenContext, "driven by exports") {
		t.Error("chunks of the same document should appear in chunk-index order")
	}

	// Real answers get cached in the background
	deadline := time.Now().Add(time.Second)
	for {
		if cached, found := f.cache.SavedAnswer("How did revenue do?"); found {
			if cached.Answer != outcome.Answer {
				t.Errorf("cached answer mismatch: %q", cached.Answer)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("answer was never cached")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAnswerQuestion_DegradedOnLLMFailure(t *testing.T) {
	f := newFixture(t)

	seedIndex(t, f, []docModel.Chunk{
		{ChunkID: "doc_ccc333_chunk_0", DocumentID: "doc_ccc333", Content: "some content"},
	}, [][]float32{{1, 0, 0, 0}})

	f.llm.OnGenerateAnswer = func(ctx context.Context, question, contextText string) (string, error) {
		return "", errors.New("upstream 503")
	}

	outcome := f.service.AnswerQuestion(context.Background(), "anything at all", 5)

	if outcome.Kind != docModel.OutcomeDegraded {
		t.Fatalf("expected degraded, got %s", outcome.Kind)
	}
	if outcome.Answer != rag.GenerationErrAnswer {
		t.Errorf("unexpected answer: %q", outcome.Answer)
	}
	// The retrieval worked, so sources still come back
	if outcome.NumSources() != 1 {
		t.Errorf("expected retrieved sources to survive, got %v", outcome.Sources)
	}
	// Degraded outcomes must never be cached
	if _, found := f.cache.SavedAnswer("anything at all"); found {
		t.Error("degraded answer must not be cached")
	}
}

func TestAnswerQuestion_DegradedOnEmbeddingFailure(t *testing.T) {
	f := newFixture(t)

	f.embedder.OnGetEmbedding = func(ctx context.Context, query string) ([]float32, error) {
		return nil, errors.New("quota exhausted")
	}

	outcome := f.service.AnswerQuestion(context.Background(), "anything", 5)

	if outcome.Kind != docModel.OutcomeDegraded {
		t.Fatalf("expected degraded, got %s", outcome.Kind)
	}
	if outcome.NumSources() != 0 {
		t.Error("embedding failed before retrieval, there can be no sources")
	}
}

func TestAnswerQuestion_CacheHitSkipsPipeline(t *testing.T) {
	f := newFixture(t)

	f.cache.OnGet = func(ctx context.Context, question string) (docModel.CachedAnswer, bool) {
		return docModel.CachedAnswer{Answer: "cached answer", Sources: []string{"doc_ddd444"}}, true
	}
	f.embedder.OnGetEmbedding = func(ctx context.Context, query string) ([]float32, error) {
		t.Error("cache hit must not reach the embedder")
		return nil, nil
	}

	outcome := f.service.AnswerQuestion(context.Background(), "cached question", 5)

	if outcome.Kind != docModel.OutcomeAnswered {
		t.Fatalf("expected answered, got %s", outcome.Kind)
	}
	if outcome.Answer != "cached answer" || outcome.NumSources() != 1 {
		t.Errorf("unexpected cached outcome: %+v", outcome)
	}
}

func TestResetIndex(t *testing.T) {
	f := newFixture(t)

	seedIndex(t, f, []docModel.Chunk{
		{ChunkID: "doc_eee555_chunk_0", DocumentID: "doc_eee555", Content: "to be dropped"},
	}, [][]float32{{1, 0, 0, 0}})

	if err := f.service.ResetIndex(context.Background()); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if f.service.TotalVectors() != 0 {
		t.Error("index should be empty after reset")
	}
	if f.store.DeleteAllCalls != 1 {
		t.Error("metadata rows should be cleared with the index")
	}
}
