package rag

import (
	"context"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/embedding"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/extract"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/llm"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/textproc"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/vectorindex"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - The PUBLIC contract. Workers and handlers only see behavior.

2. service (Private Struct):
  - The PRIVATE implementation holding the state (index, stores, clients).
  - Lowercase so external packages can't reach the dependencies directly.

3. Pointer Receiver (*service):
  - (*service) methods implicitly satisfy the Service interface.

4. Dependency Injection (NewService):
  - Links the private struct to the public interface, so tests can swap
    real clients for mocks without touching caller code.
*/

// Canned answers for the query paths that never reach the LLM, plus the
// one used when generation itself dies.
const (
	NoMatchesAnswer      = "I couldn't find any relevant information in the uploaded documents to answer your question."
	MissingContentAnswer = "I found relevant chunks but couldn't retrieve their content. Please try again."
	GenerationErrAnswer  = "I apologize, but I encountered an error while generating the answer."
)

// ChunkStore is the slice of the metadata store the pipeline needs.
type ChunkStore interface {
	InsertChunks(ctx context.Context, chunks []docModel.Chunk) error
	UpdateDocumentStatus(ctx context.Context, documentID string, status docModel.DocumentStatus, indexedAt *time.Time) error
	GetChunk(ctx context.Context, chunkID string) (docModel.Chunk, bool, error)
	DeleteAll(ctx context.Context) error
}

// AnswerCache sits in front of the whole query pipeline.
type AnswerCache interface {
	Get(ctx context.Context, question string) (docModel.CachedAnswer, bool)
	Save(ctx context.Context, question string, answer docModel.CachedAnswer) error
}

// Service - workers and handlers only call this, they don't need to know
// the index or the LLM.
type Service interface {
	IngestDocument(ctx context.Context, job jobModel.IngestJob) jobModel.IngestResult
	AnswerQuestion(ctx context.Context, question string, topK int) docModel.QAOutcome
	TotalVectors() int
	ResetIndex(ctx context.Context) error
}

type service struct {
	extractor   extract.TextExtractor
	chunker     *textproc.Chunker
	embedder    embedding.Embedder
	index       *vectorindex.Index
	llmProvider llm.Provider
	chunkStore  ChunkStore
	answerCache AnswerCache
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(ex extract.TextExtractor, ch *textproc.Chunker, em embedding.Embedder, idx *vectorindex.Index, provider llm.Provider, store ChunkStore, cache AnswerCache) Service {
	return &service{
		extractor:   ex,
		chunker:     ch,
		embedder:    em,
		index:       idx,
		llmProvider: provider,
		chunkStore:  store,
		answerCache: cache,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

// IngestDocument runs the full pipeline for one uploaded file: extract,
// clean, chunk, embed, index write, metadata write. Every failure marks
// the document failed before returning, so status queries never show a
// stuck "processing" row for a dead job.
func (s *service) IngestDocument(ctx context.Context, job jobModel.IngestJob) jobModel.IngestResult {
	inMethodLogger := s.logger.With("traceId", job.TraceID, "documentId", job.DocumentID)

	processContext, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	// Extraction
	rawText, err := s.executeExtractionStep(processContext, inMethodLogger, &job)
	if err != nil {
		return s.ingestError(ctx, job, err, "EXTRACTION_FAILURE")
	}

	// Cleaning + meaningful-content gate
	cleaned, err := s.executeNormalizeStep(inMethodLogger, &job, rawText)
	if err != nil {
		return s.ingestError(ctx, job, err, "EMPTY_DOCUMENT")
	}

	// Chunking
	pieces, err := s.executeChunkingStep(inMethodLogger, &job, cleaned)
	if err != nil {
		return s.ingestError(ctx, job, err, "CHUNKING_FAILURE")
	}

	// Embedding
	vectors, err := s.executeEmbeddingStep(processContext, inMethodLogger, &job, pieces)
	if err != nil {
		return s.ingestError(ctx, job, err, "EMBEDDING_FAILURE")
	}

	// Index write + persist
	chunks, err := s.executeIndexWriteStep(inMethodLogger, &job, pieces, vectors)
	if err != nil {
		return s.ingestError(ctx, job, err, "INDEX_WRITE_FAILURE")
	}

	// Metadata write
	if err := s.executeMetadataStep(processContext, inMethodLogger, &job, chunks); err != nil {
		return s.ingestError(ctx, job, err, "METADATA_WRITE_FAILURE")
	}

	job.CurrentStep = jobModel.Complete
	inMethodLogger.Info("Document indexed", "numChunks", len(chunks))
	return jobModel.IngestResult{
		Status:    jobModel.JobStatusComplete,
		NumChunks: len(chunks),
	}
}

// AnswerQuestion runs the query pipeline. It always returns an outcome
// with an answer string - the canned ones carry the Kind that tells the
// handler what actually happened.
func (s *service) AnswerQuestion(ctx context.Context, question string, topK int) docModel.QAOutcome {
	inMethodLogger := s.logger.With("traceId", traceIDFrom(ctx))
	if topK <= 0 {
		topK = config.TopKResults
	}

	processContext, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	// Cache check
	if cached, found := s.executeCacheCheckStep(processContext, inMethodLogger, question); found {
		inMethodLogger.Debug("Answer cache hit")
		return docModel.QAOutcome{
			Kind:    docModel.OutcomeAnswered,
			Answer:  cached.Answer,
			Sources: cached.Sources,
		}
	}

	// Query embedding
	queryVector, err := s.executeQueryEmbeddingStep(processContext, inMethodLogger, question)
	if err != nil {
		inMethodLogger.Error("Query embedding failed", "error", err)
		return docModel.QAOutcome{Kind: docModel.OutcomeDegraded, Answer: GenerationErrAnswer}
	}

	// Index search
	matches, err := s.executeSearchStep(inMethodLogger, queryVector, topK)
	if err != nil || len(matches) == 0 {
		if err != nil {
			inMethodLogger.Error("Index search failed", "error", err)
		}
		return docModel.QAOutcome{Kind: docModel.OutcomeNoMatches, Answer: NoMatchesAnswer}
	}

	// Chunk content lookup
	chunks := s.executeChunkLookupStep(processContext, inMethodLogger, matches)
	if len(chunks) == 0 {
		return docModel.QAOutcome{Kind: docModel.OutcomeMissingContent, Answer: MissingContentAnswer}
	}

	contextText, sources := assembleContext(chunks)

	// LLM generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, question, contextText)
	if err != nil {
		inMethodLogger.Error("Answer generation failed", "error", err)
		return docModel.QAOutcome{Kind: docModel.OutcomeDegraded, Answer: GenerationErrAnswer, Sources: sources}
	}

	outcome := docModel.QAOutcome{Kind: docModel.OutcomeAnswered, Answer: answer, Sources: sources}

	// Background cache save - only real answers, never canned ones
	go func() {
		cacheCtx, cacheCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cacheCancel()
		if err := s.answerCache.Save(cacheCtx, question, docModel.CachedAnswer{Answer: answer, Sources: sources}); err != nil {
			s.logger.Error("Failed to save answer to cache", "error", err)
		}
	}()

	return outcome
}

func (s *service) TotalVectors() int {
	return s.index.TotalVectors()
}

// ResetIndex drops everything: vectors, the persisted index files and all
// metadata rows. Recovery path for index/metadata desync.
func (s *service) ResetIndex(ctx context.Context) error {
	if err := s.index.Reset(); err != nil {
		return err
	}
	if err := s.chunkStore.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Warn("Index and metadata fully reset")
	return nil
}
