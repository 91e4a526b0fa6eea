package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/metrics"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/textproc"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/vectorindex"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

func traceIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return v
	}
	return "none"
}

func logStep(job *jobModel.IngestJob, status jobModel.InternalStatus, log *logger_i.Logger) {
	job.CurrentStep = status
	log.Debug("IngestDocument", "Current Status", job.CurrentStep)
}

// ingestError marks the document failed before reporting back, so a dead
// job never leaves a row stuck in processing.
func (s *service) ingestError(ctx context.Context, job jobModel.IngestJob, err error, message string) jobModel.IngestResult {
	s.logger.Error(message, "documentId", job.DocumentID, "step", job.CurrentStep, "error", err)

	if storeErr := s.chunkStore.UpdateDocumentStatus(ctx, job.DocumentID, docModel.StatusFailed, nil); storeErr != nil {
		s.logger.Error("Failed to mark document as failed", "documentId", job.DocumentID, "error", storeErr)
	}
	return jobModel.IngestResult{
		Status:   jobModel.JobStatusError,
		FailedAt: job.CurrentStep,
		Err:      err,
	}
}

func (s *service) executeExtractionStep(ctx context.Context, log *logger_i.Logger, job *jobModel.IngestJob) (string, error) {
	logStep(job, jobModel.ExtractionCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("text_extraction", time.Since(start)) }()

	return s.extractor.Extract(job.FilePath)
}

func (s *service) executeNormalizeStep(log *logger_i.Logger, job *jobModel.IngestJob, raw string) (string, error) {
	logStep(job, jobModel.NormalizeCall, log)

	meaningful, ok := textproc.ExtractMeaningful(raw)
	if !ok {
		return "", ErrEmptyDocument
	}
	return meaningful, nil
}

func (s *service) executeChunkingStep(log *logger_i.Logger, job *jobModel.IngestJob, text string) ([]string, error) {
	logStep(job, jobModel.ChunkingCall, log)

	pieces := s.chunker.Split(text)
	if len(pieces) == 0 {
		return nil, ErrEmptyDocument
	}
	log.Debug("Chunked document", "numChunks", len(pieces))
	return pieces, nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.IngestJob, pieces []string) ([][]float32, error) {
	logStep(job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("batch_embedding", time.Since(start)) }()

	return s.embedder.BatchEmbedding(ctx, pieces)
}

// executeIndexWriteStep appends the vectors, persists the index, and builds
// the chunk rows carrying their vector positions for the metadata write.
func (s *service) executeIndexWriteStep(log *logger_i.Logger, job *jobModel.IngestJob, pieces []string, vectors [][]float32) ([]docModel.Chunk, error) {
	logStep(job, jobModel.IndexWrite, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index_write", time.Since(start)) }()

	chunkIDs := make([]string, len(pieces))
	for i := range pieces {
		chunkIDs[i] = fmt.Sprintf("%s_chunk_%d", job.DocumentID, i)
	}

	basePosition, err := s.index.Add(vectors, chunkIDs)
	if err != nil {
		return nil, err
	}
	if err := s.index.Save(); err != nil {
		return nil, err
	}

	chunks := make([]docModel.Chunk, len(pieces))
	for i, content := range pieces {
		position := basePosition + i
		chunks[i] = docModel.Chunk{
			ChunkID:        chunkIDs[i],
			DocumentID:     job.DocumentID,
			ChunkIndex:     i,
			Content:        content,
			VectorPosition: &position,
		}
	}
	return chunks, nil
}

func (s *service) executeMetadataStep(ctx context.Context, log *logger_i.Logger, job *jobModel.IngestJob, chunks []docModel.Chunk) error {
	logStep(job, jobModel.MetadataWrite, log)

	if err := s.chunkStore.InsertChunks(ctx, chunks); err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.chunkStore.UpdateDocumentStatus(ctx, job.DocumentID, docModel.StatusIndexed, &now)
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, question string) (docModel.CachedAnswer, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	return s.answerCache.Get(ctx, question)
}

func (s *service) executeQueryEmbeddingStep(ctx context.Context, log *logger_i.Logger, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query_embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeSearchStep(log *logger_i.Logger, queryVector []float32, topK int) ([]vectorindex.Match, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index_search", time.Since(start)) }()

	return s.index.Search(queryVector, topK)
}

// executeChunkLookupStep resolves matches back to chunk content. A chunk id
// the store doesn't know means the index and metadata drifted apart - skip
// it and log, the reset endpoint is the recovery path.
func (s *service) executeChunkLookupStep(ctx context.Context, log *logger_i.Logger, matches []vectorindex.Match) []docModel.Chunk {
	chunks := make([]docModel.Chunk, 0, len(matches))
	for _, match := range matches {
		chunk, found, err := s.chunkStore.GetChunk(ctx, match.ChunkID)
		if err != nil {
			log.Error("Chunk lookup failed", "chunkId", match.ChunkID, "error", err)
			continue
		}
		if !found {
			log.Warn("Index returned a chunk the store doesn't have", "chunkId", match.ChunkID)
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, question, contextText string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.GenerateAnswer(ctx, question, contextText)
}
