package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	jobmodel "github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/metrics"
)

func executeJob(job jobmodel.IngestJob) {
	start := time.Now()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceID)
	ctx, cancel := context.WithTimeout(ctxTrace, 120*time.Second)
	defer cancel()
	logger.Debug("Processing ingest job:", "document Id:", job.DocumentID)

	job.CurrentStep = jobmodel.IngestInit
	result := _ragService.IngestDocument(ctx, job)

	metrics.CaptureJobMetrics(string(result.Status), time.Since(start))

	// The upload handler is blocked on this channel. Buffered, but guard
	// anyway - if the handler already gave up we just drop the result.
	select {
	case job.Done <- result:
	default:
		logger.Warn("No one waiting for ingest result", "document Id:", job.DocumentID)
	}
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}
