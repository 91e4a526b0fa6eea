package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/job"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	ProcessedCount int32
}

func (m *MockRagService) IngestDocument(ctx context.Context, j jobModel.IngestJob) jobModel.IngestResult {
	atomic.AddInt32(&m.ProcessedCount, 1)
	return jobModel.IngestResult{Status: jobModel.JobStatusComplete, NumChunks: 3}
}

func (m *MockRagService) AnswerQuestion(ctx context.Context, question string, topK int) docModel.QAOutcome {
	return docModel.QAOutcome{}
}

func (m *MockRagService) TotalVectors() int { return 0 }

func (m *MockRagService) ResetIndex(ctx context.Context) error { return nil }

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.IngestJob, 10),
		DispatcherChannel: make(chan bool, 10),
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job and reports back", func(t *testing.T) {
		testJob := jobModel.IngestJob{
			DocumentID: "doc_test01",
			Done:       make(chan jobModel.IngestResult, 1),
		}
		jobSvc.JobChannel <- testJob

		select {
		case result := <-testJob.Done:
			if result.Status != jobModel.JobStatusComplete {
				t.Errorf("Expected complete result, got %s", result.Status)
			}
			if result.NumChunks != 3 {
				t.Errorf("Expected 3 chunks, got %d", result.NumChunks)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Worker never delivered the ingest result")
		}

		processed := atomic.LoadInt32(&mockRag.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 2) // Must be > 1 based on the retire logic
	previousTimeout := idleWorkerTimeout
	idleWorkerTimeout = 50 * time.Millisecond
	defer func() { idleWorkerTimeout = previousTimeout }()
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.IngestJob),
	}
	InitServices(jobSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually, then poll until it retires
	createWorker()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt64(&currentWorkerCount) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", atomic.LoadInt64(&currentWorkerCount))
}
