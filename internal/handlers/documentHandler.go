package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/adapter"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/adapter/utils"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/job"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/metrics"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/extract"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

var (
	handlerInstance *DocumentHandler //private singleton
	once            sync.Once
	logDH           *logger_i.Logger
	logRH           *logger_i.Logger
)

// DocumentStore is the slice of the metadata store the handlers need.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc docModel.Document) error
	GetDocument(ctx context.Context, documentID string) (docModel.Document, bool, error)
	Ping(ctx context.Context) error
}

type DocumentHandler struct {
	jobService *job.Service
	docStore   DocumentStore
	ragService rag.Service
}

func InitHandlers(jobService *job.Service, store DocumentStore, ragService rag.Service) {
	once.Do(func() {
		handlerInstance = &DocumentHandler{
			jobService: jobService,
			docStore:   store,
			ragService: ragService,
		}

		logDH = logger_i.NewLogger("DocumentHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logDH.Info("Starting document handler")
	})
}

// UploadHandler godoc
// @Summary      Upload a document for indexing
// @Description  Receives a file via multipart/form-data, runs the full ingest pipeline and responds once the document is searchable.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF, TXT, DOCX or RTF file to index"
// @Success      200  {object}  api.UploadResponse  "Document indexed"
// @Failure      400  {object}  api.ErrorResponse   "Unsupported type, too large, or no usable text"
// @Failure      500  {object}  api.ErrorResponse   "Indexing pipeline failure"
// @Router       /documents/upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getUploadDirectory()
	if errString != "" {
		logDH.Error("Couldn't get upload directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	if !extract.AllowedExtension(fileMetadata.Filename) {
		WriteErrorResponse(w, http.StatusBadRequest, fileMetadata.Filename, "Unsupported file type")
		return
	}

	documentID := utils.GetNewDocumentID()
	fileType := strings.ToLower(filepath.Ext(fileMetadata.Filename))
	storedPath := filepath.Join(targetDir, documentID+fileType)

	destinationFileWriter, err := os.Create(storedPath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, documentID, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, documentID, "Write error")
		return
	}

	doc := docModel.Document{
		DocumentID: documentID,
		Filename:   fileMetadata.Filename,
		FilePath:   storedPath,
		FileType:   fileType,
		FileSize:   fileMetadata.Size,
		Status:     docModel.StatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}
	if err := handlerInstance.docStore.CreateDocument(r.Context(), doc); err != nil {
		logDH.Error("Failed to create document row", "documentId", documentID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, documentID, "Storage error")
		return
	}

	result := handlerInstance.runIngest(r, doc)

	if result.Status != jobModel.JobStatusComplete {
		code := http.StatusInternalServerError
		message := "Document processing failed"
		// The file itself being unusable is the caller's problem
		if errors.Is(result.Err, rag.ErrEmptyDocument) || isInputFailure(result.FailedAt) {
			code = http.StatusBadRequest
			message = "Document contains no extractable text"
		}
		WriteErrorResponse(w, code, documentID, message)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(doc, result))
}

// GetStatusHandler godoc
// @Summary      Get document status
// @Description  Retrieves the indexing status of an uploaded document by its ID.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentStatusResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Router       /documents/status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	logDH.Debug("Get Status Request:", "URL path", r.URL.Path)

	doc, found, err := handlerInstance.docStore.GetDocument(r.Context(), idString)
	if err != nil {
		logDH.Error("Document lookup failed", "documentId", idString, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, idString, "Storage error")
		return
	}
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Document not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(doc))
}

// runIngest pushes the job through the worker pool and blocks until the
// pipeline reports back. The HTTP contract is synchronous; the pool is
// just the concurrency bound.
func (h *DocumentHandler) runIngest(r *http.Request, doc docModel.Document) jobModel.IngestResult {
	newJob := jobModel.IngestJob{
		DocumentID:  doc.DocumentID,
		Filename:    doc.Filename,
		FilePath:    doc.FilePath,
		FileType:    doc.FileType,
		TraceID:     r.Context().Value(config.TRACE_ID_KEY).(string),
		Done:        make(chan jobModel.IngestResult, 1),
		CurrentStep: jobModel.IngestInit,
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.jobService.JobChannel <- newJob //blocking send to prevent the system from being overwhelmed
	logDH.Info("Queued ingest job", "documentId", newJob.DocumentID)

	// Ingestion hits external systems and might take a while, so every
	// queued document nudges the dispatcher. Idle workers retire on their
	// own, so the pool shrinks back once the burst is over.
	atomic.AddInt64(&h.jobService.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	h.jobService.DispatcherChannel <- true

	select {
	case result := <-newJob.Done:
		return result
	case <-time.After(config.WriteTimeout - 10*time.Second):
		logDH.Error("Ingest did not finish before the response deadline", "documentId", newJob.DocumentID)
		return jobModel.IngestResult{
			Status:   jobModel.JobStatusError,
			FailedAt: newJob.CurrentStep,
			Err:      errors.New("processing timeout"),
		}
	}
}

func isInputFailure(step jobModel.InternalStatus) bool {
	switch step {
	case jobModel.ExtractionCall, jobModel.NormalizeCall, jobModel.ChunkingCall:
		return true
	}
	return false
}
