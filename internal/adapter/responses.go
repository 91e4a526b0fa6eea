package adapter

import (
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/api"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
)

func ToUploadResponse(doc docModel.Document, result jobModel.IngestResult) api.UploadResponse {
	status := string(docModel.StatusIndexed)
	message := "Document uploaded and indexed successfully"
	if result.Status != jobModel.JobStatusComplete {
		status = string(docModel.StatusFailed)
		message = "Document processing failed"
	}
	return api.UploadResponse{
		DocumentID: doc.DocumentID,
		Filename:   doc.Filename,
		Status:     status,
		Message:    message,
		NumChunks:  result.NumChunks,
	}
}

func ToStatusResponse(doc docModel.Document) api.DocumentStatusResponse {
	return api.DocumentStatusResponse{
		DocumentID: doc.DocumentID,
		Filename:   doc.Filename,
		Status:     string(doc.Status),
		CreatedAt:  doc.CreatedAt,
		IndexedAt:  doc.IndexedAt,
	}
}

// ToQuestionResponse flattens an outcome for the API. The caller can't
// tell a canned answer from a real one by shape - confidence is the hint.
func ToQuestionResponse(outcome docModel.QAOutcome) api.QuestionResponse {
	sources := outcome.Sources
	if sources == nil {
		sources = []string{} //never null in the payload
	}
	return api.QuestionResponse{
		Answer:     outcome.Answer,
		Sources:    sources,
		NumSources: outcome.NumSources(),
		Confidence: ConfidenceFor(outcome.NumSources()),
	}
}

// ConfidenceFor is a source-count heuristic, nothing smarter.
func ConfidenceFor(numSources int) string {
	switch {
	case numSources >= 3:
		return "high"
	case numSources >= 1:
		return "medium"
	default:
		return "low"
	}
}

func BadRequest(id string, error string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: error,
		Id:      id,
	}
}
