package api

import "time"

type UploadResponse struct {
	DocumentID string `json:"document_id" example:"doc_3fa85f64b8ee"`
	Filename   string `json:"filename" example:"report.pdf"`
	Status     string `json:"status" example:"indexed"`
	Message    string `json:"message,omitempty"`
	NumChunks  int    `json:"num_chunks,omitempty"`
}

type DocumentStatusResponse struct {
	DocumentID string     `json:"document_id" example:"doc_3fa85f64b8ee"`
	Filename   string     `json:"filename" example:"report.pdf"`
	Status     string     `json:"status" example:"indexed"`
	CreatedAt  time.Time  `json:"created_at"`
	IndexedAt  *time.Time `json:"indexed_at,omitempty"`
}

type QuestionResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	NumSources int      `json:"num_sources" example:"2"`
	Confidence string   `json:"confidence" example:"high"`
}

type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	TotalVectors  int    `json:"total_vectors" example:"1280"`
	DatabaseOK    bool   `json:"database_ok"`
	LLMConfigured bool   `json:"llm_configured"`
}

type ResetResponse struct {
	Status  string `json:"status" example:"reset"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Unsupported file type"`
	Id      string `json:"id,omitempty"`
}

// requests---------------------

type QuestionRequest struct {
	Question   string `json:"question" validate:"required"`
	MaxSources int    `json:"max_sources,omitempty"`
}
