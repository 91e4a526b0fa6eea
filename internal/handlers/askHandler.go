package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/adapter"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/api"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
)

// AskHandler godoc
// @Summary      Ask a question over the indexed documents
// @Description  Embeds the question, retrieves the closest chunks and generates a grounded answer with source document ids.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuestionRequest  true  "The question and optional max_sources"
// @Success      200      {object}  api.QuestionResponse
// @Failure      400      {object}  api.ErrorResponse  "Empty question or malformed body"
// @Router       /documents/ask [post]
func AskHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.QuestionRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the Ask handler reader :", err)
		}
	}(request.Body)

	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Ask Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}

	question := strings.TrimSpace(requestData.Question)
	if question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}

	outcome := handlerInstance.ragService.AnswerQuestion(request.Context(), question, requestData.MaxSources)
	writeJsonResponse(w, http.StatusOK, adapter.ToQuestionResponse(outcome))
}

// HealthHandler godoc
// @Summary      Service health
// @Description  Reports index size and metadata store reachability.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	databaseOK := handlerInstance.docStore.Ping(r.Context()) == nil

	status := "ok"
	if !databaseOK {
		status = "degraded"
	}
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:        status,
		TotalVectors:  handlerInstance.ragService.TotalVectors(),
		DatabaseOK:    databaseOK,
		LLMConfigured: config.GroqAPIKey != "",
	})
}

// ResetHandler godoc
// @Summary      Reset the index
// @Description  Drops all vectors, persisted index files and metadata rows. The recovery path when the index and metadata drift apart.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  api.ResetResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/reset [post]
func ResetHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	if err := handlerInstance.ragService.ResetIndex(r.Context()); err != nil {
		logRH.Error("Index reset failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Reset failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.ResetResponse{
		Status:  "reset",
		Message: "Index and document metadata cleared",
	})
}
