// @title           Document Intelligence RAG API
// @version         1.0
// @description     Upload documents, index them into a vector store, and ask grounded questions over them.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/data/answercache"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/data/docstore"
	jobmodel "github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/handlers"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/job"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/mcpserver"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/embedding/googleEmbedding"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/extract"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/llm/groq"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/textproc"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/vectorindex"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/server"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/worker"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

var (
	listenAddr        string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve the ask tool over MCP stdio instead of HTTP")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.IngestJob, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	//metadata store
	docStore, err := docstore.New(config.DatabasePath)
	if err != nil {
		logger.Error("Could not open the document store. Shutting down.", "error", err)
		return
	}
	defer docStore.Close()

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	llmProvider := groq.GetGroqClient(config.GroqAPIKey, config.CompletionModelName)

	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	index, err := vectorindex.New(embeddingService.Dimension(), config.IndexDir)
	if err != nil {
		logger.Error("Could not open the vector index. Shutting down.", "error", err)
		return
	}

	chunker, err := textproc.NewChunker(config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		logger.Error("Bad chunker configuration. Shutting down.", "error", err)
		return
	}

	//answer cache - redis preferred, in-memory fallback
	var answerCache rag.AnswerCache
	if redisCache := answercache.GetRedisAnswerCache(serviceContext); redisCache != nil {
		answerCache = redisCache
	} else {
		logger.Error("Redis is offline, falling back to in-memory answer cache")
		answerCache = answercache.InitInMemoryAnswerCache()
	}

	ragService := rag.NewService(extract.NewFileExtractor(), chunker, embeddingService, index, llmProvider, docStore, answerCache)

	if mcpMode {
		if err := mcpserver.NewServer(ragService).Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	handlers.InitHandlers(service, docStore, ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
