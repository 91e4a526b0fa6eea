package config

import (
	"log/slog"
	"os"
	"time"
)

// api keys come from the environment, never from source
var (
	GoogleEmbeddingAPIKey = os.Getenv("GOOGLE_API_KEY")
	GroqAPIKey            = os.Getenv("GROQ_API_KEY")
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//auth - bypass stays on until this sits behind a gateway
	NoAuthBypass = true
	AuthToken    = ""

	//retrieval core
	ChunkSize          = 500
	ChunkOverlap       = 50
	TopKResults        = 5
	BoundarySearchSpan = 100 //how far back we look for a sentence break when cutting a chunk

	//normalizer thresholds - anything below this is scanner noise, not a document
	MinMeaningfulChars = 50
	MinMeaningfulWords = 5

	//embeddings
	EmbeddingOutputDimensionality int32 = 384
	GoogleEmbeddingModel                = "gemini-embedding-001"

	//completion service - groq speaks the openai wire format
	GroqBaseURL                 = "https://api.groq.com/openai/v1"
	CompletionModelName         = "llama-3.3-70b-versatile"
	CompletionMaxTokens   int64 = 500
	CompletionTemperature       = 0.3 //low temp, we want factual answers not creative ones

	AnswerSystemPrompt = `You are a question-answering system.

STRICT RULES (must follow):
1. Use ONLY the exact information explicitly present in the provided context.
2. DO NOT invent or assume lecture numbers, slide numbers, section names, or document structure.
3. DO NOT reference lectures, slides, or sections unless they are explicitly written in the context.
4. If the answer is not clearly stated in the context, respond with: "Not found in the document."
5. Do NOT add explanations, citations, or metadata that are not present verbatim in the context.

Your answer must be grounded strictly in the text.`

	//uploads
	MaxUploadSize int64 = 50 << 20 //50mb
	UploadDir           = "storage/uploads"
	IndexDir            = "storage/index"
	DatabasePath        = "document_intelligence.db"

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second //ingestion is synchronous, embedding a big pdf takes a while
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//ingest job buffer limit
	BufferLimit = 100

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis answer cache
	redisHost          = "127.0.0.1"
	redisPort          = "6379"
	RedisAddr          = redisHost + ":" + redisPort
	RedisPassword      = ""
	RedisAnswerCacheDB = 0
	AnswerCacheTTL     = 24 * time.Hour
)
