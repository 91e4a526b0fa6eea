package jobModel

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	ExtractionCall   InternalStatus = "Extraction"
	NormalizeCall    InternalStatus = "Normalize"
	ChunkingCall     InternalStatus = "Chunking"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	IndexWrite       InternalStatus = "IndexWrite"
	MetadataWrite    InternalStatus = "MetadataWrite"
	Complete         InternalStatus = "Complete"
	Error            InternalStatus = "Error"
)

// IngestJob is one upload travelling through the worker pool. The handler
// that created it blocks on Done, so the HTTP contract stays synchronous
// while the pool bounds how many pipelines run at once.
type IngestJob struct {
	DocumentID  string
	Filename    string
	FilePath    string
	FileType    string
	TraceID     string
	Done        chan IngestResult //buffered 1, worker never blocks on it
	CurrentStep InternalStatus
}

type IngestResult struct {
	Status    JobStatus
	NumChunks int
	FailedAt  InternalStatus
	Err       error
}
