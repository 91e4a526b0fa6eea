package docModel

import "time"

type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusIndexed    DocumentStatus = "indexed"
	StatusFailed     DocumentStatus = "failed"
)

// Document is the provenance record for one uploaded file. Status only ever
// moves processing -> indexed or processing -> failed, it never reverts.
type Document struct {
	DocumentID string         `json:"document_id"`
	Filename   string         `json:"filename"`
	FilePath   string         `json:"file_path"`
	FileType   string         `json:"file_type"`
	FileSize   int64          `json:"file_size"`
	Status     DocumentStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	IndexedAt  *time.Time     `json:"indexed_at,omitempty"`
}

// Chunk is the atomic unit of indexing and retrieval. Immutable once written,
// deleted only by a full index reset.
type Chunk struct {
	ChunkID        string `json:"chunk_id"`
	DocumentID     string `json:"document_id"`
	ChunkIndex     int    `json:"chunk_index"`
	Content        string `json:"content"`
	VectorPosition *int   `json:"vector_position,omitempty"` //position in the vector index, set once persisted
}

// OutcomeKind tells a caller whether an answer is the real thing or one of
// the canned degraded responses. The user-facing payload looks the same
// either way - that is deliberate - but tests and the cache need to know.
type OutcomeKind string

const (
	OutcomeAnswered       OutcomeKind = "answered"
	OutcomeNoMatches      OutcomeKind = "no_matches"      //index had nothing close enough, or was empty
	OutcomeMissingContent OutcomeKind = "missing_content" //index returned ids the metadata store doesn't know
	OutcomeDegraded       OutcomeKind = "degraded"        //an external call failed, answer is an apology
)

type QAOutcome struct {
	Kind    OutcomeKind `json:"kind"`
	Answer  string      `json:"answer"`
	Sources []string    `json:"sources"` //distinct document ids, first-appearance order after context sorting
}

func (o QAOutcome) NumSources() int {
	return len(o.Sources)
}

// CachedAnswer is what the answer cache stores per question.
type CachedAnswer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
