package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

// Store holds the relational side of the system: Document provenance rows
// and Chunk content rows, both keyed by their string ids. The vector index
// decides what is searchable; this store is the source of truth for what a
// chunk actually says.
type Store struct {
	db     *sql.DB
	logger *logger_i.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id TEXT UNIQUE NOT NULL,
	filename    TEXT NOT NULL,
	file_path   TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	file_size   INTEGER NOT NULL,
	status      TEXT NOT NULL DEFAULT 'processing',
	created_at  TEXT NOT NULL,
	indexed_at  TEXT
);
CREATE INDEX IF NOT EXISTS idx_documents_document_id ON documents(document_id);

CREATE TABLE IF NOT EXISTS document_chunks (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	chunk_id        TEXT UNIQUE NOT NULL,
	document_id     TEXT NOT NULL,
	chunk_index     INTEGER NOT NULL,
	content         TEXT NOT NULL,
	vector_position INTEGER,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_chunk_id ON document_chunks(chunk_id);
CREATE INDEX IF NOT EXISTS idx_chunks_document_id ON document_chunks(document_id);
`

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger_i.NewLogger("DocStore"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) CreateDocument(ctx context.Context, doc docModel.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (document_id, filename, file_path, file_type, file_size, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.DocumentID, doc.Filename, doc.FilePath, doc.FileType, doc.FileSize,
		string(doc.Status), doc.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.DocumentID, err)
	}
	return nil
}

func (s *Store) UpdateDocumentPath(ctx context.Context, documentID, path string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET file_path = ? WHERE document_id = ?`, path, documentID)
	return err
}

// UpdateDocumentStatus moves a document to indexed or failed. There is no
// path back to processing.
func (s *Store) UpdateDocumentStatus(ctx context.Context, documentID string, status docModel.DocumentStatus, indexedAt *time.Time) error {
	var stamp interface{}
	if indexedAt != nil {
		stamp = indexedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET status = ?, indexed_at = ? WHERE document_id = ?`,
		string(status), stamp, documentID)
	if err != nil {
		return fmt.Errorf("updating document %s status: %w", documentID, err)
	}
	return nil
}

func (s *Store) GetDocument(ctx context.Context, documentID string) (docModel.Document, bool, error) {
	var doc docModel.Document
	var status, createdAt string
	var indexedAt sql.NullString

	row := s.db.QueryRowContext(ctx,
		`SELECT document_id, filename, file_path, file_type, file_size, status, created_at, indexed_at
		 FROM documents WHERE document_id = ?`, documentID)
	err := row.Scan(&doc.DocumentID, &doc.Filename, &doc.FilePath, &doc.FileType,
		&doc.FileSize, &status, &createdAt, &indexedAt)
	if err == sql.ErrNoRows {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, err
	}

	doc.Status = docModel.DocumentStatus(status)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		doc.CreatedAt = t
	}
	if indexedAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, indexedAt.String); err == nil {
			doc.IndexedAt = &t
		}
	}
	return doc, true, nil
}

// InsertChunks writes a whole batch in one transaction. Chunks are
// immutable after this - there is no update path.
func (s *Store) InsertChunks(ctx context.Context, chunks []docModel.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO document_chunks (chunk_id, document_id, chunk_index, content, vector_position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, chunk := range chunks {
		var pos interface{}
		if chunk.VectorPosition != nil {
			pos = *chunk.VectorPosition
		}
		if _, err := stmt.ExecContext(ctx, chunk.ChunkID, chunk.DocumentID, chunk.ChunkIndex, chunk.Content, pos, now); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ChunkID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) GetChunk(ctx context.Context, chunkID string) (docModel.Chunk, bool, error) {
	var chunk docModel.Chunk
	var pos sql.NullInt64

	row := s.db.QueryRowContext(ctx,
		`SELECT chunk_id, document_id, chunk_index, content, vector_position
		 FROM document_chunks WHERE chunk_id = ?`, chunkID)
	err := row.Scan(&chunk.ChunkID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &pos)
	if err == sql.ErrNoRows {
		return chunk, false, nil
	}
	if err != nil {
		return chunk, false, err
	}
	if pos.Valid {
		p := int(pos.Int64)
		chunk.VectorPosition = &p
	}
	return chunk, true, nil
}

// CountChunks exists for desync detection: compare against the vector
// index total. A difference means an ingest died between index persist and
// metadata commit - recovery is a full reindex.
func (s *Store) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_chunks`).Scan(&count)
	return count, err
}

// DeleteAll clears both tables, used by the full reindex path alongside an
// index reset.
func (s *Store) DeleteAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_chunks`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}
	s.logger.Info("Cleared all document and chunk rows")
	return tx.Commit()
}
