package docstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/data/docstore"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
)

func newStore(t *testing.T) *docstore.Store {
	t.Helper()
	store, err := docstore.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocumentLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	doc := docModel.Document{
		DocumentID: "doc_abc123def456",
		Filename:   "report.pdf",
		FilePath:   "storage/uploads/doc_abc123def456.pdf",
		FileType:   ".pdf",
		FileSize:   4096,
		Status:     docModel.StatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}

	t.Run("Missing document reads as not found", func(t *testing.T) {
		_, found, err := store.GetDocument(ctx, "doc_nope")
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("unknown id should not be found")
		}
	})

	t.Run("Create and get roundtrip", func(t *testing.T) {
		if err := store.CreateDocument(ctx, doc); err != nil {
			t.Fatalf("CreateDocument failed: %v", err)
		}

		got, found, err := store.GetDocument(ctx, doc.DocumentID)
		if err != nil || !found {
			t.Fatalf("document not found after insert: found=%v err=%v", found, err)
		}
		if got.Filename != doc.Filename || got.FileSize != doc.FileSize {
			t.Errorf("roundtrip mismatch: got %+v", got)
		}
		if got.Status != docModel.StatusProcessing {
			t.Errorf("fresh document should be processing, got %s", got.Status)
		}
		if got.IndexedAt != nil {
			t.Error("indexed_at must be empty before indexing")
		}
	})

	t.Run("Status update to indexed sets the timestamp", func(t *testing.T) {
		now := time.Now().UTC()
		if err := store.UpdateDocumentStatus(ctx, doc.DocumentID, docModel.StatusIndexed, &now); err != nil {
			t.Fatalf("UpdateDocumentStatus failed: %v", err)
		}

		got, _, err := store.GetDocument(ctx, doc.DocumentID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != docModel.StatusIndexed {
			t.Errorf("expected indexed, got %s", got.Status)
		}
		if got.IndexedAt == nil {
			t.Fatal("indexed_at should be set")
		}
		if got.IndexedAt.Sub(now).Abs() > time.Second {
			t.Errorf("indexed_at drifted: %v vs %v", got.IndexedAt, now)
		}
	})

	t.Run("Duplicate document id is rejected", func(t *testing.T) {
		if err := store.CreateDocument(ctx, doc); err == nil {
			t.Error("inserting the same document id twice should fail")
		}
	})
}

func TestChunkStorage(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	pos0, pos1 := 0, 1
	chunks := []docModel.Chunk{
		{ChunkID: "doc_x_chunk_0", DocumentID: "doc_x", ChunkIndex: 0, Content: "first part", VectorPosition: &pos0},
		{ChunkID: "doc_x_chunk_1", DocumentID: "doc_x", ChunkIndex: 1, Content: "second part", VectorPosition: &pos1},
	}

	if err := store.InsertChunks(ctx, chunks); err != nil {
		t.Fatalf("InsertChunks failed: %v", err)
	}

	t.Run("Get chunk by id", func(t *testing.T) {
		got, found, err := store.GetChunk(ctx, "doc_x_chunk_1")
		if err != nil || !found {
			t.Fatalf("chunk not found: found=%v err=%v", found, err)
		}
		if got.Content != "second part" || got.ChunkIndex != 1 {
			t.Errorf("roundtrip mismatch: %+v", got)
		}
		if got.VectorPosition == nil || *got.VectorPosition != 1 {
			t.Errorf("vector position lost: %v", got.VectorPosition)
		}
	})

	t.Run("Count matches inserts", func(t *testing.T) {
		count, err := store.CountChunks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if count != 2 {
			t.Errorf("expected 2 chunks, got %d", count)
		}
	})

	t.Run("DeleteAll clears everything", func(t *testing.T) {
		if err := store.DeleteAll(ctx); err != nil {
			t.Fatalf("DeleteAll failed: %v", err)
		}
		count, err := store.CountChunks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("expected empty table, got %d rows", count)
		}
		if _, found, _ := store.GetChunk(ctx, "doc_x_chunk_0"); found {
			t.Error("chunk should be gone after DeleteAll")
		}
	})
}
