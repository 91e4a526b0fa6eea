package vectorindex

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/metrics"
)

// On-disk layout: a little-endian binary vector file plus a JSON chunk-id
// file of the same cardinality. The pair is rewritten whole on every save -
// write amplification is the accepted cost of a dead simple recovery model.
const (
	vectorFileName = "document_index.vec"
	idsFileName    = "document_chunk_ids.json"

	fileMagic   uint32 = 0x56494458 // "VIDX"
	fileVersion uint32 = 1
)

func (idx *Index) setPaths(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	idx.vectorPath = filepath.Join(dir, vectorFileName)
	idx.idsPath = filepath.Join(dir, idsFileName)
	return nil
}

// Save persists the index and the id mapping. A save/load round trip must
// reproduce search results bit for bit, which float32 + little endian gives
// us for free.
func (idx *Index) Save() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.saveLocked()
}

// saveLocked assumes the caller holds at least a read lock.
func (idx *Index) saveLocked() error {
	if err := idx.writeVectors(); err != nil {
		return fmt.Errorf("writing vector file: %w", err)
	}
	if err := idx.writeIDs(); err != nil {
		return fmt.Errorf("writing id file: %w", err)
	}
	idx.logger.Debug("Index persisted", "vectors", len(idx.vectors), "path", idx.vectorPath)
	return nil
}

func (idx *Index) writeVectors() error {
	tmp, err := os.CreateTemp(filepath.Dir(idx.vectorPath), vectorFileName+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	header := []uint32{fileMagic, fileVersion, uint32(idx.dimension), uint32(len(idx.vectors))}
	for _, h := range header {
		if err := binary.Write(w, binary.LittleEndian, h); err != nil {
			tmp.Close()
			return err
		}
	}
	for _, v := range idx.vectors {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), idx.vectorPath)
}

func (idx *Index) writeIDs() error {
	ids := idx.chunkIDs
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(idx.idsPath), idsFileName+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), idx.idsPath)
}

// load reconstructs state from disk. Missing files mean a fresh index;
// corrupt files also mean a fresh index, because refusing to start over a
// damaged cache-like artifact would be worse than rebuilding it.
func (idx *Index) load() {
	vectors, dim, err := idx.readVectors()
	if os.IsNotExist(err) {
		idx.logger.Info("No existing index found, starting empty")
		return
	}
	if err != nil {
		idx.logger.Error("Failed to load vector file, starting empty", "error", err)
		return
	}
	if dim != idx.dimension {
		idx.logger.Error("Stored index dimension mismatch, starting empty", "stored", dim, "expected", idx.dimension)
		return
	}

	ids, err := idx.readIDs()
	if err != nil {
		idx.logger.Error("Failed to load id file, starting empty", "error", err)
		return
	}
	if len(ids) != len(vectors) {
		idx.logger.Error("Vector/id cardinality mismatch on disk, starting empty", "vectors", len(vectors), "ids", len(ids))
		return
	}

	idx.vectors = vectors
	idx.chunkIDs = ids
	metrics.SetIndexedVectorCount(len(vectors))
	idx.logger.Info("Index loaded", "vectors", len(vectors))
}

func (idx *Index) readVectors() ([][]float32, int, error) {
	f, err := os.Open(idx.vectorPath)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic, version, dim, count uint32
	for _, field := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return nil, 0, fmt.Errorf("reading header: %w", err)
		}
	}
	if magic != fileMagic {
		return nil, 0, fmt.Errorf("bad magic %#x", magic)
	}
	if version != fileVersion {
		return nil, 0, fmt.Errorf("unsupported version %d", version)
	}

	vectors := make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		v := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, 0, fmt.Errorf("reading vector %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, int(dim), nil
}

func (idx *Index) readIDs() ([]string, error) {
	data, err := os.ReadFile(idx.idsPath)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
