package vectorindex

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/metrics"
)

const testDim = 4

func vec(values ...float32) []float32 {
	v := make([]float32, testDim)
	copy(v, values)
	return v
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(testDim, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return idx
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx := newTestIndex(t)

	matches, err := idx.Search(vec(1, 2, 3, 4), 5)
	if err != nil {
		t.Fatalf("search on empty index should not error, got %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestAddThenSearch_ExactMatchIsTop(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Add(
		[][]float32{vec(1, 0, 0, 0), vec(0, 1, 0, 0), vec(0, 0, 1, 0)},
		[]string{"doc_a_chunk_0", "doc_a_chunk_1", "doc_a_chunk_2"},
	)
	if err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search(vec(0, 1, 0, 0), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].ChunkID != "doc_a_chunk_1" {
		t.Errorf("expected exact vector as top match, got %s", matches[0].ChunkID)
	}
	if math.Abs(matches[0].Distance) > 1e-9 {
		t.Errorf("exact match should have distance 0, got %f", matches[0].Distance)
	}
	if matches[0].Distance > matches[1].Distance || matches[1].Distance > matches[2].Distance {
		t.Error("matches must be ordered by ascending distance")
	}
}

func TestSearch_KClamped(t *testing.T) {
	idx := newTestIndex(t)

	if _, err := idx.Add([][]float32{vec(1), vec(2)}, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search(vec(1), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Errorf("k should clamp to stored count, got %d matches", len(matches))
	}
}

func TestAdd_CountsAccumulate(t *testing.T) {
	idx := newTestIndex(t)

	for i := 0; i < 3; i++ {
		base, err := idx.Add(
			[][]float32{vec(float32(i)), vec(float32(i) + 0.5)},
			[]string{"x", "y"},
		)
		if err != nil {
			t.Fatal(err)
		}
		if base != i*2 {
			t.Errorf("add %d returned base %d, want %d", i, base, i*2)
		}
	}
	if got := idx.TotalVectors(); got != 6 {
		t.Errorf("expected 6 vectors after three adds of two, got %d", got)
	}
}

func TestAdd_RejectsWithoutPartialInsert(t *testing.T) {
	idx := newTestIndex(t)

	if _, err := idx.Add([][]float32{vec(1), vec(2)}, []string{"only-one"}); err == nil {
		t.Fatal("mismatched batch lengths must be rejected")
	}
	if _, err := idx.Add([][]float32{{1, 2}}, []string{"wrong-dim"}); err == nil {
		t.Fatal("wrong dimension must be rejected")
	}
	if got := idx.TotalVectors(); got != 0 {
		t.Errorf("rejected batches must not leave partial state, count = %d", got)
	}
}

func TestVectorGaugeTracksMutations(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(testDim, dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := idx.Add([][]float32{vec(1), vec(2)}, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.IndexedVectorCount); got != 2 {
		t.Errorf("gauge after add = %v, want 2", got)
	}

	if err := idx.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := New(testDim, dir); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.IndexedVectorCount); got != 2 {
		t.Errorf("gauge after reload = %v, want 2", got)
	}

	if err := idx.Reset(); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.IndexedVectorCount); got != 0 {
		t.Errorf("gauge after reset = %v, want 0", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(testDim, dir)
	if err != nil {
		t.Fatal(err)
	}

	vectors := [][]float32{vec(0.1, 0.2, 0.3, 0.4), vec(0.9, 0.8, 0.7, 0.6), vec(0.5, 0.5, 0.5, 0.5)}
	ids := []string{"c0", "c1", "c2"}
	if _, err := idx.Add(vectors, ids); err != nil {
		t.Fatal(err)
	}
	if err := idx.Save(); err != nil {
		t.Fatal(err)
	}

	query := vec(0.45, 0.55, 0.5, 0.52)
	before, err := idx.Search(query, 3)
	if err != nil {
		t.Fatal(err)
	}

	reloaded, err := New(testDim, dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.TotalVectors(); got != 3 {
		t.Fatalf("reloaded index has %d vectors, want 3", got)
	}

	after, err := reloaded.Search(query, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if before[i].ChunkID != after[i].ChunkID {
			t.Errorf("result %d chunk id differs after reload: %s vs %s", i, before[i].ChunkID, after[i].ChunkID)
		}
		if before[i].Distance != after[i].Distance {
			t.Errorf("result %d distance differs after reload: %v vs %v", i, before[i].Distance, after[i].Distance)
		}
	}
}

func TestLoad_DimensionMismatchStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(testDim, dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Add([][]float32{vec(1)}, []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Save(); err != nil {
		t.Fatal(err)
	}

	other, err := New(testDim+1, dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := other.TotalVectors(); got != 0 {
		t.Errorf("mismatched stored dimension should load as empty, got %d vectors", got)
	}
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(testDim, dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Add([][]float32{vec(1), vec(2)}, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Reset(); err != nil {
		t.Fatal(err)
	}
	if got := idx.TotalVectors(); got != 0 {
		t.Errorf("reset should empty the index, got %d", got)
	}

	//reset persists the empty state, a reload must not resurrect vectors
	reloaded, err := New(testDim, dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.TotalVectors(); got != 0 {
		t.Errorf("reloaded index after reset should be empty, got %d", got)
	}
}
