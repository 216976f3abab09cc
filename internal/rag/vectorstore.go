package rag

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

type entry struct {
	source  string
	content string
	vector  []float32
	norm    float64
}

// VectorStore persists chunks in document_chunks and answers similarity
// queries from an in-memory copy.
type VectorStore struct {
	db *gorm.DB

	mu      sync.RWMutex
	entries []entry
}

func NewVectorStore(db *gorm.DB) *VectorStore {
	return &VectorStore{db: db}
}

// Load replaces the cache with every persisted chunk.
func (s *VectorStore) Load(ctx context.Context) error {
	var rows []models.DocumentChunk
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}

	entries := make([]entry, 0, len(rows))
	for _, r := range rows {
		v := decodeVector(r.Embedding)
		entries = append(entries, entry{source: r.Source, content: r.Content, vector: v, norm: norm(v)})
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *VectorStore) Add(ctx context.Context, source string, contents []string, vectors [][]float32) error {
	if len(contents) != len(vectors) {
		return fmt.Errorf("add chunks: %d contents for %d vectors", len(contents), len(vectors))
	}
	if len(contents) == 0 {
		return nil
	}

	rows := make([]models.DocumentChunk, len(contents))
	for i := range contents {
		rows[i] = models.DocumentChunk{
			Source:    source,
			Position:  i,
			Content:   contents[i],
			Embedding: encodeVector(vectors[i]),
		}
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&rows, 100).Error; err != nil {
		return fmt.Errorf("save chunks: %w", err)
	}

	s.mu.Lock()
	for i := range contents {
		s.entries = append(s.entries, entry{
			source:  source,
			content: contents[i],
			vector:  vectors[i],
			norm:    norm(vectors[i]),
		})
	}
	s.mu.Unlock()
	return nil
}

type match struct {
	content string
	score   float64
}

// Search returns the contents of the k chunks closest to query by cosine
// similarity.
func (s *VectorStore) Search(query []float32, k int) []string {
	if k <= 0 {
		return nil
	}
	qn := norm(query)
	if qn == 0 {
		return nil
	}

	s.mu.RLock()
	matches := make([]match, 0, len(s.entries))
	for _, e := range s.entries {
		if e.norm == 0 || len(e.vector) != len(query) {
			continue
		}
		matches = append(matches, match{content: e.content, score: dot(query, e.vector) / (qn * e.norm)})
	}
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.content
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}

func encodeVector(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
