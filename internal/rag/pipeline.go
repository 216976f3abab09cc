package rag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
)

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Pipeline struct {
	store    *VectorStore
	splitter *Splitter
	embedder Embedder
	log      *zap.Logger
}

func NewPipeline(store *VectorStore, splitter *Splitter, embedder Embedder, log *zap.Logger) *Pipeline {
	return &Pipeline{store: store, splitter: splitter, embedder: embedder, log: log}
}

// ProcessPDF extracts, chunks, embeds and stores a PDF. It returns the number
// of chunks added.
func (p *Pipeline) ProcessPDF(ctx context.Context, r io.Reader, filename string) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filename, err)
	}

	text, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, httperr.ErrBusiness("no_text_extracted")
	}

	chunks := p.splitter.Split(text)
	if len(chunks) == 0 {
		return 0, httperr.ErrBusiness("no_text_extracted")
	}

	vectors, err := p.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", filename, err)
	}

	if err := p.store.Add(ctx, filename, chunks, vectors); err != nil {
		return 0, err
	}

	p.log.Info("pdf indexed", zap.String("file", filename), zap.Int("chunks", len(chunks)))
	return len(chunks), nil
}

// Search never fails; lookup problems are logged and yield no chunks.
func (p *Pipeline) Search(ctx context.Context, query string, k int) []string {
	if p.store.Len() == 0 {
		return nil
	}

	vectors, err := p.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		p.log.Warn("vector search failed", zap.Error(err))
		return nil
	}

	return p.store.Search(vectors[0], k)
}

func (p *Pipeline) RelevantContext(ctx context.Context, query string, k int) string {
	return strings.Join(p.Search(ctx, query, k), "\n\n")
}
