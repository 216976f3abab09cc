package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-assistant/internal/audit"
	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/storage"
	"github.com/BruksfildServices01/booking-assistant/internal/metrics"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

const (
	StatusIndexed = "indexed"
	StatusFailed  = "failed"
)

type processor interface {
	ProcessPDF(ctx context.Context, r io.Reader, filename string) (int, error)
}

type IngestPDF struct {
	db       *gorm.DB
	store    storage.Store
	pipeline processor
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewIngestPDF(
	db *gorm.DB,
	store storage.Store,
	pipeline processor,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *IngestPDF {
	return &IngestPDF{
		db:       db,
		store:    store,
		pipeline: pipeline,
		audit:    audit,
		log:      log,
	}
}

// Execute stores the raw upload, indexes its text and records the outcome.
// The returned document carries the chunk count.
func (uc *IngestPDF) Execute(
	ctx context.Context,
	filename string,
	r io.Reader,
) (*models.Document, error) {

	name := filepath.Base(strings.TrimSpace(filename))
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return nil, httperr.ErrBusiness("invalid_file_type")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	key := fmt.Sprintf("documents/%s-%s", uuid.NewString(), name)
	if err := uc.store.Put(ctx, key, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	doc := &models.Document{
		Filename:   name,
		StorageKey: key,
		SizeBytes:  int64(len(data)),
	}

	chunks, procErr := uc.pipeline.ProcessPDF(ctx, bytes.NewReader(data), name)
	if procErr != nil {
		doc.Status = StatusFailed
		doc.Error = procErr.Error()
		metrics.IncDocument(StatusFailed)
	} else {
		doc.Status = StatusIndexed
		doc.Chunks = chunks
		metrics.IncDocument(StatusIndexed)
	}

	if err := uc.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}

	if procErr != nil {
		uc.log.Warn("pdf ingestion failed", zap.String("file", name), zap.Error(procErr))
		return doc, procErr
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "document_ingested",
		Entity:   "document",
		EntityID: &doc.ID,
		Metadata: map[string]any{
			"filename": name,
			"chunks":   chunks,
		},
	})

	return doc, nil
}

type ListDocuments struct {
	db *gorm.DB
}

func NewListDocuments(db *gorm.DB) *ListDocuments {
	return &ListDocuments{db: db}
}

func (uc *ListDocuments) Execute(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := uc.db.WithContext(ctx).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
