package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/httpresp"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

const maxUploadBytes = 32 << 20

type pdfIngester interface {
	Execute(ctx context.Context, filename string, r io.Reader) (*models.Document, error)
}

type documentLister interface {
	Execute(ctx context.Context) ([]models.Document, error)
}

type DocumentHandler struct {
	ingest pdfIngester
	list   documentLister
}

func NewDocumentHandler(ingest pdfIngester, list documentLister) *DocumentHandler {
	return &DocumentHandler{ingest: ingest, list: list}
}

type UploadResult struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

// Upload indexes every file in the multipart "files[]" field. One bad file
// does not stop the others.
func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Expected a multipart form.")
		return
	}

	files := form.File["files[]"]
	if len(files) == 0 {
		files = form.File["files"]
	}
	if len(files) == 0 {
		httperr.BadRequest(c, "no_files", "No files uploaded.")
		return
	}

	results := make([]UploadResult, 0, len(files))
	for _, fh := range files {
		res := UploadResult{Filename: fh.Filename}

		f, err := fh.Open()
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		doc, err := h.ingest.Execute(c.Request.Context(), fh.Filename, f)
		f.Close()

		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
			res.Chunks = doc.Chunks
		}
		results = append(results, res)
	}

	httpresp.List(c, results)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, docs)
}
