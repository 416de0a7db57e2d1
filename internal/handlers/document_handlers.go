package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"rentledger/internal/documents"
	"rentledger/internal/models"
	"rentledger/internal/store"
)

// DocumentHandlers serves document metadata plus the blob upload/download
// paths.
type DocumentHandlers struct {
	store   *store.Store
	history *store.History
	blobs   documents.BlobStore
	logger  zerolog.Logger
}

func NewDocumentHandlers(st *store.Store, history *store.History, blobs documents.BlobStore, logger zerolog.Logger) *DocumentHandlers {
	return &DocumentHandlers{store: st, history: history, blobs: blobs, logger: logger}
}

func (h *DocumentHandlers) ListDocuments(c echo.Context) error {
	docs := h.store.Documents()
	kind := models.EntityKind(c.QueryParam("entity_kind"))
	entityID := c.QueryParam("entity_id")
	if kind != "" || entityID != "" {
		var refID uuid.UUID
		if entityID != "" {
			var err error
			if refID, err = uuid.Parse(entityID); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid entity_id")
			}
		}
		filtered := make([]models.Document, 0, len(docs))
		for _, d := range docs {
			if kind != "" && d.Ref.Kind != kind {
				continue
			}
			if entityID != "" && d.Ref.ID != refID {
				continue
			}
			filtered = append(filtered, d)
		}
		docs = filtered
	}
	return c.JSON(http.StatusOK, docs)
}

// Upload accepts a multipart form with a "file" part plus entity_kind and
// entity_id fields. The blob is written first; the metadata record is only
// created once the blob is durable.
func (h *DocumentHandlers) Upload(c echo.Context) error {
	kind := models.EntityKind(c.FormValue("entity_kind"))
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown entity kind")
	}
	entityID, err := uuid.Parse(c.FormValue("entity_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entity_id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read upload")
	}
	defer src.Close()

	storedName := fmt.Sprintf("%s%s", uuid.New(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	ctx := c.Request().Context()
	if err := h.blobs.Put(ctx, storedName, src, fileHeader.Size, contentType); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store file")
	}

	doc := models.Document{
		Ref:        models.EntityRef{Kind: kind, ID: entityID},
		FileName:   fileHeader.Filename,
		StoredName: storedName,
		Size:       fileHeader.Size,
	}
	if contentType != "" {
		doc.ContentType = &contentType
	}
	h.history.Checkpoint()
	created, err := h.store.AddDocument(ctx, doc)
	if err != nil {
		// Metadata failed; the blob is orphaned. Remove it best-effort.
		if rmErr := h.blobs.Delete(ctx, storedName); rmErr != nil {
			h.logger.Warn().Err(rmErr).Str("object", storedName).Msg("orphaned blob cleanup failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save document")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *DocumentHandlers) Download(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}
	var doc *models.Document
	for _, d := range h.store.Documents() {
		if d.ID == id {
			doc = &d
			break
		}
	}
	if doc == nil {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}

	reader, err := h.blobs.Get(c.Request().Context(), doc.StoredName)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "document content unavailable")
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	if doc.ContentType != nil {
		contentType = *doc.ContentType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Stream(http.StatusOK, contentType, reader)
}

// URL returns a short-lived direct link into the blob store so the UI can
// fetch large files without proxying them through this process.
func (h *DocumentHandlers) URL(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}
	var doc *models.Document
	for _, d := range h.store.Documents() {
		if d.ID == id {
			doc = &d
			break
		}
	}
	if doc == nil {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}

	url, err := h.blobs.PresignedURL(c.Request().Context(), doc.StoredName, 15*time.Minute)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build document url")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Delete removes the metadata record; the durable delete is the record, the
// blob removal afterwards is best-effort.
func (h *DocumentHandlers) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}
	h.history.Checkpoint()
	deleted, err := h.store.DeleteDocument(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete document")
	}
	if deleted != nil {
		if err := h.blobs.Delete(c.Request().Context(), deleted.StoredName); err != nil {
			h.logger.Warn().Err(err).Str("object", deleted.StoredName).Msg("blob delete failed")
		}
	}
	return c.NoContent(http.StatusNoContent)
}
