// internal/app/features/gallery/handler.go

// Package gallery manages each user's photo gallery: multipart image
// uploads into object storage plus the usual list and delete.
package gallery

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/store/gallery"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single image upload.
const maxUploadBytes = 10 << 20 // 10 MiB

// Handler is the shared dependency container for the gallery.
type Handler struct {
	Images  *gallerystore.Store
	Storage storage.Store
	Log     *zap.Logger
}

// NewHandler constructs the gallery Handler.
func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Images:  gallerystore.New(db),
		Storage: store,
		Log:     logger,
	}
}

// HandleUpload accepts a multipart form with an "image" file part and
// an optional "caption" field.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid or oversized upload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, `missing "image" file field`)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageType(contentType) {
		httpapi.Error(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	info, err := uploadImage(ctx, h.Storage, "gallery", header.Filename, file, header.Size, contentType)
	if err != nil {
		h.Log.Error("gallery upload failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	img, err := h.Images.Create(ctx, models.GalleryImage{
		UserID:      ident.UserID,
		Caption:     sanitize.Text(r.FormValue("caption")),
		StoragePath: info.Path,
		URL:         h.Storage.URL(info.Path),
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
	})
	if err != nil {
		// Keep storage consistent with the database.
		if delErr := h.Storage.Delete(ctx, info.Path); delErr != nil {
			h.Log.Error("orphaned upload cleanup failed", zap.String("path", info.Path), zap.Error(delErr))
		}
		h.Log.Error("gallery record create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	httpapi.Created(w, "image uploaded", map[string]any{"image": img})
}

// HandleList returns the caller's gallery, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Images.ListForUser(ctx, ident.UserID)
	if err != nil {
		h.Log.Error("gallery list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list images")
		return
	}
	httpapi.OK(w, "images retrieved", map[string]any{"images": rows})
}

// HandleDelete removes the image record and its stored file.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "imageID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid image id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	img, err := h.Images.GetOwned(ctx, id, ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "image not found")
			return
		}
		h.Log.Error("gallery load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete image")
		return
	}

	if _, err := h.Images.Delete(ctx, id, ident.UserID); err != nil {
		h.Log.Error("gallery delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete image")
		return
	}
	if err := h.Storage.Delete(ctx, img.StoragePath); err != nil {
		// Record is gone; log the stranded file rather than failing the call.
		h.Log.Error("stored file delete failed", zap.String("path", img.StoragePath), zap.Error(err))
	}
	httpapi.OK(w, "image deleted", nil)
}
