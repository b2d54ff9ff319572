// internal/app/features/profile/uploads.go
package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/trainhub/internal/app/store/profiles"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxImageBytes caps profile image uploads.
const maxImageBytes = 5 << 20 // 5 MiB

// HandleUploadPicture replaces the caller's profile picture. Multipart
// form with an "image" file part.
func (h *Handler) HandleUploadPicture(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	path, url, ok := h.storeImage(w, r, "profile-pictures")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.SetProfilePicture(ctx, ident.UserID, url); err != nil {
		if delErr := h.Storage.Delete(ctx, path); delErr != nil {
			h.Log.Error("orphaned upload cleanup failed", zap.String("path", path), zap.Error(delErr))
		}
		h.Log.Error("profile picture update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update profile picture")
		return
	}
	httpapi.OK(w, "profile picture updated", map[string]any{"url": url})
}

// HandleUploadBefore stores the "before" transformation photo on the
// caller's fitness profile.
func (h *Handler) HandleUploadBefore(w http.ResponseWriter, r *http.Request) {
	h.uploadTransformation(w, r, "before")
}

// HandleUploadAfter stores the "after" transformation photo.
func (h *Handler) HandleUploadAfter(w http.ResponseWriter, r *http.Request) {
	h.uploadTransformation(w, r, "after")
}

func (h *Handler) uploadTransformation(w http.ResponseWriter, r *http.Request, which string) {
	ident, _ := token.FromContext(r.Context())

	path, url, ok := h.storeImage(w, r, "transformations")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u := profilestore.Update{}
	if which == "before" {
		u.BeforeImageURL = &url
	} else {
		u.AfterImageURL = &url
	}
	prof, err := h.Profiles.Upsert(ctx, ident.UserID, u)
	if err != nil {
		if delErr := h.Storage.Delete(ctx, path); delErr != nil {
			h.Log.Error("orphaned upload cleanup failed", zap.String("path", path), zap.Error(delErr))
		}
		h.Log.Error("transformation photo update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	httpapi.OK(w, which+" photo updated", map[string]any{"profile": prof})
}

// storeImage reads the multipart "image" part and writes it to object
// storage under <prefix>/YYYY/MM/uuid-filename. Writes the error
// response itself when ok is false.
func (h *Handler) storeImage(w http.ResponseWriter, r *http.Request, prefix string) (path, url string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid or oversized upload")
		return "", "", false
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, `missing "image" file field`)
		return "", "", false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageType(contentType) {
		httpapi.Error(w, http.StatusBadRequest, "unsupported image type")
		return "", "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	path, err = putImage(ctx, h.Storage, prefix, header.Filename, file, contentType)
	if err != nil {
		h.Log.Error("image upload failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to store image")
		return "", "", false
	}
	return path, h.Storage.URL(path), true
}

// putImage writes the image with a unique date-partitioned path.
func putImage(ctx context.Context, store storage.Store, prefix, filename string, reader io.Reader, contentType string) (string, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("%s/%04d/%02d", prefix, now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], safeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := store.Put(ctx, path, reader, opts); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return path, nil
}

func allowedImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// safeFilename keeps only characters that are safe in storage paths.
func safeFilename(filename string) string {
	filename = filepath.Base(filename)
	var b strings.Builder
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '_', c == '.':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	s := b.String()
	if len(s) > 100 {
		ext := filepath.Ext(s)
		if len(ext) > 0 && len(ext) < 10 {
			s = s[:100-len(ext)] + ext
		} else {
			s = s[:100]
		}
	}
	return s
}
