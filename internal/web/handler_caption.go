package web

import (
	"io"
	"mime"
	"net/http"

	"github.com/vbonduro/fieldlog/internal/domain"
	"github.com/vbonduro/fieldlog/internal/vision"
)

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	detected := http.DetectContentType(data)
	if allowedImageTypes[detected] {
		return detected, true
	}
	return "", false
}

type captionRequest struct {
	Photo string `json:"photo"`
	Notes string `json:"notes"`
}

type captionResponse struct {
	Photo   string `json:"photo"`
	Caption string `json:"caption"`
	Notes   string `json:"notes"`
}

// handleCaption returns a photo as a data URI together with its caption.
// The photo arrives either as a multipart "image" upload or, for clients
// that already hold a data URI, as a JSON body. The optional notes are
// returned with the caption merged in, ready to be sent with the new record.
func (s *Server) handleCaption(w http.ResponseWriter, r *http.Request) {
	if mediaType(r) == "application/json" {
		s.captionDataURI(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		s.writeError(w, "caption", domain.NewValidationError("image", "failed to parse form"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, "caption", domain.NewValidationError("image", "image file required"))
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, "read upload", err)
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		s.writeError(w, "caption", domain.NewValidationError("image", "unsupported image format"))
		return
	}

	caption := s.service.CaptionImage(r.Context(), imageData, mimeType)
	writeJSON(w, http.StatusOK, captionResponse{
		Photo:   vision.EncodeDataURI(mimeType, imageData),
		Caption: caption,
		Notes:   vision.MergeNotes(r.FormValue("notes"), caption),
	})
}

func (s *Server) captionDataURI(w http.ResponseWriter, r *http.Request) {
	var req captionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, "caption", err)
		return
	}
	if req.Photo == "" {
		s.writeError(w, "caption", domain.NewValidationError("photo", "photo data URI required"))
		return
	}

	caption := s.service.CaptionPhoto(r.Context(), req.Photo)
	writeJSON(w, http.StatusOK, captionResponse{
		Photo:   req.Photo,
		Caption: caption,
		Notes:   vision.MergeNotes(req.Notes, caption),
	})
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}
