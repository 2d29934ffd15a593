package api

import (
	"errors"
	"log"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/upload"
)

// UploadHandler runs one pipeline attempt for the multipart "file" part.
func UploadHandler(svc port.Uploader, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)
		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "multipart field \"file\" is required", err)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				log.Printf("failed to close multipart file: %v", err)
			}
		}()

		in := port.UploadInput{
			OwnerID:   ownerID,
			FileName:  header.Filename,
			MediaKind: mediaKindOf(header.Header.Get("Content-Type"), header.Filename),
			Size:      header.Size,
			Reader:    file,
			OnState: func(st port.UploadState) {
				log.Printf("upload pipeline for account #%s: %s", ownerID, st)
			},
		}

		record, err := svc.Upload(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, upload.ErrUploadInFlight):
				WriteError(w, http.StatusConflict, "an upload is already in progress", nil)
			case errors.Is(err, upload.ErrFileTooLarge):
				WriteError(w, http.StatusRequestEntityTooLarge, "file exceeds the maximum upload size", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not process upload", err)
			}
			return
		}

		RespondJSON(w, http.StatusCreated, record)
		log.Printf("✅  Successfully uploaded %q as record #%s", record.FileName, record.ID)
	}
}

func mediaKindOf(contentType, fileName string) string {
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	if kind := mime.TypeByExtension(filepath.Ext(fileName)); kind != "" {
		return kind
	}
	return "application/octet-stream"
}
