package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/upload"
)

type mockUploader struct {
	out *model.Upload
	err error
	in  port.UploadInput
}

func (m *mockUploader) Upload(ctx context.Context, in port.UploadInput) (*model.Upload, error) {
	m.in = in
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, owner *db.UUID, body io.Reader, contentType string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	if owner != nil {
		req = req.WithContext(context.WithValue(req.Context(), api_context.AuthUserIDKey, *owner))
	}
	return req
}

func TestUploadHandler_Success(t *testing.T) {
	owner := db.NewUUID()
	record := &model.Upload{ID: db.NewUUID(), OwnerID: owner, FileName: "cat.webp"}
	svc := &mockUploader{out: record}

	body, ct := multipartBody(t, "file", "cat.png", "image/png", []byte("png-bytes"))
	rr := httptest.NewRecorder()
	UploadHandler(svc, 1<<20)(rr, uploadRequest(t, &owner, body, ct))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201 (body %s)", rr.Code, rr.Body)
	}
	if svc.in.OwnerID != owner {
		t.Errorf("OwnerID = %s; want %s", svc.in.OwnerID, owner)
	}
	if svc.in.FileName != "cat.png" || svc.in.MediaKind != "image/png" {
		t.Errorf("input = %q/%q; want cat.png/image/png", svc.in.FileName, svc.in.MediaKind)
	}
}

func TestUploadHandler_Unauthenticated(t *testing.T) {
	body, ct := multipartBody(t, "file", "cat.png", "image/png", []byte("png-bytes"))
	rr := httptest.NewRecorder()
	UploadHandler(&mockUploader{}, 1<<20)(rr, uploadRequest(t, nil, body, ct))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rr.Code)
	}
}

func TestUploadHandler_MissingFilePart(t *testing.T) {
	owner := db.NewUUID()
	body, ct := multipartBody(t, "wrong_field", "cat.png", "image/png", []byte("png-bytes"))
	rr := httptest.NewRecorder()
	UploadHandler(&mockUploader{}, 1<<20)(rr, uploadRequest(t, &owner, body, ct))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
}

func TestUploadHandler_InFlightConflict(t *testing.T) {
	owner := db.NewUUID()
	svc := &mockUploader{err: upload.ErrUploadInFlight}

	body, ct := multipartBody(t, "file", "cat.png", "image/png", []byte("png-bytes"))
	rr := httptest.NewRecorder()
	UploadHandler(svc, 1<<20)(rr, uploadRequest(t, &owner, body, ct))

	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d; want 409", rr.Code)
	}
}

func TestUploadHandler_TooLarge(t *testing.T) {
	owner := db.NewUUID()
	svc := &mockUploader{err: upload.ErrFileTooLarge}

	body, ct := multipartBody(t, "file", "big.bin", "application/octet-stream", []byte("data"))
	rr := httptest.NewRecorder()
	UploadHandler(svc, 1<<20)(rr, uploadRequest(t, &owner, body, ct))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d; want 413", rr.Code)
	}
}

func TestMediaKindOf(t *testing.T) {
	if got := mediaKindOf("image/png", "cat.bin"); got != "image/png" {
		t.Errorf("explicit type: got %q", got)
	}
	if got := mediaKindOf("", "doc.pdf"); got != "application/pdf" {
		t.Errorf("extension fallback: got %q", got)
	}
	if got := mediaKindOf("application/octet-stream", "blob"); got != "application/octet-stream" {
		t.Errorf("opaque fallback: got %q", got)
	}
}
