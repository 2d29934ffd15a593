package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/policy"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/ledongthuc/pdf"
)

type uploaderSrv struct {
	repo       port.UploadRepository
	strg       port.Storage
	transcoder port.Transcoder
	notifier   port.FeedNotifier
	genUUID    port.UUIDGen
	bucket     string
	maxSize    int64

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// compile-time check: *uploaderSrv must satisfy port.Uploader
var _ port.Uploader = (*uploaderSrv)(nil)

func NewUploader(repo port.UploadRepository, strg port.Storage, transcoder port.Transcoder, notifier port.FeedNotifier, genUUID port.UUIDGen, bucket string, maxSize int64) port.Uploader {
	return &uploaderSrv{
		repo:       repo,
		strg:       strg,
		transcoder: transcoder,
		notifier:   notifier,
		genUUID:    genUUID,
		bucket:     bucket,
		maxSize:    maxSize,
		inFlight:   make(map[string]struct{}),
	}
}

// Upload runs one pipeline attempt end to end: transcode, transfer, commit.
// One attempt per owner at a time; a transcode failure falls back to the
// original bytes, a transfer or commit failure leaves no record behind.
func (s *uploaderSrv) Upload(ctx context.Context, in port.UploadInput) (*model.Upload, error) {
	report := func(st port.UploadState) {
		if in.OnState != nil {
			in.OnState(st)
		}
	}

	if !s.reserve(in.OwnerID.String()) {
		return nil, ErrUploadInFlight
	}
	defer s.release(in.OwnerID.String())

	report(port.StatePicked)

	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		report(port.StateFailed)
		return nil, fmt.Errorf("file name is required")
	}
	if s.maxSize > 0 && in.Size > s.maxSize {
		report(port.StateFailed)
		return nil, ErrFileTooLarge
	}

	data, err := s.readAll(in.Reader)
	if err != nil {
		report(port.StateFailed)
		return nil, err
	}
	mediaKind := in.MediaKind

	report(port.StateTranscoding)
	if out, kind, err := s.transcoder.Transcode(mediaKind, data); err != nil {
		// transcode failure is not fatal, keep the original bytes
		log.Printf("transcode failed for file %q, uploading original: %v", fileName, err)
	} else {
		if kind != mediaKind && kind == "image/webp" {
			fileName = withWebpExtension(fileName)
		}
		data, mediaKind = out, kind
	}

	objectKey := fmt.Sprintf("uploads/%s/%d_%s", in.OwnerID, time.Now().UnixMilli(), fileName)
	principal := policy.Authenticated(in.OwnerID.String())
	if err := policy.AuthorizeObject(principal, policy.ActionWrite, objectKey); err != nil {
		report(port.StateFailed)
		return nil, err
	}

	report(port.StateTransferring)
	reader := newProgressReader(bytes.NewReader(data), int64(len(data)), in.OnProgress)
	opts := map[string]string{"Content-Type": mediaKind}
	if err := s.strg.SaveFile(ctx, s.bucket, objectKey, reader, int64(len(data)), opts); err != nil {
		report(port.StateFailed)
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}

	report(port.StateCommitting)
	sizeBytes := int64(len(data))
	if info, err := s.strg.StatFile(ctx, s.bucket, objectKey); err != nil {
		log.Printf("could not stat stored file %q: %v", objectKey, err)
	} else if info.SizeBytes > 0 {
		sizeBytes = info.SizeBytes
	}
	record := &model.Upload{
		ID:          s.genUUID(),
		OwnerID:     in.OwnerID,
		FileName:    fileName,
		StoragePath: objectKey,
		MediaKind:   mediaKind,
		Analysis:    model.AnalysisPending,
		Metadata:    buildMetadata(mediaKind, data, sizeBytes),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// bytes landed but the record did not; the object stays in place
		// for the out-of-band orphan sweep
		log.Printf("commit failed for file %q, object left orphaned: %v", objectKey, err)
		report(port.StateFailed)
		return nil, fmt.Errorf("%w: %v", ErrCommit, err)
	}

	if err := s.notifier.PublishChange(ctx, in.OwnerID); err != nil {
		log.Printf("could not publish feed change for owner #%s: %v", in.OwnerID, err)
	}

	report(port.StateDone)
	return record, nil
}

func (s *uploaderSrv) reserve(ownerKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[ownerKey]; busy {
		return false
	}
	s.inFlight[ownerKey] = struct{}{}
	return true
}

func (s *uploaderSrv) release(ownerKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, ownerKey)
}

func (s *uploaderSrv) readAll(r io.Reader) ([]byte, error) {
	if s.maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("could not read source: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// buildMetadata stamps what can be read cheaply from the committed bytes.
// Failures leave the matching fields at zero, never block the commit.
func buildMetadata(mediaKind string, data []byte, sizeBytes int64) model.Metadata {
	md := model.Metadata{SizeBytes: sizeBytes}

	switch {
	case IsImageKind(mediaKind):
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			md.Width = cfg.Width
			md.Height = cfg.Height
		} else {
			log.Printf("could not decode image dimensions: %v", err)
		}
	case IsPdfKind(mediaKind):
		if reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
			md.PageCount = reader.NumPage()
		} else {
			log.Printf("could not read PDF page count: %v", err)
		}
	}
	return md
}
