package feed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/policy"
	"github.com/fjallet/uploadbox-go/internal/port"
)

type listerSrv struct {
	repo   port.UploadRepository
	strg   port.Storage
	cache  port.Cache
	bucket string
	urlTTL time.Duration
}

// compile-time check: *listerSrv must satisfy port.UploadLister
var _ port.UploadLister = (*listerSrv)(nil)

func NewUploadLister(repo port.UploadRepository, strg port.Storage, cache port.Cache, bucket string, urlTTL time.Duration) port.UploadLister {
	return &listerSrv{repo: repo, strg: strg, cache: cache, bucket: bucket, urlTTL: urlTTL}
}

// ListUploads resolves one snapshot of the owner's records, most recent
// first. A record whose download URL cannot be resolved stays in the
// snapshot with no URL rather than dropping out.
func (s *listerSrv) ListUploads(ctx context.Context, ownerID db.UUID) (port.FeedSnapshot, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("could not list uploads: %w", err)
	}

	principal := policy.Authenticated(ownerID.String())
	snapshot := make(port.FeedSnapshot, 0, len(records))
	for _, record := range records {
		if err := policy.AuthorizeRecord(principal, policy.ActionRead, record.ID.String(), record.OwnerID.String()); err != nil {
			log.Printf("dropping record #%s from snapshot: %v", record.ID, err)
			continue
		}
		snapshot = append(snapshot, port.FeedItem{
			Upload:      record,
			DownloadURL: s.resolveURL(ctx, record),
		})
	}
	return snapshot, nil
}

func (s *listerSrv) resolveURL(ctx context.Context, record model.Upload) *string {
	url, err := s.cache.GetDownloadURL(ctx, record.StoragePath)
	if err != nil {
		log.Printf("cache lookup failed for file %q: %v", record.StoragePath, err)
	}
	if url != "" {
		return &url
	}

	exists, err := s.strg.FileExists(ctx, s.bucket, record.StoragePath)
	if err != nil {
		log.Printf("could not check file %q: %v", record.StoragePath, err)
		return nil
	}
	if !exists {
		// object not readable yet, the renderer shows no preview
		return nil
	}

	url, err = s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, record.StoragePath, s.urlTTL)
	if err != nil {
		log.Printf("could not presign download for file %q: %v", record.StoragePath, err)
		return nil
	}
	s.cache.SetDownloadURL(ctx, record.StoragePath, url, s.urlTTL)
	return &url
}
