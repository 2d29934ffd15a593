package upload

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fjallet/uploadbox-go/internal/port"
)

type sweeperSrv struct {
	repo   port.UploadRepository
	strg   port.Storage
	cache  port.Cache
	bucket string
	grace  time.Duration
}

// compile-time check: *sweeperSrv must satisfy port.OrphanSweeper
var _ port.OrphanSweeper = (*sweeperSrv)(nil)

// NewOrphanSweeper wires the out-of-band cleanup for objects left behind
// by a failed record commit.
func NewOrphanSweeper(repo port.UploadRepository, strg port.Storage, cache port.Cache, bucket string, grace time.Duration) port.OrphanSweeper {
	return &sweeperSrv{repo: repo, strg: strg, cache: cache, bucket: bucket, grace: grace}
}

// SweepOrphans removes objects under uploads/ that no record references.
// Objects younger than the grace window are skipped so an attempt that is
// still committing keeps its bytes.
func (s *sweeperSrv) SweepOrphans(ctx context.Context) (int, error) {
	keys, err := s.strg.ListFiles(ctx, s.bucket, "uploads/")
	if err != nil {
		return 0, fmt.Errorf("could not list stored files: %w", err)
	}

	removed := 0
	for _, key := range keys {
		uploadedAt, ok := timestampOf(key)
		if !ok {
			log.Printf("skipping file %q: key carries no timestamp", key)
			continue
		}
		if time.Since(uploadedAt) < s.grace {
			continue
		}

		exists, err := s.repo.ExistsByStoragePath(ctx, key)
		if err != nil {
			return removed, fmt.Errorf("could not look up record for file %q: %w", key, err)
		}
		if exists {
			continue
		}

		if err := s.strg.RemoveFile(ctx, s.bucket, key); err != nil {
			log.Printf("could not remove orphaned file %q: %v", key, err)
			continue
		}
		if err := s.cache.DeleteDownloadURL(ctx, key); err != nil {
			log.Printf("could not drop cached URL for file %q: %v", key, err)
		}
		log.Printf("removed orphaned file %q", key)
		removed++
	}
	return removed, nil
}

// timestampOf reads the unix-millisecond prefix off the object's file name,
// per the uploads/{ownerID}/{unixMilli}_{name} key layout.
func timestampOf(key string) (time.Time, bool) {
	name := key[strings.LastIndex(key, "/")+1:]
	msStr, _, found := strings.Cut(name, "_")
	if !found {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(msStr, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
